package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrNoState is returned by GetState when nothing was recorded for a resource.
var ErrNoState = errors.New("no rate limit state recorded")

// Prometheus metrics for observed rate limits.
var (
	rateLimitRemaining = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "twitter_rate_limit_remaining",
		Help: "Calls remaining in the current rate limit window by resource",
	}, []string{"resource"})

	rateLimitLimit = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "twitter_rate_limit_limit",
		Help: "Calls allowed per rate limit window by resource",
	}, []string{"resource"})
)

// Tracker stores the last observed rate-limit window per resource in Redis,
// so that processes sharing a credential see the same picture.
type Tracker struct {
	redis  *redis.Client
	logger zerolog.Logger
}

// NewTracker creates a new rate limit tracker.
func NewTracker(redisClient *redis.Client, logger zerolog.Logger) *Tracker {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &Tracker{
		redis:  redisClient,
		logger: logger,
	}
}

// ParseHeaders extracts the rate-limit window from response headers.
// It returns (nil, nil) when the response carries no rate-limit headers.
func ParseHeaders(resource string, headers http.Header) (*RateLimitState, error) {
	remainStr := headers.Get(HeaderRemaining)
	if remainStr == "" {
		return nil, nil
	}

	remain, err := strconv.Atoi(remainStr)
	if err != nil {
		return nil, fmt.Errorf("parse %s header: %w", HeaderRemaining, err)
	}

	limit := 0
	if limitStr := headers.Get(HeaderLimit); limitStr != "" {
		if limit, err = strconv.Atoi(limitStr); err != nil {
			return nil, fmt.Errorf("parse %s header: %w", HeaderLimit, err)
		}
	}

	resetStr := headers.Get(HeaderReset)
	if resetStr == "" {
		return nil, fmt.Errorf("%s header missing", HeaderReset)
	}
	resetUnix, err := strconv.ParseInt(resetStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s header: %w", HeaderReset, err)
	}

	return &RateLimitState{
		Resource:   resource,
		Limit:      limit,
		Remaining:  remain,
		ResetAt:    time.Unix(resetUnix, 0),
		LastUpdate: time.Now(),
	}, nil
}

// UpdateFromHeaders records the window carried by headers for resource.
// Responses without rate-limit headers are ignored.
func (t *Tracker) UpdateFromHeaders(ctx context.Context, resource string, headers http.Header) error {
	state, err := ParseHeaders(resource, headers)
	if err != nil || state == nil {
		return err
	}

	key := RedisKeyPrefix + resource
	pipe := t.redis.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"limit":       state.Limit,
		"remaining":   state.Remaining,
		"reset":       state.ResetAt.Unix(),
		"last_update": state.LastUpdate.UnixNano(),
	})
	if state.ResetAt.After(state.LastUpdate) {
		pipe.ExpireAt(ctx, key, state.ResetAt)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store rate limit state in redis: %w", err)
	}

	rateLimitRemaining.WithLabelValues(resource).Set(float64(state.Remaining))
	rateLimitLimit.WithLabelValues(resource).Set(float64(state.Limit))

	event := t.logger.Debug()
	if state.IsExhausted() {
		event = t.logger.Warn()
	}
	event.
		Str("resource", resource).
		Int("remaining", state.Remaining).
		Int("limit", state.Limit).
		Time("reset_at", state.ResetAt).
		Msg("Rate limit state updated")

	return nil
}

// GetState returns the last recorded window for resource.
func (t *Tracker) GetState(ctx context.Context, resource string) (*RateLimitState, error) {
	fields, err := t.redis.HGetAll(ctx, RedisKeyPrefix+resource).Result()
	if err != nil {
		return nil, fmt.Errorf("get rate limit state: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNoState
	}

	state := &RateLimitState{Resource: resource}
	if state.Limit, err = strconv.Atoi(fields["limit"]); err != nil {
		return nil, fmt.Errorf("parse limit: %w", err)
	}
	if state.Remaining, err = strconv.Atoi(fields["remaining"]); err != nil {
		return nil, fmt.Errorf("parse remaining: %w", err)
	}
	reset, err := strconv.ParseInt(fields["reset"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse reset: %w", err)
	}
	lastUpdate, err := strconv.ParseInt(fields["last_update"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse last update: %w", err)
	}
	state.ResetAt = time.Unix(reset, 0)
	state.LastUpdate = time.Unix(0, lastUpdate)

	return state, nil
}
