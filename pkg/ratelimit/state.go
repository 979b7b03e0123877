// Package ratelimit records the rate-limit window the API reports on every
// response. It observes only: nothing here delays or blocks a request.
package ratelimit

import (
	"regexp"
	"strings"
	"time"
)

// Response headers carrying the rate-limit window.
const (
	HeaderLimit     = "X-Rate-Limit-Limit"
	HeaderRemaining = "X-Rate-Limit-Remaining"
	HeaderReset     = "X-Rate-Limit-Reset"
)

// RedisKeyPrefix prefixes the per-resource hash holding the last observed state.
const RedisKeyPrefix = "twitter:rate_limit:"

// RateLimitState is the last window observed for one API resource.
type RateLimitState struct {
	// Resource is the API resource the window applies to, e.g. "/friends/ids".
	Resource string `json:"resource"`

	// Limit is the number of calls allowed per window.
	Limit int `json:"limit"`

	// Remaining is the number of calls left in the current window.
	Remaining int `json:"remaining"`

	// ResetAt is when the current window ends.
	ResetAt time.Time `json:"reset_at"`

	// LastUpdate is when this state was recorded.
	LastUpdate time.Time `json:"last_update"`
}

// IsStale returns true if the state is older than maxAge.
func (s *RateLimitState) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// IsExhausted returns true if no calls remain and the window has not reset yet.
func (s *RateLimitState) IsExhausted() bool {
	return s.Remaining <= 0 && s.TimeUntilReset() > 0
}

// TimeUntilReset returns the duration until the window resets, or 0 if it
// already has.
func (s *RateLimitState) TimeUntilReset() time.Duration {
	duration := time.Until(s.ResetAt)
	if duration < 0 {
		return 0
	}
	return duration
}

var numericSegment = regexp.MustCompile(`^\d+$`)

// ResourceFromPath maps a request path to the resource name used by
// application/rate_limit_status, e.g. "/1.1/statuses/retweet/42.json"
// becomes "/statuses/retweet/:id".
func ResourceFromPath(path string) string {
	path = strings.TrimPrefix(path, "/1.1")
	path = strings.TrimSuffix(path, ".json")

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if numericSegment.MatchString(seg) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
