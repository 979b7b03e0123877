//go:build integration

package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container and returns a client
func setupRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func TestTracker_Integration_ResourcesAreIndependent(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	tracker := NewTracker(redisClient, logger)
	ctx := context.Background()

	reset := strconv.FormatInt(time.Now().Add(15*time.Minute).Unix(), 10)

	updates := map[string]string{
		"/friends/ids":   "14",
		"/followers/ids": "2",
	}
	for resource, remaining := range updates {
		headers := http.Header{}
		headers.Set(HeaderLimit, "15")
		headers.Set(HeaderRemaining, remaining)
		headers.Set(HeaderReset, reset)
		if err := tracker.UpdateFromHeaders(ctx, resource, headers); err != nil {
			t.Fatalf("UpdateFromHeaders(%s) error = %v", resource, err)
		}
	}

	for resource, remaining := range updates {
		state, err := tracker.GetState(ctx, resource)
		if err != nil {
			t.Fatalf("GetState(%s) error = %v", resource, err)
		}
		if strconv.Itoa(state.Remaining) != remaining {
			t.Errorf("%s: Remaining = %d, want %s", resource, state.Remaining, remaining)
		}
	}

	if _, err := tracker.GetState(ctx, "/search/tweets"); !errors.Is(err, ErrNoState) {
		t.Errorf("GetState(/search/tweets) error = %v, want ErrNoState", err)
	}
}

func TestTracker_Integration_LatestWindowWins(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	tracker := NewTracker(redisClient, zerolog.Nop())
	ctx := context.Background()
	reset := strconv.FormatInt(time.Now().Add(15*time.Minute).Unix(), 10)

	for _, remaining := range []string{"15", "14", "13"} {
		headers := http.Header{}
		headers.Set(HeaderLimit, "15")
		headers.Set(HeaderRemaining, remaining)
		headers.Set(HeaderReset, reset)
		if err := tracker.UpdateFromHeaders(ctx, "/users/lookup", headers); err != nil {
			t.Fatalf("UpdateFromHeaders() error = %v", err)
		}
	}

	state, err := tracker.GetState(ctx, "/users/lookup")
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if state.Remaining != 13 {
		t.Errorf("Remaining = %d, want 13", state.Remaining)
	}
}

func TestTracker_Integration_StateExpiresAtReset(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	tracker := NewTracker(redisClient, zerolog.Nop())
	ctx := context.Background()

	headers := http.Header{}
	headers.Set(HeaderLimit, "15")
	headers.Set(HeaderRemaining, "0")
	headers.Set(HeaderReset, strconv.FormatInt(time.Now().Add(2*time.Second).Unix(), 10))

	if err := tracker.UpdateFromHeaders(ctx, "/friends/ids", headers); err != nil {
		t.Fatalf("UpdateFromHeaders() error = %v", err)
	}

	state, err := tracker.GetState(ctx, "/friends/ids")
	if err != nil {
		t.Fatalf("GetState() error = %v", err)
	}
	if state.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", state.Remaining)
	}

	time.Sleep(4 * time.Second)

	if _, err := tracker.GetState(ctx, "/friends/ids"); !errors.Is(err, ErrNoState) {
		t.Errorf("GetState() after reset error = %v, want ErrNoState", err)
	}
}
