//go:build integration

package client

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Sternrassler/twitter-rest-client/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedisContainer creates a Redis container for integration testing.
func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()

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

	host, err := redisContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := redisContainer.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func newTrackedClient(t *testing.T, mock *testutil.MockAPI, redisClient *redis.Client) *Client {
	t.Helper()

	cfg := DefaultConfig(testCredential)
	cfg.BaseURL = mock.URL()
	cfg.Redis = redisClient
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return c
}

func TestIntegration_PaginationRecordsRateLimit(t *testing.T) {
	redisClient, cleanup := setupRedisContainer(t)
	defer cleanup()

	mock := testutil.NewMockAPI()
	defer mock.Close()

	reset := time.Now().Add(15 * time.Minute)
	var mu sync.Mutex
	remaining := 15
	pages := testutil.NewCursorHandler(map[string]testutil.CursorPage{
		"-1": {IDs: []int64{1, 2}, NextCursor: 10},
		"10": {IDs: []int64{3}, NextCursor: 20},
		"20": {IDs: []int64{4}, NextCursor: 0},
	})
	mock.SetHandler(PathFollowersIDs, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		remaining--
		for key, value := range testutil.RateLimitHeaders(15, remaining, reset) {
			w.Header().Set(key, value)
		}
		mu.Unlock()
		pages(w, r)
	})

	c := newTrackedClient(t, mock, redisClient)
	ctx := context.Background()

	result, err := c.FollowerIDs(ctx, "783214")
	if err != nil {
		t.Fatalf("FollowerIDs() error = %v", err)
	}
	if len(result.IDs) != 4 || !result.Done() {
		t.Fatalf("Result = %+v, want 4 ids and done", result)
	}

	state, err := c.ObservedRateLimit(ctx, PathFollowersIDs)
	if err != nil {
		t.Fatalf("ObservedRateLimit() error = %v", err)
	}
	if state.Remaining != 12 {
		t.Errorf("Remaining = %d, want 12 after three pages", state.Remaining)
	}
	if state.Resource != "/followers/ids" {
		t.Errorf("Resource = %q, want /followers/ids", state.Resource)
	}
}

func TestIntegration_SharedStateAcrossClients(t *testing.T) {
	redisClient, cleanup := setupRedisContainer(t)
	defer cleanup()

	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponse(PathSearchTweets, testutil.NewRateLimitedResponse(time.Now().Add(5*time.Minute)))

	writer := newTrackedClient(t, mock, redisClient)
	reader := newTrackedClient(t, mock, redisClient)
	ctx := context.Background()

	_, err := writer.SearchTweets(ctx, "golang", nil)
	if APICode(err) != CodeRateLimitExceeded {
		t.Fatalf("APICode = %d, want %d (err %v)", APICode(err), CodeRateLimitExceeded, err)
	}

	state, err := reader.ObservedRateLimit(ctx, PathSearchTweets)
	if err != nil {
		t.Fatalf("ObservedRateLimit() error = %v", err)
	}
	if !state.IsExhausted() {
		t.Errorf("State should be exhausted, got %+v", state)
	}
}
