package client

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// RateLimitWindow is the server's view of one endpoint's current window.
type RateLimitWindow struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"`
}

// ResetAt returns the reset time of the window.
func (w RateLimitWindow) ResetAt() time.Time {
	return time.Unix(w.Reset, 0)
}

// RateLimitStatus maps resource families to endpoint windows, e.g.
// Resources["users"]["/users/show/:id"].
type RateLimitStatus struct {
	Resources map[string]map[string]RateLimitWindow `json:"resources"`
}

// Window looks up a single endpoint window.
func (s *RateLimitStatus) Window(family, endpoint string) (RateLimitWindow, bool) {
	w, ok := s.Resources[family][endpoint]
	return w, ok
}

// RateLimitStatus queries the server-side rate-limit state for the given
// resource families, or for help, users, search and statuses when none are
// given.
func (c *Client) RateLimitStatus(ctx context.Context, resources ...string) (*RateLimitStatus, error) {
	if len(resources) == 0 {
		resources = defaultRateLimitResources
	}

	resp, err := c.Get(ctx, PathRateLimitStatus, url.Values{
		"resources": {strings.Join(resources, ",")},
	})
	if err != nil {
		return nil, err
	}

	var status RateLimitStatus
	if err := resp.Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}
