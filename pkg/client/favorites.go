package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// FavoritesCreate favorites the status id. Favoriting a status twice is an
// API error with code CodeAlreadyFavorited.
func (c *Client) FavoritesCreate(ctx context.Context, id string) (*Response, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: status id is required", ErrInvalidArgument)
	}
	return c.Post(ctx, PathFavoritesCreate, url.Values{"id": {id}})
}

// FavoritesDestroy removes the favorite on status id. A 404 means the status
// was not a favorite; it is returned as a response, not an error, so that
// removal is idempotent. Callers can tell the cases apart by StatusCode.
func (c *Client) FavoritesDestroy(ctx context.Context, id string) (*Response, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: status id is required", ErrInvalidArgument)
	}
	return c.Do(ctx, Call{
		Method: http.MethodPost,
		Path:   PathFavoritesDestroy,
		Params: url.Values{"id": {id}},
		Accept: []int{http.StatusNotFound},
	})
}
