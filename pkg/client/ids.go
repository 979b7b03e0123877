package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Sternrassler/twitter-rest-client/pkg/pagination"
)

// idsPage is the body of friends/ids and followers/ids.
type idsPage struct {
	IDs           []int64 `json:"ids"`
	NextCursorStr string  `json:"next_cursor_str"`
	NextCursor    *int64  `json:"next_cursor"`
}

// FriendsIDsPage fetches one page of the accounts userID follows.
func (c *Client) FriendsIDsPage(ctx context.Context, userID, cursor string) (pagination.Page, error) {
	return c.idsPage(ctx, PathFriendsIDs, userID, cursor)
}

// FollowersIDsPage fetches one page of the accounts following userID.
func (c *Client) FollowersIDsPage(ctx context.Context, userID, cursor string) (pagination.Page, error) {
	return c.idsPage(ctx, PathFollowersIDs, userID, cursor)
}

// FriendIDs collects the IDs of every account userID follows, up to the
// pagination cap.
func (c *Client) FriendIDs(ctx context.Context, userID string) (*pagination.Result, error) {
	return c.FriendIDsFrom(ctx, userID, pagination.StartCursor)
}

// FriendIDsFrom resumes a capped FriendIDs run from cursor.
func (c *Client) FriendIDsFrom(ctx context.Context, userID, cursor string) (*pagination.Result, error) {
	return c.collectIDs(ctx, PathFriendsIDs, "friends/ids", userID, cursor)
}

// FollowerIDs collects the IDs of every account following userID, up to the
// pagination cap.
func (c *Client) FollowerIDs(ctx context.Context, userID string) (*pagination.Result, error) {
	return c.FollowerIDsFrom(ctx, userID, pagination.StartCursor)
}

// FollowerIDsFrom resumes a capped FollowerIDs run from cursor.
func (c *Client) FollowerIDsFrom(ctx context.Context, userID, cursor string) (*pagination.Result, error) {
	return c.collectIDs(ctx, PathFollowersIDs, "followers/ids", userID, cursor)
}

func (c *Client) collectIDs(ctx context.Context, path, name, userID, cursor string) (*pagination.Result, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	fetcher := pagination.PageFetcherFunc(func(ctx context.Context, cursor string) (pagination.Page, error) {
		return c.idsPage(ctx, path, userID, cursor)
	})
	return pagination.Collect(ctx, fetcher, pagination.Options{
		StartCursor: cursor,
		Name:        name,
	})
}

func (c *Client) idsPage(ctx context.Context, path, userID, cursor string) (pagination.Page, error) {
	if userID == "" {
		return pagination.Page{}, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	if cursor == "" {
		cursor = pagination.StartCursor
	}

	resp, err := c.Get(ctx, path, url.Values{
		"user_id": {userID},
		"cursor":  {cursor},
	})
	if err != nil {
		return pagination.Page{}, err
	}

	var body idsPage
	if err := resp.Decode(&body); err != nil {
		return pagination.Page{}, err
	}

	next := body.NextCursorStr
	if next == "" {
		if body.NextCursor == nil {
			return pagination.Page{}, fmt.Errorf("%s: response carries no next cursor", path)
		}
		next = strconv.FormatInt(*body.NextCursor, 10)
	}

	ids := make([]string, 0, len(body.IDs))
	for _, id := range body.IDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	return pagination.Page{IDs: ids, NextCursor: next}, nil
}
