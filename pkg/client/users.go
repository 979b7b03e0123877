package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// FollowUser follows userID.
func (c *Client) FollowUser(ctx context.Context, userID string) (*Response, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	return c.Post(ctx, PathFriendshipsCreate, url.Values{"user_id": {userID}})
}

// UnfollowUser unfollows userID.
func (c *Client) UnfollowUser(ctx context.Context, userID string) (*Response, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	return c.Post(ctx, PathFriendshipsDestroy, url.Values{"user_id": {userID}})
}

// FriendshipQuery names the two sides of a relationship, either by ID or by
// screen name. IDs win when both pairs are complete.
type FriendshipQuery struct {
	SourceID         string
	TargetID         string
	SourceScreenName string
	TargetScreenName string
}

func (q FriendshipQuery) params() (url.Values, error) {
	switch {
	case q.SourceID != "" && q.TargetID != "":
		return url.Values{"source_id": {q.SourceID}, "target_id": {q.TargetID}}, nil
	case q.SourceScreenName != "" && q.TargetScreenName != "":
		return url.Values{
			"source_screen_name": {q.SourceScreenName},
			"target_screen_name": {q.TargetScreenName},
		}, nil
	default:
		return nil, fmt.Errorf("%w: friendship query needs an id pair or a screen name pair", ErrInvalidArgument)
	}
}

// FriendshipsShow returns the relationship between two users.
func (c *Client) FriendshipsShow(ctx context.Context, q FriendshipQuery) (*Response, error) {
	params, err := q.params()
	if err != nil {
		c.logger.Error().Err(err).Msg("Invalid friendship query")
		return nil, err
	}
	return c.Get(ctx, PathFriendshipsShow, params)
}

// UsersShow returns a single user.
func (c *Client) UsersShow(ctx context.Context, userID string) (*Response, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	return c.Get(ctx, PathUsersShow, url.Values{"user_id": {userID}})
}

// UsersLookup returns fully hydrated users for up to MaxLookupUsers IDs.
func (c *Client) UsersLookup(ctx context.Context, userIDs []string, includeEntities bool) (*Response, error) {
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one user id is required", ErrInvalidArgument)
	}
	if len(userIDs) > MaxLookupUsers {
		return nil, fmt.Errorf("%w: %d user ids given, at most %d allowed",
			ErrInvalidArgument, len(userIDs), MaxLookupUsers)
	}
	return c.Post(ctx, PathUsersLookup, url.Values{
		"user_id":          {strings.Join(userIDs, ",")},
		"include_entities": {strconv.FormatBool(includeEntities)},
	})
}

// AccountSettings returns the settings of the authenticating user.
func (c *Client) AccountSettings(ctx context.Context) (*Response, error) {
	return c.Get(ctx, PathAccountSettings, nil)
}
