package client

import (
	"context"
	"fmt"
	"net/url"
)

// SearchTweets runs a search query. params carries any further search
// parameters (lang, result_type, count, since_id, ...); an empty lang is
// dropped.
func (c *Client) SearchTweets(ctx context.Context, q string, params url.Values) (*Response, error) {
	if q == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidArgument)
	}

	query := url.Values{}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}
	if query.Get("lang") == "" {
		query.Del("lang")
	}
	query.Set("q", q)

	return c.Get(ctx, PathSearchTweets, query)
}

// SendTweet posts a status update. replyTo, if non-empty, is the ID of the
// status being replied to.
func (c *Client) SendTweet(ctx context.Context, status, replyTo string) (*Response, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status text is required", ErrInvalidArgument)
	}

	params := url.Values{
		"status":    {status},
		"trim_user": {"1"},
	}
	if replyTo != "" {
		params.Set("in_reply_to_status_id", replyTo)
	}
	return c.Post(ctx, PathStatusesUpdate, params)
}

// Retweet retweets the status id.
func (c *Client) Retweet(ctx context.Context, id string) (*Response, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: status id is required", ErrInvalidArgument)
	}
	return c.Post(ctx, PathStatusesRetweet+url.PathEscape(id)+".json", url.Values{"trim_user": {"1"}})
}

// StatusesDestroy deletes the status or retweet id.
func (c *Client) StatusesDestroy(ctx context.Context, id string) (*Response, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: status id is required", ErrInvalidArgument)
	}
	return c.Post(ctx, PathStatusesDestroy+url.PathEscape(id)+".json", url.Values{"trim_user": {"1"}})
}
