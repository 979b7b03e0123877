package client

import (
	"github.com/Sternrassler/twitter-rest-client/pkg/timestamp"
)

// User is the subset of a user object most callers read.
type User struct {
	ID             int64  `json:"id"`
	IDStr          string `json:"id_str"`
	Name           string `json:"name"`
	ScreenName     string `json:"screen_name"`
	Description    string `json:"description"`
	Protected      bool   `json:"protected"`
	FollowersCount int    `json:"followers_count"`
	FriendsCount   int    `json:"friends_count"`
	StatusesCount  int    `json:"statuses_count"`
	CreatedAt      string `json:"created_at"`
}

// CreatedUnix returns CreatedAt as Unix time, or the current time if it
// cannot be parsed.
func (u User) CreatedUnix() int64 {
	return timestamp.Unix(u.CreatedAt)
}

// Tweet is the subset of a status object most callers read.
type Tweet struct {
	ID                int64  `json:"id"`
	IDStr             string `json:"id_str"`
	Text              string `json:"text"`
	Lang              string `json:"lang"`
	InReplyToStatusID string `json:"in_reply_to_status_id_str"`
	RetweetCount      int    `json:"retweet_count"`
	FavoriteCount     int    `json:"favorite_count"`
	Favorited         bool   `json:"favorited"`
	Retweeted         bool   `json:"retweeted"`
	User              *User  `json:"user,omitempty"`
	CreatedAt         string `json:"created_at"`
}

// CreatedUnix returns CreatedAt as Unix time, or the current time if it
// cannot be parsed.
func (t Tweet) CreatedUnix() int64 {
	return timestamp.Unix(t.CreatedAt)
}

// SearchResult is the body of search/tweets.
type SearchResult struct {
	Statuses       []Tweet `json:"statuses"`
	SearchMetadata struct {
		MaxIDStr    string `json:"max_id_str"`
		NextResults string `json:"next_results"`
		Count       int    `json:"count"`
	} `json:"search_metadata"`
}
