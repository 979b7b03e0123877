package client

// DefaultBaseURL is the API host every path below is resolved against.
const DefaultBaseURL = "https://api.twitter.com"

// API paths.
const (
	PathSearchTweets       = "/1.1/search/tweets.json"
	PathFriendsIDs         = "/1.1/friends/ids.json"
	PathFollowersIDs       = "/1.1/followers/ids.json"
	PathRateLimitStatus    = "/1.1/application/rate_limit_status.json"
	PathFavoritesCreate    = "/1.1/favorites/create.json"
	PathFavoritesDestroy   = "/1.1/favorites/destroy.json"
	PathStatusesRetweet    = "/1.1/statuses/retweet/" // + {id}.json
	PathStatusesDestroy    = "/1.1/statuses/destroy/" // + {id}.json
	PathStatusesUpdate     = "/1.1/statuses/update.json"
	PathFriendshipsCreate  = "/1.1/friendships/create.json"
	PathFriendshipsDestroy = "/1.1/friendships/destroy.json"
	PathFriendshipsShow    = "/1.1/friendships/show.json"
	PathUsersShow          = "/1.1/users/show.json"
	PathUsersLookup        = "/1.1/users/lookup.json"
	PathAccountSettings    = "/1.1/account/settings.json"

	PathOAuthRequestToken = "/oauth/request_token"
	PathOAuthAuthenticate = "/oauth/authenticate"
	PathOAuthAccessToken  = "/oauth/access_token"
)

// defaultRateLimitResources is queried by RateLimitStatus when the caller
// names no resource families.
var defaultRateLimitResources = []string{"help", "users", "search", "statuses"}

// MaxLookupUsers is the most user IDs a single users/lookup call accepts.
const MaxLookupUsers = 100
