package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RequestToken is the temporary credential issued at the start of the
// three-legged flow.
type RequestToken struct {
	Token             string
	Secret            string
	CallbackConfirmed bool
}

// AccessToken is the resource-owner credential issued at the end of the
// three-legged flow.
type AccessToken struct {
	Token      string
	Secret     string
	UserID     string
	ScreenName string
}

// OAuthRequestToken obtains a request token. The client must be app-only
// signed. callbackURL may be "oob" for PIN-based authorization.
func (c *Client) OAuthRequestToken(ctx context.Context, callbackURL string) (*RequestToken, error) {
	if callbackURL == "" {
		return nil, fmt.Errorf("%w: callback url is required", ErrInvalidArgument)
	}

	resp, err := c.Post(ctx, PathOAuthRequestToken, url.Values{"oauth_callback": {callbackURL}})
	if err != nil {
		return nil, err
	}

	values, err := resp.Form()
	if err != nil {
		return nil, err
	}
	token := &RequestToken{
		Token:  values.Get("oauth_token"),
		Secret: values.Get("oauth_token_secret"),
	}
	if token.Token == "" || token.Secret == "" {
		return nil, fmt.Errorf("request token response is missing oauth_token or oauth_token_secret")
	}
	token.CallbackConfirmed, _ = strconv.ParseBool(values.Get("oauth_callback_confirmed"))

	c.logger.Debug().Bool("callback_confirmed", token.CallbackConfirmed).Msg("Obtained request token")
	return token, nil
}

// AuthenticateURL returns the URL the user visits to authorize requestToken.
func (c *Client) AuthenticateURL(requestToken string) string {
	u := *c.baseURL
	u.Path += PathOAuthAuthenticate
	u.RawQuery = url.Values{"oauth_token": {requestToken}}.Encode()
	return u.String()
}

// OAuthAccessToken exchanges the request token and verifier the client was
// built with for an access token.
func (c *Client) OAuthAccessToken(ctx context.Context) (*AccessToken, error) {
	if c.credential.Mode() != SigningHandshake {
		return nil, ErrMissingVerifier
	}

	resp, err := c.Post(ctx, PathOAuthAccessToken, url.Values{"oauth_verifier": {c.credential.Verifier}})
	if err != nil {
		return nil, err
	}

	values, err := resp.Form()
	if err != nil {
		return nil, err
	}
	token := &AccessToken{
		Token:      values.Get("oauth_token"),
		Secret:     values.Get("oauth_token_secret"),
		UserID:     values.Get("user_id"),
		ScreenName: values.Get("screen_name"),
	}
	if token.Token == "" || token.Secret == "" {
		return nil, fmt.Errorf("access token response is missing oauth_token or oauth_token_secret")
	}

	c.logger.Info().Str("screen_name", token.ScreenName).Msg("Obtained access token")
	return token, nil
}
