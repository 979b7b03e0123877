package client

import (
	"context"
	"net/http"

	"github.com/dghubble/oauth1"
)

// SigningMode is the OAuth1 variant a credential signs requests with.
type SigningMode string

const (
	// SigningAppOnly signs with the consumer key and secret only.
	SigningAppOnly SigningMode = "app_only"

	// SigningUser signs on behalf of a resource owner (token + secret).
	SigningUser SigningMode = "user"

	// SigningHandshake is SigningUser plus a verifier, used to exchange a
	// request token for an access token.
	SigningHandshake SigningMode = "handshake"
)

// Credential holds the application credential and, optionally, the
// resource-owner token pair and verifier.
type Credential struct {
	ConsumerKey    string
	ConsumerSecret string

	Token       string
	TokenSecret string

	// Verifier is only used during the three-legged handshake.
	Verifier string
}

// Mode reports which signing variant the credential yields. A token pair
// missing either half is treated as absent.
func (c Credential) Mode() SigningMode {
	if c.Token == "" || c.TokenSecret == "" {
		return SigningAppOnly
	}
	if c.Verifier != "" {
		return SigningHandshake
	}
	return SigningUser
}

// httpClient returns an http.Client whose transport signs every request.
// base, if non-nil, provides the underlying transport.
func (c Credential) httpClient(base *http.Client) *http.Client {
	ctx := context.Background()
	if base != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, base)
	}

	config := oauth1.NewConfig(c.ConsumerKey, c.ConsumerSecret)

	token := oauth1.NewToken("", "")
	if c.Mode() != SigningAppOnly {
		token = oauth1.NewToken(c.Token, c.TokenSecret)
	}
	return config.Client(ctx, token)
}
