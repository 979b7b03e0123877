package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON returns the parsed body. The result is empty (Exists() == false) when
// the body is not valid JSON.
func (r *Response) JSON() gjson.Result {
	if !gjson.ValidBytes(r.Body) {
		return gjson.Result{}
	}
	return gjson.ParseBytes(r.Body)
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// Form parses a form-encoded body, as returned by the OAuth endpoints.
func (r *Response) Form() (url.Values, error) {
	values, err := url.ParseQuery(string(r.Body))
	if err != nil {
		return nil, fmt.Errorf("parse form body: %w", err)
	}
	return values, nil
}
