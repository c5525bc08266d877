// Package client provides HTTP plumbing shared by the SDK's RPC consumers.
package client

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// CustomHeadersTransport adds static headers to each outgoing request.
// Hosted RPC providers typically expect an authorization header on every
// call.
type CustomHeadersTransport struct {
	base    http.RoundTripper
	headers map[string][]string
}

// NewCustomHeadersTransport decorates base with the given headers. A nil
// base falls back to http.DefaultTransport.
func NewCustomHeadersTransport(base http.RoundTripper, headers map[string][]string) *CustomHeadersTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &CustomHeadersTransport{
		base:    base,
		headers: headers,
	}
}

func (t *CustomHeadersTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for header, values := range t.headers {
		for _, value := range values {
			req.Header.Add(header, value)
		}
	}
	return t.base.RoundTrip(req)
}

// ParseHeaders converts Name=Value pairs, as passed on the command line,
// into the header map NewCustomHeadersTransport takes. A repeated name
// collects all of its values.
func ParseHeaders(pairs []string) (map[string][]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	headers := make(map[string][]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, errors.Errorf("header %q is not a Name=Value pair", pair)
		}
		headers[name] = append(headers[name], value)
	}
	return headers, nil
}
