package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum-attestation-service/sdk/testing/assert"
	"github.com/ethereum-attestation-service/sdk/testing/require"
)

type noopTransport struct{}

func (*noopTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, nil
}

func TestRoundTrip(t *testing.T) {
	tr := NewCustomHeadersTransport(&noopTransport{}, map[string][]string{"key1": {"value1", "value2"}, "key2": {"value3"}})
	req := httptest.NewRequest("GET", "http://foo", nil)
	_, err := tr.RoundTrip(req)
	require.NoError(t, err)
	assert.DeepEqual(t, []string{"value1", "value2"}, req.Header.Values("key1"))
	assert.DeepEqual(t, []string{"value3"}, req.Header.Values("key2"))
}

func TestNewCustomHeadersTransport_DefaultBase(t *testing.T) {
	tr := NewCustomHeadersTransport(nil, nil)
	require.Equal(t, http.DefaultTransport, tr.base)
}

func TestParseHeaders(t *testing.T) {
	headers, err := ParseHeaders([]string{"Authorization=Bearer token", "X-Tag=a", "X-Tag=b", "Empty="})
	require.NoError(t, err)
	assert.DeepEqual(t, []string{"Bearer token"}, headers["Authorization"])
	assert.DeepEqual(t, []string{"a", "b"}, headers["X-Tag"])
	assert.DeepEqual(t, []string{""}, headers["Empty"])
}

func TestParseHeaders_Errors(t *testing.T) {
	_, err := ParseHeaders([]string{"no-separator"})
	require.ErrorContains(t, `header "no-separator" is not a Name=Value pair`, err)

	_, err = ParseHeaders([]string{"=value"})
	require.ErrorContains(t, `header "=value" is not a Name=Value pair`, err)

	headers, err := ParseHeaders(nil)
	require.NoError(t, err)
	assert.IsNil(t, headers)
}
