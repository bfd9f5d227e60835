package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/lmoralesdev/storefront-gateway/internal/api/handlers"
)

// CreateSessionRequest builds a request carrying the cart session header the
// way a storefront client would send it.
func CreateSessionRequest(method, target string, body io.Reader, sessionID string, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handlers.SessionHeader, sessionID)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	return req
}

func CreateRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	return req
}
