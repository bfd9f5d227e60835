package handlers

import (
	"net/http"
	"strconv"

	"github.com/lmoralesdev/storefront-gateway/internal/errors"
	"github.com/lmoralesdev/storefront-gateway/internal/utils/response"
)

// SessionHeader carries the caller-chosen cart session, the gateway's
// replacement for the browser's local storage scope.
const SessionHeader = "X-Session-ID"

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		response.Error(w, errors.BadRequestError("Session ID header is required"))

		return "", false
	}

	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, errors.BadRequestError("Invalid "+name))

		return 0, false
	}

	return id, true
}
