package testutil

import (
	"net/http"

	"creditref/pkg/requestcontext"
)

// WithSubject simulates what the auth middleware does for authenticated requests.
func WithSubject(req *http.Request, subject string) *http.Request {
	return req.WithContext(requestcontext.WithSubject(req.Context(), subject))
}
