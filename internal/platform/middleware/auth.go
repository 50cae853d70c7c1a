package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "creditref/pkg/domain-errors"
	"creditref/pkg/platform/httputil"
	"creditref/pkg/requestcontext"
)

// Identity is who a bearer token speaks for.
type Identity struct {
	Subject  string
	ClientID string
}

// Authenticator resolves a raw bearer token to an Identity.
type Authenticator interface {
	Identify(token string) (*Identity, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's identity on the request context.
func RequireAuth(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "rejected request without bearer token",
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			id, err := auth.Identify(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "rejected bearer token",
					"error", err,
					"path", r.URL.Path,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx = requestcontext.WithSubject(ctx, id.Subject)
			ctx = requestcontext.WithClientID(ctx, id.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
