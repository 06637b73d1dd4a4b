package middleware

import (
	"context"
	"net/http"
	"strings"

	"fintrack-server/src/apperr"
	"fintrack-server/src/response"
)

type contextKey string

const callerIDKey contextKey = "user_id"

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header, or "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func JWTAuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := verifier.VerifyToken(BearerToken(r))
			if err != nil {
				response.Fail(w, apperr.Status(err), apperr.Message(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCallerID(r.Context(), userID)))
		})
	}
}

// CallerID returns the authenticated user id placed on the request by
// JWTAuthMiddleware.
func CallerID(r *http.Request) string {
	userID, _ := r.Context().Value(callerIDKey).(string)
	return userID
}

// WithCallerID returns ctx carrying userID as the authenticated caller.
func WithCallerID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, callerIDKey, userID)
}
