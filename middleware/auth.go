package middleware

import (
	"context"
	"net/http"
	"strings"

	"coscribe/pkg/logger"
	"coscribe/pkg/token"
)

type contextKey string

const UserIDKey contextKey = "userID"

// Auth resolves the bearer credential on every request and injects the
// resulting user ID into the request context. Requests without a valid
// credential are rejected with 401 before reaching any handler.
func Auth(tokens *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// For WebSockets, tokens are passed in the query string
			// because the browser's WebSocket API doesn't support custom headers.
			tokenString := r.URL.Query().Get("token")

			if tokenString == "" {
				authHeader := r.Header.Get("Authorization")
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}

			if tokenString == "" {
				http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Sugar.Infof("Rejected credential: %v", err)
				http.Error(w, "Unauthorized: Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user ID stored by Auth.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(UserIDKey).(string)
	return id
}
