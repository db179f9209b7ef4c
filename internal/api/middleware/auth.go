package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"cinelog/internal/auth"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// CookieName is the cookie the session token travels in.
const CookieName = "token"

// Auth gates a route group on a valid session token. The token is read from
// the session cookie first, with an Authorization: Bearer fallback for API
// clients. Absent or invalid credentials short-circuit with 401 before any
// handler logic runs.
func Auth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			}

			if token == "" {
				authHeader := r.Header.Get("Authorization")
				if strings.HasPrefix(authHeader, "Bearer ") {
					token = strings.TrimPrefix(authHeader, "Bearer ")
				}
			}

			if token == "" {
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

// GetUserID extracts the authenticated user id from the request context.
// Returns 0 when the request did not pass through Auth.
func GetUserID(ctx context.Context) uint {
	if id, ok := ctx.Value(UserIDKey).(uint); ok {
		return id
	}
	return 0
}
