package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
)

// LoginPath is where anonymous users are sent when they hit a protected
// route. The original path rides along in the next parameter so login
// can bounce them back.
const LoginPath = "/auth/login/"

// TokenValidator resolves a token string to a user ID. The auth service
// implements it by checking the JWT signature and then the session row
// behind it, so logout revokes the token immediately.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (int64, error)
}

// tokenFromRequest pulls the JWT from the Authorization header first,
// then falls back to the session cookie.
func tokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	cookie, err := r.Cookie("access_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// RequireAuth gates protected routes. Anonymous, invalid-token, and
// logged-out requests are redirected to the login page with a next
// parameter carrying the original path; this is a navigation flow, not
// an API, so the answer is 302 rather than 401.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenString := tokenFromRequest(r); tokenString != "" {
				if userID, err := validator.ValidateToken(r.Context(), tokenString); err == nil {
					ctx := context.WithValue(r.Context(), UserIDKey, userID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			location := LoginPath + "?next=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, location, http.StatusFound)
		})
	}
}

// OptionalAuth puts the user ID in the context when a live session is
// behind the token and lets the request through either way.
func OptionalAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenString := tokenFromRequest(r); tokenString != "" {
				if userID, err := validator.ValidateToken(r.Context(), tokenString); err == nil {
					ctx := context.WithValue(r.Context(), UserIDKey, userID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext extracts the user ID from the request context
// Returns the user ID and true if found, or 0 and false if not found
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
