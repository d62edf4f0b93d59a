package middleware

import (
	"context"
	"net/http"
)

// AuthHeader is the header carrying the authenticated user's email.
// It is set by the auth proxy fronting the service; the service itself
// never sees credentials.
const AuthHeader = "X-Auth-Request-Email"

const userKey ctxKey = iota + 1

// Auth extracts the authenticated user from the auth proxy header and
// stores it in the request context. Requests without the header are
// rejected with 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get(AuthHeader)
		if user == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized","message":"Missing authentication header"}`))
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser retrieves the authenticated user's email from context.
func GetUser(ctx context.Context) string {
	if user, ok := ctx.Value(userKey).(string); ok {
		return user
	}
	return ""
}
