package middleware

import (
	"context"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// PersonIDKey is the context key for the acting person's ID
	PersonIDKey ContextKey = "person_id"
)

// PersonMiddleware reads the acting person from the X-Person-ID header and
// stores it on the request context. The API is single-tenant so this is
// attribution, not authentication; requests without the header pass through.
func PersonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		personID := r.Header.Get("X-Person-ID")
		if personID != "" {
			ctx := context.WithValue(r.Context(), PersonIDKey, personID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPersonID extracts the acting person's ID from the request context
func GetPersonID(ctx context.Context) (string, bool) {
	personID, ok := ctx.Value(PersonIDKey).(string)
	return personID, ok
}
