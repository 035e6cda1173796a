package middleware

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	// UserIDHeader carries the authenticated user's ID, set by the auth
	// collaborator in front of this service. Authentication itself is
	// external; this middleware only consumes the resolved identity.
	UserIDHeader = "X-User-ID"

	userIDContextKey contextKey = "user_id"
)

// ResolveUser extracts the authenticated user ID, if any, into the
// request context. Requests without a valid header proceed as anonymous.
func ResolveUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw != "" {
			var userID pgtype.UUID
			if err := userID.Scan(raw); err == nil {
				ctx := context.WithValue(r.Context(), userIDContextKey, userID)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID retrieves the authenticated user ID from the context.
// The zero UUID (Valid=false) means the request is anonymous.
func GetUserID(ctx context.Context) pgtype.UUID {
	if id, ok := ctx.Value(userIDContextKey).(pgtype.UUID); ok {
		return id
	}
	return pgtype.UUID{}
}
