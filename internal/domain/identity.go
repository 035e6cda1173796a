package domain

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Identity errors.
var (
	ErrIdentityRequired = &Error{Code: EINVALID, Message: "A user ID or session token is required"}
	ErrIdentityConflict = &Error{Code: ECONFLICT, Message: "Another cart already exists for this identity"}
)

// Identity is the resolved caller identity handed in by the auth/session
// collaborators. Exactly one of UserID or SessionToken is set: carts belong
// either to an authenticated user or to an anonymous browser session,
// never both.
type Identity struct {
	UserID       pgtype.UUID
	SessionToken string
}

// Authenticated builds an identity for a logged-in user.
func Authenticated(userID pgtype.UUID) Identity {
	return Identity{UserID: userID}
}

// Anonymous builds an identity for a session-token holder.
// Tokens are minted by the session layer, not by this package.
func Anonymous(token string) Identity {
	return Identity{SessionToken: token}
}

// IsAuthenticated reports whether the identity carries a user ID.
func (i Identity) IsAuthenticated() bool {
	return i.UserID.Valid
}

// Valid reports whether exactly one side of the identity is set.
func (i Identity) Valid() bool {
	if i.UserID.Valid {
		return i.SessionToken == ""
	}
	return i.SessionToken != ""
}
