package ports

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when the user directory cannot produce the
// requested user. By design this covers genuine absence as well as collaborator
// failure (timeout, unreachable service, malformed response): callers treat
// both identically, and the underlying cause stays in the error message.
var ErrUserNotFound = errors.New("user not found")

// User is the identity record returned by the user directory.
type User struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

// UserDirectory resolves user identities from the external user service.
type UserDirectory interface {
	// GetUser resolves a user by id. Returns an error wrapping ErrUserNotFound
	// when the user does not exist or the directory cannot be consulted.
	// The call is a blocking network round trip; callers bound it via ctx.
	GetUser(ctx context.Context, id int64) (*User, error)
}
