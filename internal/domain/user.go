package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application. PasswordHash is the
// bcrypt digest of the user's password; it must never be logged or included
// in any response body.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users.
// Create must translate a unique-email violation into ErrDuplicateEmail so
// that concurrent registrations are serialized by the store's constraint,
// not by application locking.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
