// Package auth provides the credential primitives for the identity service:
// one-way password hashing and signed, time-bounded bearer tokens.
package auth

import (
	"fmt"

	"github.com/msomdec/taskflow/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the hashing cost used when none is configured.
const DefaultBcryptCost = 12

// PasswordHasher hashes and verifies passwords using bcrypt. Each Hash call
// generates a fresh salt, so hashing the same password twice yields different
// strings; Verify is the only valid way to compare.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
// Costs outside bcrypt's supported range fall back to DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt digest of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches the stored bcrypt digest. It never
// returns an error: empty inputs and malformed digests verify as false, and
// bcrypt's comparison is constant-time with respect to the mismatch position.
func (h *PasswordHasher) Verify(password, digest string) bool {
	if password == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
