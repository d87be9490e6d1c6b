package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest acceptable bcrypt work factor
const MinBcryptCost = 10

// PlaceholderHash is stored for migrated users without a recoverable
// password. It is not a valid bcrypt hash, so Verify can never succeed
// against it; the account stays locked until a password reset.
const PlaceholderHash = "!needs-password-reset"

// PasswordHasher hashes and verifies credentials with bcrypt
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given work factor, clamped
// to MinBcryptCost
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted adaptive hash of the plaintext. Two calls on the
// same input produce different hashes because bcrypt embeds a fresh salt.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the plaintext matches the stored hash. A
// malformed hash, including PlaceholderHash, yields false and never an
// error or panic. Comparison inside bcrypt is constant-time.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
