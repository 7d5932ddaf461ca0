// Package auth provides password hashing and opaque token generation
// helpers: adaptive (bcrypt) password hashes with rehash detection,
// UUID v4 identifiers, and URL-safe random access tokens.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is given.
const DefaultCost = bcrypt.DefaultCost

// HashPassword hashes a password with the default cost.
func HashPassword(password string) (string, error) {
	return HashPasswordCost(password, DefaultCost)
}

// HashPasswordCost hashes a password with an explicit bcrypt cost.
func HashPasswordCost(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("stand: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash reports whether a stored hash should be regenerated: it
// was produced with a different cost than wanted, or is not a valid
// bcrypt hash at all (e.g. a legacy scheme).
func NeedsRehash(hash string, cost int) bool {
	got, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return got != cost
}
