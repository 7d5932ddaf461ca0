package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// NewUUID returns a random (version 4) UUID string.
func NewUUID() string {
	return uuid.NewString()
}

// GenerateToken returns an opaque access token built from n
// cryptographically random bytes, URL-safe base64 encoded without
// padding. Non-positive n defaults to 32 bytes.
func GenerateToken(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("stand: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
