package sessions

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSigningKey       = errors.New("stand: sessions: no signing key configured")
	ErrInvalidAccessToken = errors.New("stand: sessions: invalid access token")
)

// LoadSigningKey reads an HS256 signing key from a file, generating and
// persisting a fresh 32-byte key when the file does not exist yet.
func LoadSigningKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stand: sessions: read signing key: %w", err)
	}

	key = make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("stand: sessions: generate signing key: %w", err)
	}
	if err := os.WriteFile(path, key, 0600); err != nil {
		return nil, fmt.Errorf("stand: sessions: write signing key: %w", err)
	}
	return key, nil
}

// AccessToken issues an HS256-signed JWT bound to the session, valid for
// ttl. Extra claims are merged in; sid, iat and exp are reserved.
func (m *Manager) AccessToken(s *Session, ttl time.Duration, extra map[string]any) (string, error) {
	if len(m.opts.SigningKey) == 0 {
		return "", ErrNoSigningKey
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sid": s.ID(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for k, v := range extra {
		if k == "sid" || k == "iat" || k == "exp" {
			continue
		}
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.opts.SigningKey)
	if err != nil {
		return "", fmt.Errorf("stand: sessions: sign access token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken checks signature and expiry and returns the bound
// session ID.
func (m *Manager) VerifyAccessToken(tokenString string) (string, error) {
	if len(m.opts.SigningKey) == 0 {
		return "", ErrNoSigningKey
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.opts.SigningKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidAccessToken
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", ErrInvalidAccessToken
	}
	return sid, nil
}
