package sessions

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Key under which per-form CSRF tokens are stored in the session.
const csrfKey = "_csrf"

var (
	ErrCSRFMissing  = errors.New("stand: sessions: no csrf token issued for form")
	ErrCSRFMismatch = errors.New("stand: sessions: csrf token mismatch")
	ErrCSRFExpired  = errors.New("stand: sessions: csrf token expired")
)

// IssueCSRF generates an opaque random token for the named form, stores
// it in the session with its issue time, and returns it. Issuing again
// for the same form replaces the previous token.
func IssueCSRF(s *Session, form string) (string, error) {
	token, err := newSessionID(32)
	if err != nil {
		return "", fmt.Errorf("stand: sessions: generate csrf token: %w", err)
	}

	tokens, _ := s.values[csrfKey].(map[string]any)
	if tokens == nil {
		tokens = make(map[string]any)
	}
	tokens[form] = map[string]any{
		"token":  token,
		"issued": time.Now().Unix(),
	}
	s.values[csrfKey] = tokens
	return token, nil
}

// ValidateCSRF checks the submitted token for the named form against
// the stored one by constant-time comparison, and enforces the maxAge
// window from the token's issue time. The stored token stays valid
// until it expires, is reissued, or is cleared.
func ValidateCSRF(s *Session, form, token string, maxAge time.Duration) error {
	stored, issued, ok := storedCSRF(s, form)
	if !ok {
		return ErrCSRFMissing
	}
	if time.Since(time.Unix(issued, 0)) > maxAge {
		ClearCSRF(s, form)
		return ErrCSRFExpired
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return ErrCSRFMismatch
	}
	return nil
}

// ClearCSRF drops the stored token for the named form.
func ClearCSRF(s *Session, form string) {
	tokens, _ := s.values[csrfKey].(map[string]any)
	delete(tokens, form)
}

func storedCSRF(s *Session, form string) (token string, issued int64, ok bool) {
	tokens, _ := s.values[csrfKey].(map[string]any)
	entry, _ := tokens[form].(map[string]any)
	if entry == nil {
		return "", 0, false
	}
	token, _ = entry["token"].(string)
	if token == "" {
		return "", 0, false
	}

	// Issue times survive a JSON round-trip through the SQL store as
	// float64 (or json.Number); accept the decoded forms too.
	switch t := entry["issued"].(type) {
	case int64:
		issued = t
	case float64:
		issued = int64(t)
	case json.Number:
		issued, _ = t.Int64()
	default:
		return "", 0, false
	}
	return token, issued, true
}
