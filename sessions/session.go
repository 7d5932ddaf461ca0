package sessions

import (
	"crypto/rand"
	"encoding/base64"
)

// Key under which the flash message queue is stored.
const flashKey = "_flash"

// Values is the session-scoped key-value data. Values must survive a
// JSON round-trip when a SQL store is used.
type Values map[string]any

// Session is one client's server-side state. Mutations are in-memory
// until the manager's Save persists them.
type Session struct {
	id     string
	values Values
	secure bool // request arrived over TLS; drives the cookie Secure flag
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// Get returns the value stored under key, or nil.
func (s *Session) Get(key string) any { return s.values[key] }

// Has reports whether a value is stored under key.
func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Set stores a value under key.
func (s *Session) Set(key string, v any) {
	s.values[key] = v
}

// Remove deletes the value stored under key.
func (s *Session) Remove(key string) {
	delete(s.values, key)
}

// Clear removes all session values.
func (s *Session) Clear() {
	s.values = make(Values)
}

// Flash appends a one-shot message to the flash queue.
func (s *Session) Flash(msg any) {
	queue, _ := s.values[flashKey].([]any)
	s.values[flashKey] = append(queue, msg)
}

// Flashes drains the flash queue: all queued messages are returned and
// the queue is cleared.
func (s *Session) Flashes() []any {
	queue, _ := s.values[flashKey].([]any)
	delete(s.values, flashKey)
	return queue
}

// newSessionID generates a cryptographically random URL-safe base64
// identifier from n random bytes.
func newSessionID(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
