package sessions

import (
	"sync"
	"time"
)

// Store persists session values server side, keyed by session ID.
// Load reports found=false for unknown or expired IDs. Sweep removes
// every session whose deadline has passed.
type Store interface {
	Load(id string) (values Values, found bool, err error)
	Save(id string, values Values, expiresAt time.Time) error
	Delete(id string) error
	Sweep(now time.Time) error
}

type memorySession struct {
	values    Values
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Suitable for tests and
// single-process deployments; state is lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

func (m *MemoryStore) Load(id string) (Values, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(s.expiresAt) {
		delete(m.sessions, id)
		return nil, false, nil
	}

	values := make(Values, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return values, true, nil
}

func (m *MemoryStore) Save(id string, values Values, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make(Values, len(values))
	for k, v := range values {
		copied[k] = v
	}
	m.sessions[id] = memorySession{values: copied, expiresAt: expiresAt}
	return nil
}

func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Sweep(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if now.After(s.expiresAt) {
			delete(m.sessions, id)
		}
	}
	return nil
}
