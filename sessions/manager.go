package sessions

import (
	"fmt"
	"net/http"
	"time"
)

// Options configures a Manager. Zero values take the hardened defaults;
// HttpOnly is not configurable and is always set on the cookie.
type Options struct {
	CookieName   string        // default "stand_session"
	CookiePath   string        // default "/"
	CookieDomain string        // default: host-only cookie
	Lifetime     time.Duration // default 30 minutes
	IDLength     int           // random bytes in the session ID; default 32
	SameSite     http.SameSite // default http.SameSiteStrictMode
	SigningKey   []byte        // HS256 key for AccessToken; optional
}

func (o Options) withDefaults() Options {
	if o.CookieName == "" {
		o.CookieName = "stand_session"
	}
	if o.CookiePath == "" {
		o.CookiePath = "/"
	}
	if o.Lifetime <= 0 {
		o.Lifetime = 30 * time.Minute
	}
	if o.IDLength <= 0 {
		o.IDLength = 32
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteStrictMode
	}
	return o
}

// Manager ties sessions to HTTP requests: it resolves the session cookie
// to server-side state on Start and persists state plus cookie on Save.
type Manager struct {
	store Store
	opts  Options
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts.withDefaults()}
}

// Start resolves the request's session: an existing one when the cookie
// names a live server-side session, otherwise a fresh one. Nothing is
// persisted until Save.
func (m *Manager) Start(r *http.Request) (*Session, error) {
	secure := r.TLS != nil

	if cookie, err := r.Cookie(m.opts.CookieName); err == nil && cookie.Value != "" {
		values, found, err := m.store.Load(cookie.Value)
		if err != nil {
			return nil, err
		}
		if found {
			return &Session{id: cookie.Value, values: values, secure: secure}, nil
		}
	}

	id, err := newSessionID(m.opts.IDLength)
	if err != nil {
		return nil, fmt.Errorf("stand: sessions: generate id: %w", err)
	}
	return &Session{id: id, values: make(Values), secure: secure}, nil
}

// Save persists the session server side and (re)sets the cookie with
// the hardening defaults: HttpOnly, Secure when the request arrived over
// TLS, and the configured SameSite mode.
func (m *Manager) Save(w http.ResponseWriter, s *Session) error {
	expiresAt := time.Now().Add(m.opts.Lifetime)
	if err := m.store.Save(s.id, s.values, expiresAt); err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(s, int(m.opts.Lifetime.Seconds())))
	return nil
}

// Destroy removes the server-side session state, clears the in-memory
// values and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, s *Session) error {
	if err := m.store.Delete(s.id); err != nil {
		return err
	}
	s.Clear()
	http.SetCookie(w, m.cookie(s, -1))
	return nil
}

// RegenerateID swaps the session onto a fresh identifier, keeping its
// values. Call after privilege changes (login) to defeat fixation.
func (m *Manager) RegenerateID(s *Session) error {
	id, err := newSessionID(m.opts.IDLength)
	if err != nil {
		return fmt.Errorf("stand: sessions: generate id: %w", err)
	}
	if err := m.store.Delete(s.id); err != nil {
		return err
	}
	s.id = id
	return nil
}

// Sweep deletes every expired session from the store.
func (m *Manager) Sweep() error {
	return m.store.Sweep(time.Now())
}

func (m *Manager) cookie(s *Session, maxAge int) *http.Cookie {
	value := s.id
	if maxAge < 0 {
		value = ""
	}
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     m.opts.CookiePath,
		Domain:   m.opts.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: m.opts.SameSite,
	}
}
