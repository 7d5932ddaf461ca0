package sessions

// Package sessions provides cookie-based HTTP sessions with hardened
// defaults, a pluggable server-side store (in-memory or SQL-backed),
// one-shot flash messages, per-form CSRF tokens, and optional signed
// access tokens bound to a session. Session data lives server side; the
// cookie carries only the random session ID.
