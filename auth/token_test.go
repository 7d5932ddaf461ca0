package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUUID(t *testing.T) {
	id := NewUUID()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("Parse(%q): %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Errorf("version = %d, want 4", parsed.Version())
	}
	if NewUUID() == id {
		t.Error("two UUIDs are identical")
	}
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(32)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	// 32 bytes → 43 chars of unpadded base64.
	if len(token) != 43 {
		t.Errorf("token length = %d, want 43", len(token))
	}

	other, err := GenerateToken(32)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == other {
		t.Error("two tokens are identical")
	}

	// Non-positive sizes fall back to the 32-byte default.
	short, err := GenerateToken(0)
	if err != nil {
		t.Fatalf("GenerateToken(0): %v", err)
	}
	if len(short) != 43 {
		t.Errorf("default token length = %d, want 43", len(short))
	}
}
