package cli

import (
	"errors"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := LoadSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession before save, got %v", err)
	}

	want := StoredSession{Token: "tok-123", BaseURL: "http://localhost:8080"}
	if err := SaveSession(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadSession()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("loaded %+v, want %+v", got, want)
	}

	if err := ClearSession(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := LoadSession(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}

func TestClearWithoutSession(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := ClearSession(); err != nil {
		t.Fatalf("clear on empty state: %v", err)
	}
}
