package auth

import "testing"

func TestAdminTokenMatches(t *testing.T) {
	token := AdminToken("sekrit")
	if !token.Matches("sekrit") {
		t.Fatal("expected matching token to pass")
	}
	if token.Matches("wrong") {
		t.Fatal("expected mismatched token to fail")
	}
	if AdminToken("").Matches("") {
		t.Fatal("empty configured token must lock the admin surface")
	}
}

func TestNewSessionTokenUnique(t *testing.T) {
	a, b := NewSessionToken(), NewSessionToken()
	if a == "" || a == b {
		t.Fatalf("tokens %q and %q", a, b)
	}
}
