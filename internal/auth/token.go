// Package auth covers the two trust levels the API knows: opaque player
// session tokens, and a static operator token for the grant surface.
package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/google/uuid"
)

// NewSessionToken mints an opaque bearer token for a play session.
func NewSessionToken() string {
	return uuid.NewString()
}

// AdminToken is the configured operator credential. An empty token locks
// the admin surface entirely.
type AdminToken string

func (t AdminToken) Matches(candidate string) bool {
	token := strings.TrimSpace(string(t))
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(strings.TrimSpace(candidate))) == 1
}
