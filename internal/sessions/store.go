// Package sessions keeps live play sessions in memory for the lifetime of
// the process. Nothing is persisted: a restart is a fresh economy.
package sessions

import (
	"sync"

	"github.com/google/uuid"

	"klicks/internal/auth"
	"klicks/internal/game"
)

type Store struct {
	mu      sync.RWMutex
	byToken map[string]*game.Session
}

func NewStore() *Store {
	return &Store{byToken: make(map[string]*game.Session)}
}

// Create mints a session with a fresh bearer token. The token is the only
// handle to the session; the session id is a separate, shareable identifier.
func (st *Store) Create() (string, *game.Session) {
	token := auth.NewSessionToken()
	s := game.NewSession(uuid.NewString())

	st.mu.Lock()
	defer st.mu.Unlock()
	st.byToken[token] = s
	return token, s
}

func (st *Store) Get(token string) (*game.Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.byToken[token]
	return s, ok
}

func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byToken)
}
