package game

import (
	"sync"
	"time"
)

// Session is one player's state for the lifetime of one play session. All
// fields are unexported: reads go through accessors and every mutation goes
// through an Engine operation, including the admin path.
type Session struct {
	id string

	mu         sync.Mutex
	balance    int64
	premium    int64
	tierIdx    int
	businesses map[int64]bool
	vehicles   map[int64]bool
	incomeRate int64
	lastClick  time.Time
}

// NewSession starts a fresh session at the lowest tier with zero balances.
func NewSession(id string) *Session {
	return &Session{
		id:         id,
		businesses: make(map[int64]bool),
		vehicles:   make(map[int64]bool),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Balance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

func (s *Session) PremiumBalance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.premium
}

func (s *Session) TierIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tierIdx
}

func (s *Session) PassiveIncomeRate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.incomeRate
}

func (s *Session) OwnsBusiness(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.businesses[id]
}

func (s *Session) OwnsVehicle(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vehicles[id]
}
