package session

import (
	"fmt"
	"math/rand"
	"sync"

	"crestgold_backend/internal/config"
	"crestgold_backend/internal/domain"

	"github.com/benbjohnson/clock"
)

// Store is the in-memory session registry keyed by miner id.
type Store struct {
	mu       sync.RWMutex
	clk      clock.Clock
	eco      config.Economy
	rng      *rand.Rand
	sessions map[string]*Session
}

// NewStore creates an empty registry.
func NewStore(eco config.Economy, clk clock.Clock) *Store {
	return &Store{
		clk:      clk,
		eco:      eco,
		rng:      rand.New(rand.NewSource(clk.Now().UnixNano())),
		sessions: make(map[string]*Session),
	}
}

// Create mints a new miner identity and session.
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	var id string
	for {
		id = fmt.Sprintf("USER_%05d", 10000+st.rng.Intn(90000))
		if _, taken := st.sessions[id]; !taken {
			break
		}
	}

	s := New(id, st.eco, st.clk, st.rng.Int63())
	st.sessions[id] = s
	return s
}

// Get returns the session for a miner id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// FindDeposit locates the session whose book holds the given deposit id.
func (st *Store) FindDeposit(requestID string) (*Session, *domain.DepositRequest, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, s := range st.sessions {
		for _, r := range s.Book.Deposits() {
			if r.ID == requestID {
				return s, r, true
			}
		}
	}
	return nil, nil, false
}

// FindWithdrawal locates the session whose book holds the given withdrawal id.
func (st *Store) FindWithdrawal(requestID string) (*Session, *domain.WithdrawalRequest, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, s := range st.sessions {
		for _, r := range s.Book.Withdrawals() {
			if r.ID == requestID {
				return s, r, true
			}
		}
	}
	return nil, nil, false
}

// Each calls fn for every live session.
func (st *Store) Each(fn func(*Session)) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, s := range st.sessions {
		fn(s)
	}
}

// CloseAll tears down every session, cancelling their deferred effects.
func (st *Store) CloseAll() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, s := range st.sessions {
		s.Close()
	}
}
