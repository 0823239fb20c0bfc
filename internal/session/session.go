package session

import (
	"context"
	"math/rand"
	"time"

	"crestgold_backend/internal/config"
	"crestgold_backend/internal/domain"
	"crestgold_backend/internal/ledger"

	"github.com/benbjohnson/clock"
)

// Session is one miner's in-process state: the ledger, the request book and
// the live note book, plus a context that cancels every deferred effect on
// teardown so nothing mutates a disposed session.
type Session struct {
	ID        string
	CreatedAt time.Time

	Catalog []*domain.UpgradeDefinition
	Ledger  *ledger.Ledger
	Book    *ledger.Book
	Notes   *ledger.NoteBook

	ctx    context.Context
	cancel context.CancelFunc
}

// New builds a fresh session over the default catalog. The seed drives the
// session's random source; production callers pass a clock-derived seed,
// tests pass a fixed one.
func New(id string, eco config.Economy, clk clock.Clock, seed int64) *Session {
	catalog := domain.DefaultCatalog()
	ledRng := rand.New(rand.NewSource(seed))
	noteRng := rand.New(rand.NewSource(seed + 1))

	led := ledger.New(catalog, eco, clk, ledRng)
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		ID:        id,
		CreatedAt: clk.Now(),
		Catalog:   catalog,
		Ledger:    led,
		Book:      ledger.NewBook(led, eco, clk),
		Notes:     ledger.NewNoteBook(eco.NoteTTL, clk, noteRng),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Context is cancelled when the session is closed. Deferred effects must
// check it before touching session state.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Closed reports whether teardown has happened.
func (s *Session) Closed() bool {
	return s.ctx.Err() != nil
}

// Close tears the session down, cancelling pending deferred effects.
func (s *Session) Close() {
	s.cancel()
}

// Upgrade resolves a catalog entry by id.
func (s *Session) Upgrade(id string) (*domain.UpgradeDefinition, bool) {
	for _, def := range s.Catalog {
		if def.ID == id {
			return def, true
		}
	}
	return nil, false
}
