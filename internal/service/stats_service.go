package service

import (
	"context"
	"math/rand"
	"sync"

	"crestgold_backend/internal/config"

	"github.com/benbjohnson/clock"
)

// StatsService tracks the displayed platform user count and simulates live
// growth on a recurring tick. The ticker stops with the passed context so
// teardown never leaves a timer mutating disposed state.
type StatsService struct {
	mu        sync.Mutex
	clk       clock.Clock
	rng       *rand.Rand
	eco       config.Economy
	userCount int64

	// OnChange feeds the live event stream; may be nil.
	OnChange func(count int64)
}

func NewStatsService(eco config.Economy, clk clock.Clock, seed int64) *StatsService {
	return &StatsService{
		clk:       clk,
		rng:       rand.New(rand.NewSource(seed)),
		eco:       eco,
		userCount: eco.InitialUserCount,
	}
}

// UserCount returns the current simulated platform population.
func (ss *StatsService) UserCount() int64 {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.userCount
}

// Run grows the user count probabilistically on every tick until ctx is
// cancelled. Call in its own goroutine.
func (ss *StatsService) Run(ctx context.Context) {
	ticker := ss.clk.Ticker(ss.eco.GrowthTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ss.tick()
		}
	}
}

func (ss *StatsService) tick() {
	ss.mu.Lock()
	grew := ss.rng.Float64() < ss.eco.GrowthProbability
	if grew {
		ss.userCount++
	}
	count := ss.userCount
	onChange := ss.OnChange
	ss.mu.Unlock()

	if grew && onChange != nil {
		onChange(count)
	}
}
