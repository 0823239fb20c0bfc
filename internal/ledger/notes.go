package ledger

import (
	"math/rand"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Note is an ephemeral on-screen text token spawned by mining events.
// Notes are cosmetic and never part of ledger state.
type Note struct {
	ID    int64   `json:"id"`
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Style string  `json:"style"`
}

// NoteBook tracks live notes. Each note is removed exactly once by its own
// expiry timer; removing an already-removed note is a no-op. Any number of
// notes may coexist.
type NoteBook struct {
	mu     sync.Mutex
	clk    clock.Clock
	rng    *rand.Rand
	ttl    time.Duration
	nextID int64
	notes  map[int64]Note

	// OnSpawn and OnExpire feed the live event stream; both may be nil.
	OnSpawn  func(Note)
	OnExpire func(id int64)
}

// NewNoteBook creates an empty note book with the given expiry.
func NewNoteBook(ttl time.Duration, clk clock.Clock, rng *rand.Rand) *NoteBook {
	return &NoteBook{
		clk:   clk,
		rng:   rng,
		ttl:   ttl,
		notes: make(map[int64]Note),
	}
}

// Spawn creates a note near the given screen coordinates with a small
// random jitter and schedules its expiry.
func (nb *NoteBook) Spawn(text string, x, y float64, style string) Note {
	nb.mu.Lock()
	id := nb.nextID
	nb.nextID++
	n := Note{
		ID:    id,
		Text:  text,
		X:     x + (nb.rng.Float64()-0.5)*40,
		Y:     y + (nb.rng.Float64()-0.5)*40 - 20,
		Style: style,
	}
	nb.notes[id] = n
	onSpawn := nb.OnSpawn
	nb.mu.Unlock()

	nb.clk.AfterFunc(nb.ttl, func() { nb.expire(id) })

	if onSpawn != nil {
		onSpawn(n)
	}
	return n
}

func (nb *NoteBook) expire(id int64) {
	nb.mu.Lock()
	_, live := nb.notes[id]
	if live {
		delete(nb.notes, id)
	}
	onExpire := nb.OnExpire
	nb.mu.Unlock()

	if live && onExpire != nil {
		onExpire(id)
	}
}

// Active returns the notes currently on screen.
func (nb *NoteBook) Active() []Note {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	out := make([]Note, 0, len(nb.notes))
	for _, n := range nb.notes {
		out = append(out, n)
	}
	return out
}
