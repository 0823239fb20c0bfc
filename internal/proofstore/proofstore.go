package proofstore

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Proof is an uploaded payment evidence blob.
type Proof struct {
	Ref         string
	Filename    string
	ContentType string
	Data        []byte
}

// Store keeps deposit proof blobs in memory and hands out opaque
// references; the request ledger stores only the reference.
type Store struct {
	mu     sync.RWMutex
	proofs map[string]Proof
}

func New() *Store {
	return &Store{proofs: make(map[string]Proof)}
}

// Put stores a blob and returns its reference.
func (s *Store) Put(filename, contentType string, data []byte) string {
	ref := "proof_" + strings.ToUpper(uuid.New().String()[:8])

	s.mu.Lock()
	defer s.mu.Unlock()
	s.proofs[ref] = Proof{
		Ref:         ref,
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}
	return ref
}

// Get retrieves a blob by reference.
func (s *Store) Get(ref string) (Proof, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proofs[ref]
	return p, ok
}
