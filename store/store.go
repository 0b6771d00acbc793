// Package store holds scraped lead batches in process memory, keyed by an
// opaque scrape ID. Nothing is persisted; everything is lost on restart.
package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/use-agent/leadgen/models"
)

// Store is an in-memory map of scrape batches. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	batches map[string][]models.Lead
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		batches: make(map[string][]models.Lead),
	}
}

// Put stores a new batch and returns its generated scrape ID.
func (s *Store) Put(leads []models.Lead) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.batches[id] = leads
	s.mu.Unlock()
	return id
}

// Get returns the batch for id, or false if it does not exist.
func (s *Store) Get(id string) ([]models.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	leads, ok := s.batches[id]
	return leads, ok
}

// Replace swaps the batch stored under an existing id. Returns false when
// the id is unknown (the batch is NOT created in that case).
func (s *Store) Replace(id string, leads []models.Lead) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.batches[id]; !ok {
		return false
	}
	s.batches[id] = leads
	return true
}

// Delete removes the batch for id. Returns false when the id is unknown.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.batches[id]; !ok {
		return false
	}
	delete(s.batches, id)
	return true
}

// Len reports the number of stored batches.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.batches)
}
