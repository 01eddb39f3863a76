package matsvc

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/patina/pkg/material"
)

// Record is one registered material with its registry metadata.
type Record struct {
	ID       string
	Name     string
	Created  time.Time
	Material *material.Material
}

// Store is an in-memory material registry. List order is insertion order.
type Store struct {
	mu      sync.Mutex
	records map[string]*Record
	order   []string
}

func NewStore() *Store {
	return &Store{records: make(map[string]*Record)}
}

func (s *Store) Create(name string, m *material.Material, now time.Time) *Record {
	rec := &Record{
		ID:       "mat_" + uuid.NewString(),
		Name:     name,
		Created:  now,
		Material: m,
	}
	s.mu.Lock()
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	s.mu.Unlock()
	return rec
}

func (s *Store) Get(id string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	return rec, ok
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store) List() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}
