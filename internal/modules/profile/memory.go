// README: In-memory profile store for tests and the console demo.
package profile

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]Profile)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := p
	cp.Interests = append([]string(nil), p.Interests...)
	return &cp, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, p *Profile) error {
	if id == "" || p == nil {
		return ErrBadRequest
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	cp.Interests = append([]string(nil), p.Interests...)
	s.profiles[id] = cp
	return nil
}
