// README: In-memory conversation log for tests and the console demo.
package conversation

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]Turn
	maxTurns int
}

func NewMemoryStore(maxTurns int) *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Turn), maxTurns: maxTurns}
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, t Turn) error {
	if sessionID == "" {
		return ErrBadRequest
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.sessions[sessionID], t)
	if len(turns) > s.maxTurns {
		turns = turns[len(turns)-s.maxTurns:]
	}
	s.sessions[sessionID] = turns
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, sessionID string, n int) ([]Turn, error) {
	if sessionID == "" {
		return nil, ErrBadRequest
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.sessions[sessionID]
	if n <= 0 || n > len(turns) {
		n = len(turns)
	}
	out := make([]Turn, n)
	copy(out, turns[len(turns)-n:])
	return out, nil
}
