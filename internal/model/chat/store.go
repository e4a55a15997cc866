package chat

import (
	"context"
	"sync"
)

// Store exposes transcript persistence for the chat pipeline.
//
// Load never fails: a missing or unreadable transcript reads as empty so the
// service stays available even when storage is damaged. Append and Clear
// report write failures to the caller, which decides whether to surface them.
type Store interface {
	Load(ctx context.Context) []Turn
	Append(ctx context.Context, turn Turn) error
	Clear(ctx context.Context) error
}

// MemoryStore implements Store with an in-memory slice, suitable for tests.
type MemoryStore struct {
	mu    sync.Mutex
	turns []Turn
}

// NewMemoryStore returns an empty in-memory transcript store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored transcript.
func (s *MemoryStore) Load(_ context.Context) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]Turn, len(s.turns))
	copy(copied, s.turns)
	return copied
}

// Append adds a turn to the transcript.
func (s *MemoryStore) Append(_ context.Context, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	return nil
}

// Clear resets the transcript to empty.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
	return nil
}
