package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
)

// FileStore persists the transcript as a JSON array in a single file,
// rewritten wholesale on every change. The mutex serializes the
// load-modify-save cycle so overlapping requests cannot interleave; writers
// in other processes remain out of scope.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the file at path. The file is
// created on first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the persisted transcript. A missing or corrupt file reads as
// an empty transcript.
func (s *FileStore) Load(_ context.Context) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Append adds one turn to the persisted transcript.
func (s *FileStore) Append(_ context.Context, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.loadLocked(), turn)
	return s.saveLocked(turns)
}

// Clear persists an empty transcript.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked([]Turn{})
}

func (s *FileStore) loadLocked() []Turn {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[store] failed to read %s: %v", s.path, err)
		}
		return []Turn{}
	}

	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		log.Printf("[store] ignoring corrupt transcript in %s: %v", s.path, err)
		return []Turn{}
	}
	return turns
}

func (s *FileStore) saveLocked(turns []Turn) error {
	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
