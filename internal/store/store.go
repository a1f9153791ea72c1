package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"reservasport/internal/db"

	"github.com/rs/zerolog/log"
)

// Store persists the whole application state as one JSON document. Every
// mutation runs inside Update, which holds the write lock across
// load, mutate and persist, so read-modify-write sequences from concurrent
// requests are serialized.
type Store struct {
	mu   sync.RWMutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Init creates the data file with the seed catalog when it does not exist.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat data file: %w", err)
	}
	log.Info().Str("path", s.path).Msg("data file missing, seeding initial catalog")
	return s.write(SeedSnapshot())
}

// View passes the current snapshot to fn under a read lock. fn must not
// retain the snapshot beyond the call.
func (s *Store) View(fn func(*db.Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, err := s.read()
	if err != nil {
		return err
	}
	return fn(snap)
}

// Update passes the current snapshot to fn under the write lock and persists
// it when fn succeeds. When fn returns an error nothing is written.
func (s *Store) Update(fn func(*db.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.write(snap)
}

func (s *Store) read() (*db.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var snap db.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	if snap.AdminTokens == nil {
		snap.AdminTokens = make(map[string]db.AdminToken)
	}
	return &snap, nil
}

// write persists via temp file + rename so a crash mid-write never leaves a
// truncated data file behind.
func (s *Store) write(snap *db.Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".data-*.json")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close data file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
