package core

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const settingsFileName = "settings.gob"

type storedState struct {
	Settings        Settings
	OnboardingShown bool
}

// PersistentStore keeps the settings in a gob file inside a data directory.
type PersistentStore struct {
	mu    sync.RWMutex
	path  string
	state *storedState
}

// NewPersistentStore opens (or prepares) the settings file in dir.
func NewPersistentStore(dir string) (*PersistentStore, error) {
	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	s := &PersistentStore{
		path: filepath.Join(dir, settingsFileName),
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to create persistent storage: %v", err)
	}

	return s, nil
}

func (s *PersistentStore) LoadSettings() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return DefaultSettings(), nil
	}
	return cloneSettings(s.state.Settings), nil
}

func (s *PersistentStore) SaveSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := storedState{Settings: cloneSettings(settings)}
	if s.state != nil {
		next.OnboardingShown = s.state.OnboardingShown
	}
	return s.write(next)
}

func (s *PersistentStore) OnboardingShown() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state != nil && s.state.OnboardingShown, nil
}

func (s *PersistentStore) SetOnboardingShown(shown bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := storedState{Settings: DefaultSettings()}
	if s.state != nil {
		next = *s.state
	}
	next.OnboardingShown = shown
	return s.write(next)
}

func (s *PersistentStore) Close() error {
	return nil
}

// write replaces the settings file through a rename so a failed write never
// leaves a truncated file behind. Callers hold mu.
func (s *PersistentStore) write(state storedState) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), settingsFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create settings file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(&state); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode settings: %v", err)
	}
	// Flush to disk
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync settings file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close settings file: %v", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %v", err)
	}

	s.state = &state
	return nil
}

func (s *PersistentStore) load() error {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open settings file: %v", err)
	}
	defer f.Close()

	var state storedState
	if err := gob.NewDecoder(f).Decode(&state); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode settings: %v", err)
	}

	s.state = &state
	return nil
}
