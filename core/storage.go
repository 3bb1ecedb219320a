package core

import "sync"

// SettingsStore persists a roster in settings form together with the
// first-run onboarding flag. LoadSettings returns DefaultSettings when
// nothing has been saved yet.
type SettingsStore interface {
	LoadSettings() (Settings, error)
	SaveSettings(Settings) error
	OnboardingShown() (bool, error)
	SetOnboardingShown(bool) error
	Close() error
}

type MemoryStore struct {
	lock       sync.RWMutex
	settings   *Settings
	onboarding bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadSettings() (Settings, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.settings == nil {
		return DefaultSettings(), nil
	}
	return cloneSettings(*s.settings), nil
}

func (s *MemoryStore) SaveSettings(settings Settings) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	cp := cloneSettings(settings)
	s.settings = &cp
	return nil
}

func (s *MemoryStore) OnboardingShown() (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.onboarding, nil
}

func (s *MemoryStore) SetOnboardingShown(shown bool) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.onboarding = shown
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func cloneSettings(s Settings) Settings {
	s.Subjects = append([]SubjectTuple(nil), s.Subjects...)
	return s
}

var (
	_ SettingsStore = (*MemoryStore)(nil)
	_ SettingsStore = (*PersistentStore)(nil)
)
