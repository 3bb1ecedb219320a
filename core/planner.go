package core

import (
	"fmt"
	"io"
	"sync"

	"github.com/Tresillo2017/classlimit/types"
	"github.com/go-kit/log"
)

// Planner is the entry point for user intents. It owns a roster, serialises
// every operation on it and saves the roster after each mutation.
type Planner struct {
	logger   log.Logger
	store    SettingsStore
	defaults Config

	lock   sync.Mutex
	roster *Roster
}

// NewPlanner loads the roster from store.
func NewPlanner(logger log.Logger, store SettingsStore) (*Planner, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	settings, err := store.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	subjects, cfg, err := DecodeSettings(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	roster := NewRoster(logger, cfg)
	roster.Replace(subjects, cfg)
	logger.Log("msg", "loaded roster", "subjects", roster.Len())

	return &Planner{
		logger:   logger,
		store:    store,
		defaults: DefaultConfig(),
		roster:   roster,
	}, nil
}

func (p *Planner) Config() Config {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.roster.Config()
}

func (p *Planner) Subjects() []SubjectRecord {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.roster.Records()
}

func (p *Planner) AddSubject(name string, weeklyHours int) (SubjectRecord, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	s, err := p.roster.AddSubject(name, weeklyHours)
	if err != nil {
		return SubjectRecord{}, err
	}
	return s.Record(), p.save()
}

func (p *Planner) RemoveSubject(id types.SubjectID) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.roster.RemoveSubject(id)
	return p.save()
}

func (p *Planner) IncrementSkips(id types.SubjectID) (SubjectRecord, error) {
	return p.track(id, (*Subject).Increment)
}

func (p *Planner) DecrementSkips(id types.SubjectID) (SubjectRecord, error) {
	return p.track(id, (*Subject).Decrement)
}

func (p *Planner) ResetSkips(id types.SubjectID) (SubjectRecord, error) {
	return p.track(id, (*Subject).ResetSkips)
}

func (p *Planner) track(id types.SubjectID, op func(*Subject)) (SubjectRecord, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	s, ok := p.roster.Subject(id)
	if !ok {
		return SubjectRecord{}, fmt.Errorf("%w: %s", ErrSubjectNotFound, id)
	}
	op(s)
	return s.Record(), p.save()
}

func (p *Planner) SetConfig(cfg Config) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.roster.SetConfig(cfg)
	return p.save()
}

// UpdateConfig applies fn to a copy of the current config and stores the
// result. Read, change and save happen under one lock hold.
func (p *Planner) UpdateConfig(fn func(*Config)) (Config, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	cfg := p.roster.Config()
	fn(&cfg)
	p.roster.SetConfig(cfg)
	return cfg, p.save()
}

// Recalculate runs a pass with the current config.
func (p *Planner) Recalculate() (*Recalculation, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	res := p.roster.Recalculate(p.roster.Config())
	return res, p.save()
}

func (p *Planner) ResetAll() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.roster.ResetAll(p.defaults)
	return p.save()
}

// Import replaces the roster with the document in data. A document that
// fails to decode leaves the roster untouched.
func (p *Planner) Import(data []byte) error {
	plan, err := DecodeExchange(data)
	if err != nil {
		p.logger.Log("msg", "import rejected", "err", err)
		return err
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	plan.Apply(p.roster)
	return p.save()
}

// Export writes the roster as an exchange document to w.
func (p *Planner) Export(w io.Writer) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if err := WriteExchange(w, p.roster); err != nil {
		p.logger.Log("msg", "export failed", "err", err)
		return err
	}
	return nil
}

func (p *Planner) OnboardingShown() (bool, error) {
	return p.store.OnboardingShown()
}

func (p *Planner) MarkOnboardingShown() error {
	return p.store.SetOnboardingShown(true)
}

// save is called with lock held.
func (p *Planner) save() error {
	if err := p.store.SaveSettings(EncodeSettings(p.roster)); err != nil {
		p.logger.Log("msg", "failed to save settings", "err", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
