package core

import (
	"github.com/Tresillo2017/classlimit/types"
	"github.com/go-kit/log"
)

// Roster is the ordered set of tracked subjects plus the config that governs
// their calculation. It is not safe for concurrent use; Planner serialises
// access to it.
type Roster struct {
	logger   log.Logger
	subjects []*Subject
	config   Config
}

func NewRoster(logger log.Logger, cfg Config) *Roster {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Roster{
		logger: logger,
		config: cfg,
	}
}

// SubjectResult is the outcome of one subject in a recalculation pass.
type SubjectResult struct {
	SubjectID    types.SubjectID `json:"subject_id"`
	Name         string          `json:"name"`
	WeeklyHours  int             `json:"weekly_hours"`
	CurrentSkips int             `json:"current_skips"`
	Remaining    int             `json:"remaining"`
	Severity     Severity        `json:"severity"`
	CalculationResult
}

type Recalculation struct {
	Config     Config           `json:"config"`
	PerSubject []SubjectResult  `json:"subjects"`
	Aggregate  *AggregateResult `json:"aggregate,omitempty"`
}

func (r *Roster) Config() Config {
	return r.config
}

func (r *Roster) SetConfig(cfg Config) {
	r.config = cfg
}

func (r *Roster) Len() int {
	return len(r.subjects)
}

// Subjects returns the subjects in roster order. The slice is a copy; the
// subjects are not.
func (r *Roster) Subjects() []*Subject {
	out := make([]*Subject, len(r.subjects))
	copy(out, r.subjects)
	return out
}

func (r *Roster) Subject(id types.SubjectID) (*Subject, bool) {
	for _, s := range r.subjects {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

func (r *Roster) AddSubject(name string, weeklyHours int) (*Subject, error) {
	s, err := NewSubject(name, weeklyHours)
	if err != nil {
		return nil, err
	}

	r.subjects = append(r.subjects, s)
	r.logger.Log("msg", "added subject", "id", s.ID, "name", s.Name, "weekly_hours", s.WeeklyHours)

	return s, nil
}

// RemoveSubject is a no-op for ids that are not in the roster.
func (r *Roster) RemoveSubject(id types.SubjectID) {
	for i, s := range r.subjects {
		if s.ID == id {
			r.subjects = append(r.subjects[:i], r.subjects[i+1:]...)
			r.logger.Log("msg", "removed subject", "id", id, "name", s.Name)
			return
		}
	}
}

// Recalculate runs the calculator over every subject in order with cfg,
// which becomes the roster config. Derived subject fields are overwritten.
func (r *Roster) Recalculate(cfg Config) *Recalculation {
	r.config = cfg

	results := make([]CalculationResult, 0, len(r.subjects))
	perSubject := make([]SubjectResult, 0, len(r.subjects))
	for _, s := range r.subjects {
		res := Calculate(s.WeeklyHours, cfg)
		s.apply(res)

		results = append(results, res)
		perSubject = append(perSubject, SubjectResult{
			SubjectID:         s.ID,
			Name:              s.Name,
			WeeklyHours:       s.WeeklyHours,
			CurrentSkips:      s.CurrentSkips,
			Remaining:         s.Remaining(),
			Severity:          s.Severity(),
			CalculationResult: res,
		})
	}

	agg := aggregate(results, cfg)
	r.logger.Log(
		"msg", "recalculated roster",
		"subjects", len(perSubject),
		"required_attendance", cfg.EffectivePercent(),
		"total_weeks", cfg.TotalWeeks,
		"session_hours", cfg.EffectiveSessionHours())

	return &Recalculation{
		Config:     cfg,
		PerSubject: perSubject,
		Aggregate:  agg,
	}
}

// ResetAll drops every subject and restores the given config.
func (r *Roster) ResetAll(defaults Config) {
	r.subjects = nil
	r.config = defaults
	r.logger.Log("msg", "reset roster")
}

// Replace swaps in a new set of subjects and config at once.
func (r *Roster) Replace(subjects []*Subject, cfg Config) {
	r.subjects = append([]*Subject(nil), subjects...)
	r.config = cfg
}

// Records projects the roster into flat records in roster order.
func (r *Roster) Records() []SubjectRecord {
	out := make([]SubjectRecord, 0, len(r.subjects))
	for _, s := range r.subjects {
		out = append(out, s.Record())
	}
	return out
}
