package core

import (
	"github.com/Tresillo2017/classlimit/types"
)

// Subject is one tracked course. TotalClasses, AllowedSkipHours and
// AllowedSkips are overwritten by every recalculation and are zero until the
// first one. CurrentSkips is only changed through the skip methods below.
type Subject struct {
	ID               types.SubjectID
	Name             string
	WeeklyHours      int
	CurrentSkips     int
	TotalClasses     int
	AllowedSkipHours int
	AllowedSkips     int
}

// NewSubject creates a subject with no skips and no calculated budget.
func NewSubject(name string, weeklyHours int) (*Subject, error) {
	in, err := validateSubjectInput(name, weeklyHours)
	if err != nil {
		return nil, err
	}

	return &Subject{
		ID:          types.NewSubjectID(),
		Name:        in.Name,
		WeeklyHours: in.WeeklyHours,
	}, nil
}

// Increment saturates at MaxCurrentSkips so a stored roster always reloads.
func (s *Subject) Increment() {
	if s.CurrentSkips < MaxCurrentSkips {
		s.CurrentSkips++
	}
}

func (s *Subject) Decrement() {
	if s.CurrentSkips > 0 {
		s.CurrentSkips--
	}
}

func (s *Subject) ResetSkips() {
	s.CurrentSkips = 0
}

// Remaining may be negative once the budget is exceeded.
func (s *Subject) Remaining() int {
	return s.AllowedSkips - s.CurrentSkips
}

func (s *Subject) Severity() Severity {
	return SeverityFor(s.AllowedSkips, s.Remaining())
}

func (s *Subject) apply(res CalculationResult) {
	s.TotalClasses = res.TotalClasses
	s.AllowedSkipHours = res.AllowedSkipHours
	s.AllowedSkips = res.AllowedSkips
}

// SubjectRecord is the flat view of a subject shared by the codecs and the
// display surfaces.
type SubjectRecord struct {
	ID           types.SubjectID `json:"id"`
	Name         string          `json:"name"`
	WeeklyHours  int             `json:"weekly_hours"`
	CurrentSkips int             `json:"current_skips"`
	AllowedSkips int             `json:"allowed_skips"`
	TotalClasses int             `json:"total_classes"`
	Remaining    int             `json:"remaining"`
	Severity     Severity        `json:"severity"`
}

func (s *Subject) Record() SubjectRecord {
	return SubjectRecord{
		ID:           s.ID,
		Name:         s.Name,
		WeeklyHours:  s.WeeklyHours,
		CurrentSkips: s.CurrentSkips,
		AllowedSkips: s.AllowedSkips,
		TotalClasses: s.TotalClasses,
		Remaining:    s.Remaining(),
		Severity:     s.Severity(),
	}
}
