package core

import "fmt"

// Config holds the calculation parameters shared by every subject of a roster.
type Config struct {
	RequiredAttendancePercent int `json:"required_attendance"`
	TotalWeeks                int `json:"total_weeks"`
	SessionHours              int `json:"session_hours"`
}

const (
	DefaultRequiredAttendance = 80
	DefaultTotalWeeks         = 15
	DefaultSessionHours       = 1
)

func DefaultConfig() Config {
	return Config{
		RequiredAttendancePercent: DefaultRequiredAttendance,
		TotalWeeks:                DefaultTotalWeeks,
		SessionHours:              DefaultSessionHours,
	}
}

// EffectivePercent is the required attendance used in calculations, never below 1.
func (c Config) EffectivePercent() int {
	return max(c.RequiredAttendancePercent, 1)
}

// EffectiveSessionHours is the session length used in calculations, never below 1.
func (c Config) EffectiveSessionHours() int {
	return max(c.SessionHours, 1)
}

// Unit is the quantity skips are counted in.
type Unit byte

const (
	UnitClasses Unit = iota
	UnitSessions
)

// UnitFor returns the unit skips are displayed and tracked in: single class
// hours for one-hour sessions, whole sessions otherwise.
func UnitFor(sessionHours int) Unit {
	if sessionHours > 1 {
		return UnitSessions
	}
	return UnitClasses
}

// FromHours converts an hour count into the unit. This is the only place
// where hours turn into sessions.
func (u Unit) FromHours(hours, sessionHours int) int {
	if u == UnitSessions {
		return hours / max(sessionHours, 1)
	}
	return hours
}

func (u Unit) String() string {
	if u == UnitSessions {
		return "sessions"
	}
	return "classes"
}

func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(b []byte) error {
	switch string(b) {
	case "classes":
		*u = UnitClasses
	case "sessions":
		*u = UnitSessions
	default:
		return fmt.Errorf("unknown unit %q", string(b))
	}
	return nil
}

type CalculationResult struct {
	TotalClasses          int  `json:"total_classes"`
	AllowedAbsencePercent int  `json:"allowed_absence_percent"`
	AllowedSkipHours      int  `json:"allowed_skip_hours"`
	TotalSessions         int  `json:"total_sessions"`
	AllowedSkipSessions   int  `json:"allowed_skip_sessions"`
	AllowedSkips          int  `json:"allowed_skips"`
	Unit                  Unit `json:"unit"`
}

// Calculate derives the attendance budget for one subject. All divisions
// truncate toward zero, which keeps negative budgets (required attendance
// above 100%) consistent with the reference arithmetic.
func Calculate(weeklyHours int, cfg Config) CalculationResult {
	sessionHours := cfg.EffectiveSessionHours()
	allowedPct := 100 - cfg.EffectivePercent()

	totalClasses := weeklyHours * cfg.TotalWeeks
	allowedSkipHours := totalClasses * allowedPct / 100
	unit := UnitFor(sessionHours)

	return CalculationResult{
		TotalClasses:          totalClasses,
		AllowedAbsencePercent: allowedPct,
		AllowedSkipHours:      allowedSkipHours,
		TotalSessions:         totalClasses / sessionHours,
		AllowedSkipSessions:   allowedSkipHours / sessionHours,
		AllowedSkips:          unit.FromHours(allowedSkipHours, sessionHours),
		Unit:                  unit,
	}
}

// AggregateResult sums a calculation pass across subjects. Totals are kept
// in hours and converted to sessions from the summed values.
type AggregateResult struct {
	TotalAllowedAcrossSubjects    int  `json:"total_allowed"`
	TotalClassesAcrossSubjects    int  `json:"total_classes"`
	AllowedSessionsAcrossSubjects int  `json:"allowed_sessions"`
	TotalSessionsAcrossSubjects   int  `json:"total_sessions"`
	RequiredAttendancePercent     int  `json:"required_attendance"`
	Unit                          Unit `json:"unit"`
}

// Allowed is the aggregate allowance in the display unit.
func (a AggregateResult) Allowed() int {
	if a.Unit == UnitSessions {
		return a.AllowedSessionsAcrossSubjects
	}
	return a.TotalAllowedAcrossSubjects
}

// Total is the aggregate class count in the display unit.
func (a AggregateResult) Total() int {
	if a.Unit == UnitSessions {
		return a.TotalSessionsAcrossSubjects
	}
	return a.TotalClassesAcrossSubjects
}

func aggregate(results []CalculationResult, cfg Config) *AggregateResult {
	var allowedHours, totalHours int
	counted := false
	for _, res := range results {
		allowedHours += res.AllowedSkipHours
		totalHours += res.TotalClasses
		if res.TotalClasses > 0 {
			counted = true
		}
	}
	if !counted {
		return nil
	}

	sessionHours := cfg.EffectiveSessionHours()
	return &AggregateResult{
		TotalAllowedAcrossSubjects:    allowedHours,
		TotalClassesAcrossSubjects:    totalHours,
		AllowedSessionsAcrossSubjects: allowedHours / sessionHours,
		TotalSessionsAcrossSubjects:   totalHours / sessionHours,
		RequiredAttendancePercent:     cfg.EffectivePercent(),
		Unit:                          UnitFor(sessionHours),
	}
}
