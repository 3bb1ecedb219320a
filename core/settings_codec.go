package core

import (
	"encoding/gob"
	"fmt"

	"github.com/Tresillo2017/classlimit/types"
)

// SubjectTuple is one subject as kept by a settings store.
type SubjectTuple struct {
	Name         string
	WeeklyHours  int
	CurrentSkips int
	AllowedSkips int
}

// Settings is the settings-store form of a roster. Unlike the exchange
// document it keeps the last calculated allowance of every subject.
type Settings struct {
	Subjects           []SubjectTuple
	RequiredAttendance int
	TotalWeeks         int
	SessionHours       int
}

func init() {
	gob.Register(Settings{})
	gob.Register(SubjectTuple{})
}

func DefaultSettings() Settings {
	cfg := DefaultConfig()
	return Settings{
		RequiredAttendance: cfg.RequiredAttendancePercent,
		TotalWeeks:         cfg.TotalWeeks,
		SessionHours:       cfg.SessionHours,
	}
}

func (s Settings) Config() Config {
	return Config{
		RequiredAttendancePercent: s.RequiredAttendance,
		TotalWeeks:                s.TotalWeeks,
		SessionHours:              s.SessionHours,
	}
}

// EncodeSettings projects the roster and its config into settings form.
func EncodeSettings(r *Roster) Settings {
	cfg := r.Config()
	records := r.Records()

	tuples := make([]SubjectTuple, 0, len(records))
	for _, rec := range records {
		tuples = append(tuples, SubjectTuple{
			Name:         rec.Name,
			WeeklyHours:  rec.WeeklyHours,
			CurrentSkips: rec.CurrentSkips,
			AllowedSkips: rec.AllowedSkips,
		})
	}

	return Settings{
		Subjects:           tuples,
		RequiredAttendance: cfg.RequiredAttendancePercent,
		TotalWeeks:         cfg.TotalWeeks,
		SessionHours:       cfg.SessionHours,
	}
}

// DecodeSettings rebuilds subjects from settings form. The stored allowance
// is restored as is so severities are available before the next pass.
func DecodeSettings(s Settings) ([]*Subject, Config, error) {
	subjects := make([]*Subject, 0, len(s.Subjects))
	for i, t := range s.Subjects {
		in, err := validateSubject(t.Name, t.WeeklyHours, t.CurrentSkips)
		if err != nil {
			return nil, Config{}, fmt.Errorf("stored subject %d: %w", i, err)
		}
		subjects = append(subjects, &Subject{
			ID:           types.NewSubjectID(),
			Name:         in.Name,
			WeeklyHours:  in.WeeklyHours,
			CurrentSkips: in.CurrentSkips,
			AllowedSkips: t.AllowedSkips,
		})
	}
	return subjects, s.Config(), nil
}
