package core

import (
	"bytes"
	"io"

	"github.com/Tresillo2017/classlimit/types"
	"github.com/bytedance/sonic"
)

const (
	ExchangeVersion     = 1
	SuggestedExportName = "classlimit-subjects.json"
)

// ExchangeDocument is the import/export file format. Allowed skips are never
// part of it; they are recomputed after an import.
type ExchangeDocument struct {
	Version            *int              `json:"version,omitempty"`
	RequiredAttendance *int              `json:"required_attendance,omitempty"`
	TotalWeeks         *int              `json:"total_weeks,omitempty"`
	SessionHours       *int              `json:"session_hours,omitempty"`
	Subjects           []ExchangeSubject `json:"subjects"`
}

type ExchangeSubject struct {
	Name         *string `json:"name,omitempty"`
	WeeklyHours  *int    `json:"weekly_hours,omitempty"`
	CurrentSkips *int    `json:"current_skips,omitempty"`
}

// ImportPlan is a fully validated document waiting to be applied.
type ImportPlan struct {
	Subjects           []*Subject
	RequiredAttendance *int
	TotalWeeks         *int
	SessionHours       *int
}

// MergeConfig applies the config values present in the document on top of prev.
func (p *ImportPlan) MergeConfig(prev Config) Config {
	cfg := prev
	if p.RequiredAttendance != nil {
		cfg.RequiredAttendancePercent = *p.RequiredAttendance
	}
	if p.TotalWeeks != nil {
		cfg.TotalWeeks = *p.TotalWeeks
	}
	if p.SessionHours != nil {
		cfg.SessionHours = *p.SessionHours
	}
	return cfg
}

// Apply replaces the whole roster with the plan.
func (p *ImportPlan) Apply(r *Roster) {
	r.Replace(p.Subjects, p.MergeConfig(r.Config()))
	r.logger.Log("msg", "imported roster", "subjects", len(p.Subjects))
}

func intPtr(v int) *int { return &v }

// EncodeExchange renders the roster as a pretty printed exchange document.
func EncodeExchange(r *Roster) ([]byte, error) {
	cfg := r.Config()
	records := r.Records()

	doc := ExchangeDocument{
		Version:            intPtr(ExchangeVersion),
		RequiredAttendance: intPtr(cfg.RequiredAttendancePercent),
		TotalWeeks:         intPtr(cfg.TotalWeeks),
		SessionHours:       intPtr(cfg.SessionHours),
		Subjects:           make([]ExchangeSubject, 0, len(records)),
	}
	for _, rec := range records {
		name := rec.Name
		doc.Subjects = append(doc.Subjects, ExchangeSubject{
			Name:         &name,
			WeeklyHours:  intPtr(rec.WeeklyHours),
			CurrentSkips: intPtr(rec.CurrentSkips),
		})
	}

	data, err := sonic.ConfigStd.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return nil, &ExportError{Err: err}
	}
	return data, nil
}

// WriteExchange encodes the roster and writes it to w.
func WriteExchange(w io.Writer, r *Roster) error {
	data, err := EncodeExchange(r)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return &ExportError{Err: err}
	}
	return nil
}

// DecodeExchange parses and validates a whole document without touching any
// roster. Every failure is an *ImportError.
func DecodeExchange(data []byte) (*ImportPlan, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ImportError{Reason: "empty document"}
	}

	var doc ExchangeDocument
	if err := sonic.ConfigStd.Unmarshal(data, &doc); err != nil {
		return nil, importErrorf(err, "malformed document")
	}

	if doc.Version != nil && *doc.Version > ExchangeVersion {
		return nil, importErrorf(nil, "unsupported version %d", *doc.Version)
	}
	if doc.Subjects == nil {
		return nil, importErrorf(nil, "missing subjects list")
	}

	subjects := make([]*Subject, 0, len(doc.Subjects))
	for i, es := range doc.Subjects {
		if es.Name == nil || es.WeeklyHours == nil {
			return nil, importErrorf(nil, "subject %d: name and weekly_hours are required", i)
		}
		skips := 0
		if es.CurrentSkips != nil {
			skips = *es.CurrentSkips
		}

		in, err := validateSubject(*es.Name, *es.WeeklyHours, skips)
		if err != nil {
			return nil, importErrorf(err, "subject %d", i)
		}
		subjects = append(subjects, &Subject{
			ID:           types.NewSubjectID(),
			Name:         in.Name,
			WeeklyHours:  in.WeeklyHours,
			CurrentSkips: in.CurrentSkips,
		})
	}

	return &ImportPlan{
		Subjects:           subjects,
		RequiredAttendance: doc.RequiredAttendance,
		TotalWeeks:         doc.TotalWeeks,
		SessionHours:       doc.SessionHours,
	}, nil
}

// ReadExchange reads a full document from rd and decodes it.
func ReadExchange(rd io.Reader) (*ImportPlan, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, importErrorf(err, "unreadable document")
	}
	return DecodeExchange(data)
}
