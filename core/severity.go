package core

import "fmt"

type Severity byte

const (
	SeverityNeutral Severity = iota
	SeverityOK
	SeverityWarning
	SeverityCritical
)

// warningThreshold is the largest remaining budget still reported as a warning.
const warningThreshold = 2

// SeverityFor classifies a budget. A zero allowance means nothing has been
// calculated yet, which is neutral whatever the skip count.
func SeverityFor(allowedSkips, remaining int) Severity {
	switch {
	case allowedSkips == 0:
		return SeverityNeutral
	case remaining < 0:
		return SeverityCritical
	case remaining <= warningThreshold:
		return SeverityWarning
	default:
		return SeverityOK
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityNeutral:
		return "neutral"
	case SeverityOK:
		return "ok"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("severity(%d)", byte(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "neutral":
		*s = SeverityNeutral
	case "ok":
		*s = SeverityOK
	case "warning":
		*s = SeverityWarning
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}
