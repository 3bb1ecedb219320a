package core

import "fmt"

// SubjectSubtitle is the one-line status shown under a subject.
func SubjectSubtitle(rec SubjectRecord) string {
	if rec.AllowedSkips > 0 {
		return fmt.Sprintf("%d h/week • Skipped: %d • Remaining: %d", rec.WeeklyHours, rec.CurrentSkips, rec.Remaining)
	}
	return fmt.Sprintf("%d h/week • Skipped: %d", rec.WeeklyHours, rec.CurrentSkips)
}

// ResultSubtitle is the subject status right after a calculation pass. A
// subject with no allowance shows its hours only.
func ResultSubtitle(r SubjectResult) string {
	if r.AllowedSkips > 0 {
		return fmt.Sprintf("%d h/week • Skipped: %d • Remaining: %d", r.WeeklyHours, r.CurrentSkips, r.Remaining)
	}
	return fmt.Sprintf("%d h/week", r.WeeklyHours)
}

// ResultDetail describes a subject's budget in its display unit.
func ResultDetail(res CalculationResult) string {
	if res.Unit == UnitSessions {
		return fmt.Sprintf("%d sessions allowed • %d total sessions", res.AllowedSkipSessions, res.TotalSessions)
	}
	return fmt.Sprintf("%d classes allowed • %d total classes", res.AllowedSkipHours, res.TotalClasses)
}

func AggregateSummary(a AggregateResult) string {
	return fmt.Sprintf("Total: %d %s allowed to skip", a.Allowed(), a.Unit)
}

func AggregateDetail(a AggregateResult) string {
	return fmt.Sprintf("Out of %d total %s (%d%% attendance required)", a.Total(), a.Unit, a.RequiredAttendancePercent)
}
