package mock

var MockSubjects = []struct {
	Name         string
	WeeklyHours  int
	CurrentSkips int
}{
	{
		Name:         "Algorithms",
		WeeklyHours:  4,
		CurrentSkips: 1,
	},
	{
		Name:         "Operating Systems",
		WeeklyHours:  3,
		CurrentSkips: 0,
	},
	{
		Name:         "Linear Algebra",
		WeeklyHours:  2,
		CurrentSkips: 5,
	},
	{
		Name:         "Computer Networks",
		WeeklyHours:  6,
		CurrentSkips: 3,
	},
}

// ExchangeDocument mirrors the documented import/export file shape.
const ExchangeDocument = `{
  "version": 1,
  "required_attendance": 80,
  "total_weeks": 15,
  "session_hours": 1,
  "subjects": [
    {"name": "Algorithms", "weekly_hours": 4, "current_skips": 1}
  ]
}`
