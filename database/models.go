package database

import (
	"github.com/Tresillo2017/classlimit/core"
)

// SubjectModel is one stored subject tuple. Position keeps roster order.
type SubjectModel struct {
	ID           uint   `gorm:"column:id;primaryKey"`
	Position     int    `gorm:"column:position;not null;index"`
	Name         string `gorm:"column:name;type:text;not null"`
	WeeklyHours  int    `gorm:"column:weekly_hours;not null"`
	CurrentSkips int    `gorm:"column:current_skips;not null;default:0"`
	AllowedSkips int    `gorm:"column:allowed_skips;not null;default:0"`
}

func (SubjectModel) TableName() string {
	return "classlimit_subjects"
}

// SettingModel is a single named scalar setting.
type SettingModel struct {
	Key   string `gorm:"column:key;type:varchar(64);primaryKey"`
	Value int    `gorm:"column:value;not null"`
}

func (SettingModel) TableName() string {
	return "classlimit_settings"
}

const (
	keyRequiredAttendance = "required-attendance"
	keyTotalWeeks         = "total-weeks"
	keySessionHours       = "session-hours"
	keyOnboardingShown    = "onboarding-shown"
)

func subjectModels(s core.Settings) []SubjectModel {
	out := make([]SubjectModel, 0, len(s.Subjects))
	for i, t := range s.Subjects {
		out = append(out, SubjectModel{
			Position:     i,
			Name:         t.Name,
			WeeklyHours:  t.WeeklyHours,
			CurrentSkips: t.CurrentSkips,
			AllowedSkips: t.AllowedSkips,
		})
	}
	return out
}

func settingModels(s core.Settings) []SettingModel {
	return []SettingModel{
		{Key: keyRequiredAttendance, Value: s.RequiredAttendance},
		{Key: keyTotalWeeks, Value: s.TotalWeeks},
		{Key: keySessionHours, Value: s.SessionHours},
	}
}

// settingsFromModels rebuilds settings; keys that were never stored keep
// their defaults. subjects must already be ordered by position.
func settingsFromModels(subjects []SubjectModel, values []SettingModel) core.Settings {
	s := core.DefaultSettings()
	for _, v := range values {
		switch v.Key {
		case keyRequiredAttendance:
			s.RequiredAttendance = v.Value
		case keyTotalWeeks:
			s.TotalWeeks = v.Value
		case keySessionHours:
			s.SessionHours = v.Value
		}
	}

	for _, m := range subjects {
		s.Subjects = append(s.Subjects, core.SubjectTuple{
			Name:         m.Name,
			WeeklyHours:  m.WeeklyHours,
			CurrentSkips: m.CurrentSkips,
			AllowedSkips: m.AllowedSkips,
		})
	}
	return s
}
