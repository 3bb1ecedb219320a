package database

import (
	"errors"
	"fmt"

	"github.com/Tresillo2017/classlimit/core"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsStore keeps the roster settings in postgres.
type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) (*SettingsStore, error) {
	if err := db.AutoMigrate(&SubjectModel{}, &SettingModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate settings tables: %w", err)
	}
	return &SettingsStore{db: db}, nil
}

func (s *SettingsStore) LoadSettings() (core.Settings, error) {
	var subjects []SubjectModel
	if err := findSubjects(s.db, &subjects).Error; err != nil {
		return core.Settings{}, fmt.Errorf("failed to load subjects: %w", err)
	}

	var values []SettingModel
	if err := findConfigValues(s.db, &values).Error; err != nil {
		return core.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	return settingsFromModels(subjects, values), nil
}

// SaveSettings replaces every stored subject and config value in one transaction.
func (s *SettingsStore) SaveSettings(settings core.Settings) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := clearSubjects(tx).Error; err != nil {
			return fmt.Errorf("failed to clear subjects: %w", err)
		}

		if models := subjectModels(settings); len(models) > 0 {
			if err := insertSubjects(tx, models).Error; err != nil {
				return fmt.Errorf("failed to store subjects: %w", err)
			}
		}

		if err := upsertSettings(tx, settingModels(settings)).Error; err != nil {
			return fmt.Errorf("failed to store settings: %w", err)
		}
		return nil
	})
}

func (s *SettingsStore) OnboardingShown() (bool, error) {
	var m SettingModel
	err := findSetting(s.db, keyOnboardingShown, &m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load onboarding flag: %w", err)
	}
	return m.Value != 0, nil
}

func (s *SettingsStore) SetOnboardingShown(shown bool) error {
	value := 0
	if shown {
		value = 1
	}
	if err := upsertSettings(s.db, []SettingModel{{Key: keyOnboardingShown, Value: value}}).Error; err != nil {
		return fmt.Errorf("failed to store onboarding flag: %w", err)
	}
	return nil
}

func (s *SettingsStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func findSubjects(db *gorm.DB, out *[]SubjectModel) *gorm.DB {
	return db.Order("position ASC").Find(out)
}

func findConfigValues(db *gorm.DB, out *[]SettingModel) *gorm.DB {
	return db.Where("key IN ?", []string{keyRequiredAttendance, keyTotalWeeks, keySessionHours}).Find(out)
}

func findSetting(db *gorm.DB, key string, out *SettingModel) *gorm.DB {
	return db.Where("key = ?", key).First(out)
}

func clearSubjects(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&SubjectModel{})
}

func insertSubjects(db *gorm.DB, models []SubjectModel) *gorm.DB {
	return db.Create(&models)
}

func upsertSettings(db *gorm.DB, values []SettingModel) *gorm.DB {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&values)
}

var _ core.SettingsStore = (*SettingsStore)(nil)
