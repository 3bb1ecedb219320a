package database

import (
	"strings"
	"testing"

	"github.com/Tresillo2017/classlimit/config"
	"github.com/Tresillo2017/classlimit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// newDryRunDB builds statements against the postgres dialect without
// opening a connection.
func newDryRunDB(t *testing.T) *gorm.DB {
	dsn := DSN(config.DBConfig{
		User:     "classlimit",
		Password: "secret",
		Host:     "localhost",
		Port:     "5432",
		Name:     "classlimit",
		SSLMode:  "disable",
	})
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormLogger.Discard,
	})
	require.NoError(t, err)
	return db
}

func TestFindSubjectsOrdersByPosition(t *testing.T) {
	db := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []SubjectModel
		return findSubjects(tx, &out)
	})
	assert.Contains(t, sql, `FROM "classlimit_subjects"`)
	assert.Contains(t, sql, "ORDER BY position ASC")
}

func TestFindConfigValuesSelectsConfigKeys(t *testing.T) {
	db := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out []SettingModel
		return findConfigValues(tx, &out)
	})
	assert.Contains(t, sql, `FROM "classlimit_settings"`)
	assert.Contains(t, sql, "key IN ('required-attendance','total-weeks','session-hours')")
	assert.NotContains(t, sql, keyOnboardingShown)
}

func TestFindSettingByKey(t *testing.T) {
	db := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var out SettingModel
		return findSetting(tx, keyOnboardingShown, &out)
	})
	assert.Contains(t, sql, "key = 'onboarding-shown'")
	assert.Contains(t, sql, "LIMIT 1")
}

func TestClearSubjectsDeletesEveryRow(t *testing.T) {
	db := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return clearSubjects(tx)
	})
	assert.Contains(t, sql, `DELETE FROM "classlimit_subjects"`)
	assert.NotContains(t, sql, "WHERE")
}

func TestInsertSubjectsKeepsRosterOrder(t *testing.T) {
	db := newDryRunDB(t)
	models := subjectModels(core.Settings{Subjects: []core.SubjectTuple{
		{Name: "Algorithms", WeeklyHours: 4, CurrentSkips: 1, AllowedSkips: 12},
		{Name: "Physics", WeeklyHours: 2, CurrentSkips: 3, AllowedSkips: 6},
	}})

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return insertSubjects(tx, models)
	})
	assert.Contains(t, sql, `INSERT INTO "classlimit_subjects"`)
	assert.Contains(t, sql, `"position"`)
	assert.Contains(t, sql, "'Algorithms'")
	assert.Less(t, strings.Index(sql, "'Algorithms'"), strings.Index(sql, "'Physics'"))
}

func TestUpsertSettingsOnConflictKey(t *testing.T) {
	db := newDryRunDB(t)
	values := settingModels(core.Settings{RequiredAttendance: 75, TotalWeeks: 14, SessionHours: 2})

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertSettings(tx, values)
	})
	assert.Contains(t, sql, `INSERT INTO "classlimit_settings"`)
	assert.Contains(t, sql, "('required-attendance',75)")
	assert.Contains(t, sql, "('total-weeks',14)")
	assert.Contains(t, sql, "('session-hours',2)")
	assert.Contains(t, sql, `ON CONFLICT ("key") DO UPDATE SET "value"="excluded"."value"`)
}

func TestSetOnboardingShownUpsertsFlag(t *testing.T) {
	db := newDryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertSettings(tx, []SettingModel{{Key: keyOnboardingShown, Value: 1}})
	})
	assert.Contains(t, sql, "('onboarding-shown',1)")
	assert.Contains(t, sql, `ON CONFLICT ("key")`)
}

func TestDryRunLoadKeepsDefaults(t *testing.T) {
	store := &SettingsStore{db: newDryRunDB(t)}

	settings, err := store.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSettings(), settings)

	shown, err := store.OnboardingShown()
	require.NoError(t, err)
	assert.False(t, shown)
}
