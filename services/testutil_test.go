package services

import (
	"testing"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"
	"github.com/OCHOLLA20/75hard-fitness-tracker/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	utils.Logger = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.DailyProgress{},
		&models.Workout{},
		&models.UserDevice{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()

	hashed, err := utils.HashPassword("hunter2-hunter2")
	require.NoError(t, err)

	user := &models.User{
		Email:    email,
		Username: username,
		Password: hashed,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedDay inserts a checklist record. completed toggles all six requirements
// at once so the derived flag matches.
func seedDay(t *testing.T, db *gorm.DB, userID uint, day int, date time.Time, completed bool) *models.DailyProgress {
	t.Helper()

	water := 0
	if completed {
		water = WaterGoalLiters
	}
	p := &models.DailyProgress{
		UserID:             userID,
		DayNumber:          day,
		Date:               date,
		MorningWorkoutDone: completed,
		EveningWorkoutDone: completed,
		WaterIntakeLiters:  water,
		DietFollowed:       completed,
		PhotoTaken:         completed,
		ReadingDone:        completed,
		Completed:          completed,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func day(offset int) time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, offset)
}
