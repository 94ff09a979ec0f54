package services

import (
	"testing"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardZeroRecords(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	svc := NewStatsService(db, false)

	out, err := svc.Dashboard(user.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusNotStarted, out.Status)
	assert.Zero(t, out.TotalDaysTracked)
	assert.False(t, out.TodayTracked)
	assert.Zero(t, out.TaskRates.MorningWorkouts)
}

func TestDashboardTodayTracked(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	seedDay(t, db, user.ID, 1, time.Now(), true)
	svc := NewStatsService(db, false)

	out, err := svc.Dashboard(user.ID)
	require.NoError(t, err)
	assert.True(t, out.TodayTracked)
	assert.Equal(t, 1, out.TotalDaysCompleted)
}

func TestDashboardUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, false)

	_, err := svc.Dashboard(42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDetailedFailureAnalysis(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	seedDay(t, db, user.ID, 1, day(0), true)
	failed := seedDay(t, db, user.ID, 2, day(1), false)
	failed.MorningWorkoutDone = true
	failed.WaterIntakeLiters = 4
	require.NoError(t, db.Save(failed).Error)
	svc := NewStatsService(db, false)

	out, err := svc.Detailed(user.ID)
	require.NoError(t, err)

	require.Len(t, out.FailedDays, 1)
	assert.Equal(t, 2, out.FailedDays[0].DayNumber)
	assert.ElementsMatch(t,
		[]string{"evening_workout", "diet", "progress_photo", "reading"},
		out.FailedDays[0].MissedTasks)
}

func TestWorkoutTrends(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	p1 := seedDay(t, db, user.ID, 1, day(0), false)
	p2 := seedDay(t, db, user.ID, 2, day(1), false)

	workouts := []models.Workout{
		{UserID: user.ID, DailyProgressID: p1.ID, Slot: models.SlotMorning, Category: "running", DurationMinutes: 30, Outdoor: true},
		{UserID: user.ID, DailyProgressID: p1.ID, Slot: models.SlotEvening, Category: "lifting", DurationMinutes: 60},
		{UserID: user.ID, DailyProgressID: p2.ID, Slot: models.SlotMorning, Category: "running", DurationMinutes: 50, Outdoor: true},
	}
	require.NoError(t, db.Create(&workouts).Error)
	svc := NewStatsService(db, false)

	out, err := svc.Workouts(user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.TotalWorkouts)
	assert.Equal(t, int64(140), out.TotalMinutes)
	assert.Equal(t, 46.7, out.AverageMinutes)
	assert.Equal(t, 66.7, out.OutdoorPercent)
	assert.Equal(t, int64(2), out.MorningWorkouts)
	require.Len(t, out.ByCategory, 2)
	assert.Equal(t, "lifting", out.ByCategory[0].Category)
	assert.Equal(t, "running", out.ByCategory[1].Category)
	assert.Equal(t, 40.0, out.ByCategory[1].AverageMinutes)
}

func TestWaterTrends(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	for i, liters := range []int{4, 2, 4} {
		p := seedDay(t, db, user.ID, i+1, day(i), false)
		p.WaterIntakeLiters = liters
		require.NoError(t, db.Save(p).Error)
	}
	svc := NewStatsService(db, false)

	out, err := svc.Water(user.ID)
	require.NoError(t, err)

	require.Len(t, out.Days, 3)
	assert.Equal(t, []float64{4.0, 3.0, 3.3},
		[]float64{out.Days[0].MovingAverage, out.Days[1].MovingAverage, out.Days[2].MovingAverage})
	assert.Equal(t, 2, out.GoalMetDays)
	assert.Equal(t, 66.7, out.GoalMetPercent)
	assert.Equal(t, 3.3, out.AverageLiters)
}

func TestComparativePercentiles(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com", "alice")
	bob := seedUser(t, db, "bob@example.com", "bob")

	// alice completes both days, bob completes neither
	seedDay(t, db, alice.ID, 1, day(0), true)
	seedDay(t, db, alice.ID, 2, day(1), true)
	seedDay(t, db, bob.ID, 1, day(0), false)
	seedDay(t, db, bob.ID, 2, day(1), false)
	svc := NewStatsService(db, false)

	out, err := svc.Comparative(alice.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, out.UsersWithData)
	assert.Equal(t, 100.0, out.CompletionRate.Value)
	assert.Equal(t, 50.0, out.CompletionRate.Percentile)
	assert.Equal(t, 2.0, out.LongestStreak.Value)
	assert.Equal(t, 50.0, out.LongestStreak.Percentile)

	low, err := svc.Comparative(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, low.CompletionRate.Percentile)
}

func TestComparativeUserWithoutData(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com", "alice")
	svc := NewStatsService(db, false)

	out, err := svc.Comparative(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, out.UsersWithData)
	assert.Zero(t, out.CompletionRate.Percentile)
}

func TestOverview(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com", "alice")
	bob := seedUser(t, db, "bob@example.com", "bob")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", alice.ID).
		Update("challenge_start_date", day(0)).Error)

	seedDay(t, db, alice.ID, 1, day(0), true)
	seedDay(t, db, bob.ID, 1, day(0), false)
	svc := NewStatsService(db, false)

	out, err := svc.Overview()
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.TotalUsers)
	assert.Equal(t, int64(1), out.ActiveChallenges)
	assert.Equal(t, int64(2), out.TotalDaysTracked)
	assert.Equal(t, int64(1), out.TotalDaysCompleted)
	assert.Equal(t, 50.0, out.OverallCompletion)
	assert.Zero(t, out.CompletedChallenges)
}

func TestWeeklyMonthlyWeekdayEndpointsEmpty(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	svc := NewStatsService(db, false)

	weeks, err := svc.Weekly(user.ID)
	require.NoError(t, err)
	assert.Empty(t, weeks)

	months, err := svc.Monthly(user.ID)
	require.NoError(t, err)
	assert.Empty(t, months)

	weekdays, err := svc.Weekdays(user.ID)
	require.NoError(t, err)
	assert.Empty(t, weekdays)
}
