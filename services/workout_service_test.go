package services

import (
	"testing"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workoutInput(progressID uint, slot string) WorkoutInput {
	return WorkoutInput{
		DailyProgressID: progressID,
		Slot:            slot,
		Category:        "running",
		DurationMinutes: 45,
		Outdoor:         true,
	}
}

func TestCreateWorkoutSetsSlotFlag(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	progress := seedDay(t, db, user.ID, 1, day(0), false)
	svc := NewWorkoutService(db)

	workout, err := svc.Create(user.ID, workoutInput(progress.ID, models.SlotMorning))
	require.NoError(t, err)
	assert.Equal(t, models.SlotMorning, workout.Slot)

	var updated models.DailyProgress
	require.NoError(t, db.First(&updated, progress.ID).Error)
	assert.True(t, updated.MorningWorkoutDone)
	assert.False(t, updated.Completed)
}

func TestCreateWorkoutDuplicateSlotConflict(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	progress := seedDay(t, db, user.ID, 1, day(0), true)
	svc := NewWorkoutService(db)

	_, err := svc.Create(user.ID, workoutInput(progress.ID, models.SlotMorning))
	require.NoError(t, err)

	_, err = svc.Create(user.ID, workoutInput(progress.ID, models.SlotMorning))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// the rejected attempt leaves the day untouched
	var after models.DailyProgress
	require.NoError(t, db.First(&after, progress.ID).Error)
	assert.True(t, after.Completed)
}

func TestCreateWorkoutValidatesInput(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	progress := seedDay(t, db, user.ID, 1, day(0), false)
	svc := NewWorkoutService(db)

	in := workoutInput(progress.ID, "afternoon")
	_, err := svc.Create(user.ID, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = workoutInput(progress.ID, models.SlotMorning)
	in.DurationMinutes = 0
	_, err = svc.Create(user.ID, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateWorkoutForeignDayNotFound(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com", "alice")
	bob := seedUser(t, db, "bob@example.com", "bob")
	progress := seedDay(t, db, alice.ID, 1, day(0), false)
	svc := NewWorkoutService(db)

	_, err := svc.Create(bob.ID, workoutInput(progress.ID, models.SlotMorning))
	assert.ErrorIs(t, err, ErrProgressNotFound)
}

func TestUpdateWorkoutMovesSlot(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	progress := seedDay(t, db, user.ID, 1, day(0), false)
	svc := NewWorkoutService(db)

	workout, err := svc.Create(user.ID, workoutInput(progress.ID, models.SlotMorning))
	require.NoError(t, err)

	in := workoutInput(progress.ID, models.SlotEvening)
	in.DurationMinutes = 60
	updated, err := svc.Update(user.ID, workout.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.SlotEvening, updated.Slot)
	assert.Equal(t, 60, updated.DurationMinutes)

	var after models.DailyProgress
	require.NoError(t, db.First(&after, progress.ID).Error)
	assert.False(t, after.MorningWorkoutDone)
	assert.True(t, after.EveningWorkoutDone)
}

func TestUpdateWorkoutSlotConflict(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	progress := seedDay(t, db, user.ID, 1, day(0), false)
	svc := NewWorkoutService(db)

	_, err := svc.Create(user.ID, workoutInput(progress.ID, models.SlotMorning))
	require.NoError(t, err)
	evening, err := svc.Create(user.ID, workoutInput(progress.ID, models.SlotEvening))
	require.NoError(t, err)

	_, err = svc.Update(user.ID, evening.ID, workoutInput(progress.ID, models.SlotMorning))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestDeleteWorkoutClearsSlotFlag(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	progress := seedDay(t, db, user.ID, 1, day(0), true)
	svc := NewWorkoutService(db)

	workout, err := svc.Create(user.ID, workoutInput(progress.ID, models.SlotEvening))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, workout.ID))

	var after models.DailyProgress
	require.NoError(t, db.First(&after, progress.ID).Error)
	assert.False(t, after.EveningWorkoutDone)
	assert.False(t, after.Completed)

	_, err = svc.GetByID(user.ID, workout.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWorkoutsByDayNumber(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice@example.com", "alice")
	progress := seedDay(t, db, user.ID, 3, day(2), false)
	svc := NewWorkoutService(db)

	_, err := svc.Create(user.ID, workoutInput(progress.ID, models.SlotMorning))
	require.NoError(t, err)
	_, err = svc.Create(user.ID, workoutInput(progress.ID, models.SlotEvening))
	require.NoError(t, err)

	workouts, err := svc.ByDayNumber(user.ID, 3)
	require.NoError(t, err)
	assert.Len(t, workouts, 2)

	_, err = svc.ByDayNumber(user.ID, 4)
	assert.ErrorIs(t, err, ErrProgressNotFound)
}
