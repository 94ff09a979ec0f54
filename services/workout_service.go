package services

import (
	"errors"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// validates against the same tags gin binding uses, so the rules hold even
// for callers that bypass the HTTP layer
var workoutValidate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

type WorkoutService struct {
	db *gorm.DB
}

func NewWorkoutService(db *gorm.DB) *WorkoutService {
	return &WorkoutService{db: db}
}

type WorkoutInput struct {
	DailyProgressID uint   `json:"daily_progress_id" binding:"required"`
	Slot            string `json:"slot" binding:"required,oneof=morning evening"`
	Category        string `json:"category" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	Outdoor         bool   `json:"outdoor"`
	Notes           string `json:"notes"`
}

// Create logs a workout against a checklist day. Each day holds at most one
// workout per slot; a second booking for the same slot fails without
// touching the day's completed flag.
func (s *WorkoutService) Create(userID uint, in WorkoutInput) (*models.Workout, error) {
	if err := workoutValidate.Struct(in); err != nil {
		return nil, ErrInvalidInput
	}

	var progress models.DailyProgress
	err := s.db.Where("id = ? AND user_id = ?", in.DailyProgressID, userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Workout{}).
		Where("daily_progress_id = ? AND slot = ?", progress.ID, in.Slot).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlotTaken
	}

	workout := models.Workout{
		UserID:          userID,
		DailyProgressID: progress.ID,
		Slot:            in.Slot,
		Category:        in.Category,
		DurationMinutes: in.DurationMinutes,
		Outdoor:         in.Outdoor,
		Notes:           in.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workout).Error; err != nil {
			return err
		}
		return s.setSlotFlag(tx, &progress, in.Slot, true)
	})
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

// Update edits a workout. Moving it to the other slot re-checks the slot
// conflict and transfers the checklist flags between slots.
func (s *WorkoutService) Update(userID, workoutID uint, in WorkoutInput) (*models.Workout, error) {
	if err := workoutValidate.Struct(in); err != nil {
		return nil, ErrInvalidInput
	}

	workout, err := s.GetByID(userID, workoutID)
	if err != nil {
		return nil, err
	}

	var progress models.DailyProgress
	err = s.db.Where("id = ? AND user_id = ?", workout.DailyProgressID, userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	oldSlot := workout.Slot
	if in.Slot != oldSlot {
		var count int64
		if err := s.db.Model(&models.Workout{}).
			Where("daily_progress_id = ? AND slot = ? AND id <> ?", progress.ID, in.Slot, workout.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlotTaken
		}
	}

	workout.Slot = in.Slot
	workout.Category = in.Category
	workout.DurationMinutes = in.DurationMinutes
	workout.Outdoor = in.Outdoor
	workout.Notes = in.Notes

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(workout).Error; err != nil {
			return err
		}
		if in.Slot != oldSlot {
			if err := s.setSlotFlag(tx, &progress, oldSlot, false); err != nil {
				return err
			}
		}
		return s.setSlotFlag(tx, &progress, in.Slot, true)
	})
	if err != nil {
		return nil, err
	}
	return workout, nil
}

// Delete removes a workout and clears its slot flag on the day, which may
// flip the day back to incomplete.
func (s *WorkoutService) Delete(userID, workoutID uint) error {
	workout, err := s.GetByID(userID, workoutID)
	if err != nil {
		return err
	}

	var progress models.DailyProgress
	err = s.db.Where("id = ? AND user_id = ?", workout.DailyProgressID, userID).First(&progress).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(workout).Error; err != nil {
			return err
		}
		if progress.ID != 0 {
			return s.setSlotFlag(tx, &progress, workout.Slot, false)
		}
		return nil
	})
}

func (s *WorkoutService) GetByID(userID, workoutID uint) (*models.Workout, error) {
	var workout models.Workout
	err := s.db.Where("id = ? AND user_id = ?", workoutID, userID).First(&workout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (s *WorkoutService) List(userID uint) ([]models.Workout, error) {
	var workouts []models.Workout
	err := s.db.Where("user_id = ?", userID).Order("created_at asc").Find(&workouts).Error
	return workouts, err
}

// ByDayNumber returns the workouts logged against one challenge day.
func (s *WorkoutService) ByDayNumber(userID uint, dayNumber int) ([]models.Workout, error) {
	var progress models.DailyProgress
	err := s.db.Where("user_id = ? AND day_number = ?", userID, dayNumber).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout
	err = s.db.Where("daily_progress_id = ?", progress.ID).Order("slot asc").Find(&workouts).Error
	return workouts, err
}

// setSlotFlag updates the day's morning/evening flag and recomputes the
// derived completed field in the same transaction.
func (s *WorkoutService) setSlotFlag(tx *gorm.DB, progress *models.DailyProgress, slot string, done bool) error {
	switch slot {
	case models.SlotMorning:
		progress.MorningWorkoutDone = done
	case models.SlotEvening:
		progress.EveningWorkoutDone = done
	}
	progress.Completed = DeriveCompleted(progress)
	return tx.Save(progress).Error
}
