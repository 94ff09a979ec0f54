package services

import (
	"errors"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"
	"github.com/OCHOLLA20/75hard-fitness-tracker/utils"

	"gorm.io/gorm"
)

type ProgressService struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

// NewProgressService wires the checklist service. hub and push may be nil;
// check-ins then skip the corresponding notifications.
func NewProgressService(db *gorm.DB, hub *RealtimeHub, push *PushService) *ProgressService {
	return &ProgressService{db: db, hub: hub, push: push}
}

// CheckInInput carries a single day's checklist mutation. DayNumber comes
// from the URL path, not the body.
type CheckInInput struct {
	DayNumber          int        `json:"-"`
	Date               *time.Time `json:"date"`
	MorningWorkoutDone *bool      `json:"morning_workout_done"`
	EveningWorkoutDone *bool      `json:"evening_workout_done"`
	WaterIntakeLiters  *int       `json:"water_intake_liters" binding:"omitempty,min=0,max=4"`
	DietFollowed       *bool      `json:"diet_followed"`
	PhotoTaken         *bool      `json:"photo_taken"`
	ReadingDone        *bool      `json:"reading_done"`
}

// CheckIn upserts the checklist record for (user, day_number). Fields left
// out of the request keep their stored values; completed is always
// recomputed from the full record.
func (s *ProgressService) CheckIn(userID uint, in CheckInInput) (*models.DailyProgress, error) {
	if in.DayNumber < 1 || in.DayNumber > ChallengeLengthDays {
		return nil, ErrInvalidInput
	}
	if in.WaterIntakeLiters != nil && (*in.WaterIntakeLiters < 0 || *in.WaterIntakeLiters > WaterGoalLiters) {
		return nil, ErrInvalidInput
	}

	var progress models.DailyProgress
	err := s.db.Where("user_id = ? AND day_number = ?", userID, in.DayNumber).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.DailyProgress{
			UserID:    userID,
			DayNumber: in.DayNumber,
			Date:      dayStart(time.Now()),
		}
	} else if err != nil {
		return nil, err
	}

	if in.Date != nil {
		progress.Date = dayStart(*in.Date)
	}
	if in.MorningWorkoutDone != nil {
		progress.MorningWorkoutDone = *in.MorningWorkoutDone
	}
	if in.EveningWorkoutDone != nil {
		progress.EveningWorkoutDone = *in.EveningWorkoutDone
	}
	if in.WaterIntakeLiters != nil {
		progress.WaterIntakeLiters = *in.WaterIntakeLiters
	}
	if in.DietFollowed != nil {
		progress.DietFollowed = *in.DietFollowed
	}
	if in.PhotoTaken != nil {
		progress.PhotoTaken = *in.PhotoTaken
	}
	if in.ReadingDone != nil {
		progress.ReadingDone = *in.ReadingDone
	}

	wasCompleted := progress.Completed
	progress.Completed = DeriveCompleted(&progress)

	if err := s.db.Save(&progress).Error; err != nil {
		return nil, err
	}

	result := "incomplete"
	if progress.Completed {
		result = "complete"
	}
	utils.CheckInCount.WithLabelValues(result).Inc()

	if s.hub != nil {
		s.hub.BroadcastProgress(userID, ProgressEvent{
			Type:      "progress.updated",
			DayNumber: progress.DayNumber,
			Completed: progress.Completed,
			Payload:   progress,
		})
	}
	if s.push != nil && progress.Completed && !wasCompleted {
		go s.push.NotifyDayCompleted(userID, progress.DayNumber)
	}

	return &progress, nil
}

// List returns every checklist record of the user ordered by day number.
func (s *ProgressService) List(userID uint) ([]models.DailyProgress, error) {
	var records []models.DailyProgress
	err := s.db.Where("user_id = ?", userID).Order("day_number asc").Find(&records).Error
	return records, err
}

func (s *ProgressService) GetByDay(userID uint, dayNumber int) (*models.DailyProgress, error) {
	var progress models.DailyProgress
	err := s.db.Preload("Workouts").
		Where("user_id = ? AND day_number = ?", userID, dayNumber).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
