package services

import (
	"errors"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"

	"gorm.io/gorm"
)

type ChallengeService struct {
	db *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{db: db}
}

type ChallengeStartResult struct {
	ChallengeStartDate     time.Time `json:"challenge_start_date"`
	ExpectedCompletionDate time.Time `json:"expected_completion_date"`
}

// Start stamps the user's challenge start date. A user with existing
// checklist records must reset first.
func (s *ChallengeService) Start(userID uint, startDate *time.Time) (*ChallengeStartResult, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.DailyProgress{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 || user.ChallengeStartDate != nil {
		return nil, ErrChallengeStarted
	}

	start := dayStart(time.Now())
	if startDate != nil {
		start = dayStart(*startDate)
	}
	if err := s.db.Model(&user).Update("challenge_start_date", start).Error; err != nil {
		return nil, err
	}

	return &ChallengeStartResult{
		ChallengeStartDate:     start,
		ExpectedCompletionDate: start.AddDate(0, 0, ChallengeLengthDays-1),
	}, nil
}

// Reset wipes all checklist records and workouts and clears the start date
// so the user can begin again from day 1.
func (s *ChallengeService) Reset(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Workout{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.DailyProgress{}).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("challenge_start_date", nil).Error
	})
}

// Status reports where the user stands in the 75 day program.
func (s *ChallengeService) Status(userID uint) (*ChallengeStatus, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var records []models.DailyProgress
	if err := s.db.Where("user_id = ?", userID).
		Order("day_number asc").Find(&records).Error; err != nil {
		return nil, err
	}

	status := ComputeChallengeStatus(user.ChallengeStartDate, records, time.Now())
	return &status, nil
}
