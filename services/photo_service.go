package services

import (
	"errors"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"
	"github.com/OCHOLLA20/75hard-fitness-tracker/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PhotoService struct {
	db  *gorm.DB
	rek *RekognitionService
}

// NewPhotoService wires the progress-photo upload path. rek may be nil;
// label verification is then skipped.
func NewPhotoService(db *gorm.DB, rek *RekognitionService) *PhotoService {
	return &PhotoService{db: db, rek: rek}
}

type PhotoUploadInput struct {
	Image string `json:"image" binding:"required"` // base64 data URI
}

type PhotoUploadResult struct {
	PhotoURL       string   `json:"photo_url"`
	PersonDetected bool     `json:"person_detected"`
	Labels         []string `json:"labels,omitempty"`
	DayCompleted   bool     `json:"day_completed"`
}

// UploadProgressPhoto stores the day's photo on S3, optionally runs label
// detection on it, then marks photo_taken and recomputes the day.
func (s *PhotoService) UploadProgressPhoto(userID uint, dayNumber int, in PhotoUploadInput) (*PhotoUploadResult, error) {
	var progress models.DailyProgress
	err := s.db.Where("user_id = ? AND day_number = ?", userID, dayNumber).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	imageData, contentType, err := utils.DecodeBase64Image(in.Image)
	if err != nil {
		return nil, ErrInvalidInput
	}

	url, err := utils.UploadImageToS3(imageData, contentType, "progress-photos/day")
	if err != nil {
		return nil, err
	}

	result := &PhotoUploadResult{PhotoURL: url}
	if s.rek != nil {
		person, labels, err := s.rek.LooksLikePerson(imageData)
		if err != nil {
			// advisory only, the upload already succeeded
			utils.Logger.Warn("photo_label_detection_failed",
				zap.Uint("user_id", userID), zap.Error(err))
		} else {
			result.PersonDetected = person
			result.Labels = labels
		}
	}

	progress.PhotoTaken = true
	progress.Completed = DeriveCompleted(&progress)
	if err := s.db.Save(&progress).Error; err != nil {
		return nil, err
	}
	result.DayCompleted = progress.Completed
	return result, nil
}
