package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	Username           string     `gorm:"uniqueIndex;not null" json:"username"`
	Password           string     `gorm:"not null" json:"-"`
	FullName           string     `json:"full_name"`
	ProfilePicture     string     `json:"profile_picture"`
	ChallengeStartDate *time.Time `json:"challenge_start_date"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	ResetToken         string     `json:"-"`
	ResetTokenExp      *time.Time `json:"-"`

	Progress []DailyProgress `gorm:"foreignKey:UserID" json:"-"`
	Workouts []Workout       `gorm:"foreignKey:UserID" json:"-"`
}
