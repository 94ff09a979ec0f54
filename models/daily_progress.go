package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyProgress is one user's checklist entry for a single day of the
// 75 Hard challenge. Completed is derived from the six requirement fields
// and must never be written independently of them.
type DailyProgress struct {
	gorm.Model
	UserID             uint      `gorm:"not null;uniqueIndex:idx_user_day" json:"user_id"`
	DayNumber          int       `gorm:"not null;uniqueIndex:idx_user_day" json:"day_number"` // 1-75
	Date               time.Time `gorm:"index;not null" json:"date"`
	MorningWorkoutDone bool      `gorm:"default:false" json:"morning_workout_done"`
	EveningWorkoutDone bool      `gorm:"default:false" json:"evening_workout_done"`
	WaterIntakeLiters  int       `gorm:"default:0" json:"water_intake_liters"` // 0-4
	DietFollowed       bool      `gorm:"default:false" json:"diet_followed"`
	PhotoTaken         bool      `gorm:"default:false" json:"photo_taken"`
	ReadingDone        bool      `gorm:"default:false" json:"reading_done"`
	Completed          bool      `gorm:"default:false" json:"completed"`

	Workouts []Workout `gorm:"foreignKey:DailyProgressID" json:"-"`
}
