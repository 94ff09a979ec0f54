package models

import "gorm.io/gorm"

const (
	SlotMorning = "morning"
	SlotEvening = "evening"
)

// Workout belongs to one DailyProgress record; at most one workout may
// occupy each slot per day.
type Workout struct {
	gorm.Model
	UserID          uint   `gorm:"index;not null" json:"user_id"`
	DailyProgressID uint   `gorm:"index;not null" json:"daily_progress_id"`
	Slot            string `gorm:"size:16;not null" json:"slot"` // "morning" | "evening"
	Category        string `gorm:"size:64" json:"category"`      // e.g. "Push", "Pull", "Legs"
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	Outdoor         bool   `gorm:"default:false" json:"outdoor"`
	Notes           string `json:"notes"`
}
