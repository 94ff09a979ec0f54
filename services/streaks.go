package services

import (
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"
)

// ComputeStreaks scans records ordered by day_number and returns the current
// streak (trailing run of completed days, latest backward) and the longest
// run anywhere in the sequence. Records past day 75 are counted as-is; see
// DESIGN.md for the boundary decision.
func ComputeStreaks(records []models.DailyProgress) (current, longest int) {
	for i := len(records) - 1; i >= 0; i-- {
		if !records[i].Completed {
			break
		}
		current++
	}

	run := 0
	for _, p := range records {
		if p.Completed {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return current, longest
}

const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusBehind     = "Behind"
	StatusCompleted  = "Completed"
)

type ChallengeStatus struct {
	Status                 string     `json:"status"`
	CurrentDay             int        `json:"current_day"`
	TotalDaysTracked       int        `json:"total_days_tracked"`
	TotalDaysCompleted     int        `json:"total_days_completed"`
	CompletionPercentage   float64    `json:"completion_percentage"`
	CurrentStreak          int        `json:"current_streak"`
	LongestStreak          int        `json:"longest_streak"`
	ChallengeStartDate     *time.Time `json:"challenge_start_date"`
	ExpectedCompletionDate *time.Time `json:"expected_completion_date"`
	AdjustedCompletionDate *time.Time `json:"adjusted_completion_date"`
	NeedsRestart           bool       `json:"needs_restart"`
}

// ComputeChallengeStatus derives the challenge state from already-fetched
// records ordered by day_number; it performs no I/O. now anchors the
// wall-clock comparisons so callers (and tests) control time.
func ComputeChallengeStatus(startDate *time.Time, records []models.DailyProgress, now time.Time) ChallengeStatus {
	totalDays := len(records)
	completedDays := 0
	for _, p := range records {
		if p.Completed {
			completedDays++
		}
	}

	currentDay := totalDays + 1
	if totalDays >= ChallengeLengthDays {
		currentDay = ChallengeLengthDays
	}

	current, longest := ComputeStreaks(records)

	status := StatusNotStarted
	switch {
	case totalDays >= ChallengeLengthDays && completedDays == ChallengeLengthDays:
		status = StatusCompleted
	case startDate != nil:
		daysSinceStart := int(dayStart(now).Sub(dayStart(*startDate)).Hours()/24) + 1
		if daysSinceStart > totalDays+1 {
			status = StatusBehind
		} else {
			status = StatusInProgress
		}
	}

	var expected, adjusted *time.Time
	if startDate != nil {
		e := startDate.AddDate(0, 0, ChallengeLengthDays-1)
		expected = &e
		if totalDays > 0 {
			a := e.AddDate(0, 0, totalDays-completedDays)
			adjusted = &a
		}
	}

	// A failed day is any record dated before today with completed=false.
	// Surfaced only; restarting stays an explicit user action.
	needsRestart := false
	if status != StatusCompleted {
		today := dayStart(now)
		for _, p := range records {
			if !p.Completed && dayStart(p.Date).Before(today) {
				needsRestart = true
				break
			}
		}
	}

	return ChallengeStatus{
		Status:                 status,
		CurrentDay:             currentDay,
		TotalDaysTracked:       totalDays,
		TotalDaysCompleted:     completedDays,
		CompletionPercentage:   round1(float64(completedDays) / ChallengeLengthDays * 100),
		CurrentStreak:          current,
		LongestStreak:          longest,
		ChallengeStartDate:     startDate,
		ExpectedCompletionDate: expected,
		AdjustedCompletionDate: adjusted,
		NeedsRestart:           needsRestart,
	}
}
