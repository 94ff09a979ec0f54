package services

import "github.com/OCHOLLA20/75hard-fitness-tracker/models"

const (
	// ChallengeLengthDays is the fixed length of the program.
	ChallengeLengthDays = 75

	// WaterGoalLiters is the daily intake threshold that counts the water
	// requirement as met.
	WaterGoalLiters = 4
)

// DeriveCompleted reports whether every daily requirement of a progress
// record is met. Completed must always be recomputed through this function
// whenever a contributing field changes; it is never set independently.
func DeriveCompleted(p *models.DailyProgress) bool {
	return p.MorningWorkoutDone &&
		p.EveningWorkoutDone &&
		p.WaterIntakeLiters >= WaterGoalLiters &&
		p.DietFollowed &&
		p.PhotoTaken &&
		p.ReadingDone
}
