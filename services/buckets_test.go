package services

import (
	"testing"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekNumber(t *testing.T) {
	for d := 1; d <= 7; d++ {
		assert.Equal(t, 1, WeekNumber(d), "day %d", d)
	}
	assert.Equal(t, 2, WeekNumber(8))
	assert.Equal(t, 2, WeekNumber(14))
	assert.Equal(t, 3, WeekNumber(15))
	assert.Equal(t, 11, WeekNumber(75))
}

func TestComputeWeekBuckets(t *testing.T) {
	var records []models.DailyProgress
	for i := 0; i < 9; i++ {
		records = append(records, models.DailyProgress{
			DayNumber: i + 1,
			Date:      day(i),
			Completed: i%2 == 0, // days 1,3,5,7,9 completed
		})
	}

	weeks := ComputeWeekBuckets(records)
	require.Len(t, weeks, 2)

	assert.Equal(t, 1, weeks[0].WeekNumber)
	assert.Equal(t, 7, weeks[0].DaysInWeek)
	assert.Equal(t, 4, weeks[0].DaysCompleted)
	assert.Equal(t, 57.1, weeks[0].CompletionPercentage)

	assert.Equal(t, 2, weeks[1].WeekNumber)
	assert.Equal(t, 2, weeks[1].DaysInWeek)
	assert.Equal(t, 1, weeks[1].DaysCompleted)
	assert.Equal(t, 50.0, weeks[1].CompletionPercentage)
}

func TestComputeMonthBucketsSplitsOnCalendarMonth(t *testing.T) {
	records := []models.DailyProgress{
		{DayNumber: 1, Date: time.Date(2025, 3, 30, 0, 0, 0, 0, time.Local), Completed: true},
		{DayNumber: 2, Date: time.Date(2025, 3, 31, 0, 0, 0, 0, time.Local), Completed: false},
		{DayNumber: 3, Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local), Completed: true},
	}

	months := ComputeMonthBuckets(records)
	require.Len(t, months, 2)

	assert.Equal(t, "March", months[0].MonthName)
	assert.Equal(t, 2, months[0].DaysInMonth)
	assert.Equal(t, 50.0, months[0].CompletionPercentage)

	assert.Equal(t, "April", months[1].MonthName)
	assert.Equal(t, 1, months[1].DaysInMonth)
	assert.Equal(t, 100.0, months[1].CompletionPercentage)
}

func TestComputeWeekdayBuckets(t *testing.T) {
	// 2025-03-03 is a Monday
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.Local)
	records := []models.DailyProgress{
		{DayNumber: 1, Date: monday, Completed: true},
		{DayNumber: 2, Date: monday.AddDate(0, 0, 1), Completed: false},
		{DayNumber: 8, Date: monday.AddDate(0, 0, 7), Completed: false},
	}

	buckets := ComputeWeekdayBuckets(records)
	require.Len(t, buckets, 2)

	assert.Equal(t, "Monday", buckets[0].WeekdayName)
	assert.Equal(t, 2, buckets[0].TotalOccurrences)
	assert.Equal(t, 1, buckets[0].DaysCompleted)
	assert.Equal(t, 50.0, buckets[0].CompletionPercentage)

	assert.Equal(t, "Tuesday", buckets[1].WeekdayName)
	assert.Equal(t, 1, buckets[1].TotalOccurrences)
}

func TestComputeWaterMovingAverage(t *testing.T) {
	records := []models.DailyProgress{
		{DayNumber: 1, WaterIntakeLiters: 4},
		{DayNumber: 2, WaterIntakeLiters: 2},
		{DayNumber: 3, WaterIntakeLiters: 4},
	}

	avg := ComputeWaterMovingAverage(records)

	assert.Equal(t, 4.0, avg[1])
	assert.Equal(t, 3.0, avg[2])
	assert.Equal(t, 3.3, avg[3])
}

func TestComputeWaterMovingAverageWindowCapsAtSeven(t *testing.T) {
	var records []models.DailyProgress
	for i := 1; i <= 10; i++ {
		liters := 0
		if i > 7 {
			liters = 4 // only the last three days have water
		}
		records = append(records, models.DailyProgress{DayNumber: i, WaterIntakeLiters: liters})
	}

	avg := ComputeWaterMovingAverage(records)

	// day 10 window covers days 4..10: three 4s over seven days
	assert.Equal(t, 1.7, avg[10])
}

func TestPercentileRank(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	assert.Equal(t, 75.0, PercentileRank(values, 40))
	assert.Equal(t, 0.0, PercentileRank(values, 10))
	assert.Equal(t, 50.0, PercentileRank(values, 30))
	assert.Equal(t, 0.0, PercentileRank(nil, 5))
}

func TestRequirementCountsAndPercentages(t *testing.T) {
	records := []models.DailyProgress{
		{MorningWorkoutDone: true, WaterIntakeLiters: 4, ReadingDone: true},
		{MorningWorkoutDone: true, WaterIntakeLiters: 3, DietFollowed: true},
	}

	counts := countRequirements(records)
	assert.Equal(t, 2, counts.MorningWorkouts)
	assert.Equal(t, 0, counts.EveningWorkouts)
	assert.Equal(t, 1, counts.WaterIntake)
	assert.Equal(t, 1, counts.DietAdherence)
	assert.Equal(t, 1, counts.Reading)

	pcts := counts.Percentages(len(records))
	assert.Equal(t, 100.0, pcts.MorningWorkouts)
	assert.Equal(t, 50.0, pcts.WaterIntake)

	// empty bucket never divides by zero
	assert.Zero(t, counts.Percentages(0).MorningWorkouts)
}
