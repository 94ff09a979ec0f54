package services

import (
	"math"
	"sort"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/models"
)

// RequirementCounts tallies how many records in a bucket satisfied each of
// the six daily requirements.
type RequirementCounts struct {
	MorningWorkouts int `json:"morning_workouts"`
	EveningWorkouts int `json:"evening_workouts"`
	DietAdherence   int `json:"diet_adherence"`
	WaterIntake     int `json:"water_intake"`
	ProgressPhotos  int `json:"progress_photos"`
	Reading         int `json:"reading"`
}

type RequirementPercentages struct {
	MorningWorkouts float64 `json:"morning_workouts"`
	EveningWorkouts float64 `json:"evening_workouts"`
	DietAdherence   float64 `json:"diet_adherence"`
	WaterIntake     float64 `json:"water_intake"`
	ProgressPhotos  float64 `json:"progress_photos"`
	Reading         float64 `json:"reading"`
}

func countRequirements(records []models.DailyProgress) RequirementCounts {
	var rc RequirementCounts
	for _, p := range records {
		if p.MorningWorkoutDone {
			rc.MorningWorkouts++
		}
		if p.EveningWorkoutDone {
			rc.EveningWorkouts++
		}
		if p.DietFollowed {
			rc.DietAdherence++
		}
		if p.WaterIntakeLiters >= WaterGoalLiters {
			rc.WaterIntake++
		}
		if p.PhotoTaken {
			rc.ProgressPhotos++
		}
		if p.ReadingDone {
			rc.Reading++
		}
	}
	return rc
}

func (rc RequirementCounts) Percentages(total int) RequirementPercentages {
	return RequirementPercentages{
		MorningWorkouts: pct1(rc.MorningWorkouts, total),
		EveningWorkouts: pct1(rc.EveningWorkouts, total),
		DietAdherence:   pct1(rc.DietAdherence, total),
		WaterIntake:     pct1(rc.WaterIntake, total),
		ProgressPhotos:  pct1(rc.ProgressPhotos, total),
		Reading:         pct1(rc.Reading, total),
	}
}

// WeekNumber maps a challenge day number onto its 7-day week bucket
// (days 1-7 -> week 1, day 8 -> week 2, ...).
func WeekNumber(dayNumber int) int {
	return (dayNumber-1)/7 + 1
}

type WeekStats struct {
	WeekNumber               int                    `json:"week_number"`
	StartDay                 int                    `json:"start_day"`
	EndDay                   int                    `json:"end_day"`
	StartDate                string                 `json:"start_date"`
	EndDate                  string                 `json:"end_date"`
	DaysInWeek               int                    `json:"days_in_week"`
	DaysCompleted            int                    `json:"days_completed"`
	CompletionPercentage     float64                `json:"completion_percentage"`
	TaskCompletion           RequirementCounts      `json:"task_completion"`
	TaskCompletionPercentage RequirementPercentages `json:"task_completion_percentage"`
}

// ComputeWeekBuckets partitions records (ordered by day_number) into 7-day
// challenge weeks and aggregates each bucket.
func ComputeWeekBuckets(records []models.DailyProgress) []WeekStats {
	byWeek := map[int][]models.DailyProgress{}
	for _, p := range records {
		w := WeekNumber(p.DayNumber)
		byWeek[w] = append(byWeek[w], p)
	}

	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	out := make([]WeekStats, 0, len(weeks))
	for _, w := range weeks {
		bucket := byWeek[w]
		ws := WeekStats{
			WeekNumber: w,
			StartDay:   bucket[0].DayNumber,
			EndDay:     bucket[len(bucket)-1].DayNumber,
			StartDate:  bucket[0].Date.Format("2006-01-02"),
			EndDate:    bucket[len(bucket)-1].Date.Format("2006-01-02"),
			DaysInWeek: len(bucket),
		}
		for _, p := range bucket {
			if p.Completed {
				ws.DaysCompleted++
			}
		}
		ws.CompletionPercentage = pct1(ws.DaysCompleted, ws.DaysInWeek)
		ws.TaskCompletion = countRequirements(bucket)
		ws.TaskCompletionPercentage = ws.TaskCompletion.Percentages(ws.DaysInWeek)
		out = append(out, ws)
	}
	return out
}

type MonthStats struct {
	Year                     int                    `json:"year"`
	Month                    int                    `json:"month"`
	MonthName                string                 `json:"month_name"`
	StartDay                 int                    `json:"start_day"`
	EndDay                   int                    `json:"end_day"`
	DaysInMonth              int                    `json:"days_in_month"`
	DaysCompleted            int                    `json:"days_completed"`
	CompletionPercentage     float64                `json:"completion_percentage"`
	TaskCompletion           RequirementCounts      `json:"task_completion"`
	TaskCompletionPercentage RequirementPercentages `json:"task_completion_percentage"`
}

// ComputeMonthBuckets partitions records by calendar year-month of their date.
func ComputeMonthBuckets(records []models.DailyProgress) []MonthStats {
	type ym struct{ y, m int }
	byMonth := map[ym][]models.DailyProgress{}
	for _, p := range records {
		k := ym{p.Date.Year(), int(p.Date.Month())}
		byMonth[k] = append(byMonth[k], p)
	}

	keys := make([]ym, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].y != keys[j].y {
			return keys[i].y < keys[j].y
		}
		return keys[i].m < keys[j].m
	})

	out := make([]MonthStats, 0, len(keys))
	for _, k := range keys {
		bucket := byMonth[k]
		ms := MonthStats{
			Year:        k.y,
			Month:       k.m,
			MonthName:   time.Month(k.m).String(),
			StartDay:    bucket[0].DayNumber,
			EndDay:      bucket[len(bucket)-1].DayNumber,
			DaysInMonth: len(bucket),
		}
		for _, p := range bucket {
			if p.Completed {
				ms.DaysCompleted++
			}
		}
		ms.CompletionPercentage = pct1(ms.DaysCompleted, ms.DaysInMonth)
		ms.TaskCompletion = countRequirements(bucket)
		ms.TaskCompletionPercentage = ms.TaskCompletion.Percentages(ms.DaysInMonth)
		out = append(out, ms)
	}
	return out
}

type WeekdayStats struct {
	Weekday                  int                    `json:"weekday"` // 0 = Monday .. 6 = Sunday
	WeekdayName              string                 `json:"weekday_name"`
	TotalOccurrences         int                    `json:"total_occurrences"`
	DaysCompleted            int                    `json:"days_completed"`
	CompletionPercentage     float64                `json:"completion_percentage"`
	TaskCompletion           RequirementCounts      `json:"task_completion"`
	TaskCompletionPercentage RequirementPercentages `json:"task_completion_percentage"`
}

// ComputeWeekdayBuckets groups records by weekday of their date, Monday
// first. Weekdays with no records are omitted.
func ComputeWeekdayBuckets(records []models.DailyProgress) []WeekdayStats {
	byDay := map[int][]models.DailyProgress{}
	for _, p := range records {
		d := mondayIndexed(p.Date.Weekday())
		byDay[d] = append(byDay[d], p)
	}

	out := make([]WeekdayStats, 0, 7)
	for d := 0; d < 7; d++ {
		bucket, ok := byDay[d]
		if !ok {
			continue
		}
		ws := WeekdayStats{
			Weekday:          d,
			WeekdayName:      weekdayName(d),
			TotalOccurrences: len(bucket),
		}
		for _, p := range bucket {
			if p.Completed {
				ws.DaysCompleted++
			}
		}
		ws.CompletionPercentage = pct1(ws.DaysCompleted, ws.TotalOccurrences)
		ws.TaskCompletion = countRequirements(bucket)
		ws.TaskCompletionPercentage = ws.TaskCompletion.Percentages(ws.TotalOccurrences)
		out = append(out, ws)
	}
	return out
}

// ComputeWaterMovingAverage returns the 7-day trailing mean of water intake
// keyed by day_number. The window shrinks at the head of the sequence
// (minimum 1 sample).
func ComputeWaterMovingAverage(records []models.DailyProgress) map[int]float64 {
	out := make(map[int]float64, len(records))
	sum := 0
	for i, p := range records {
		sum += p.WaterIntakeLiters
		if i >= 7 {
			sum -= records[i-7].WaterIntakeLiters
		}
		window := i + 1
		if window > 7 {
			window = 7
		}
		out[p.DayNumber] = round1(float64(sum) / float64(window))
	}
	return out
}

// PercentileRank returns the share of values strictly below v, as a
// percentage of all values. values is expected to include the subject's own
// entry.
func PercentileRank(values []float64, v float64) float64 {
	if len(values) == 0 {
		return 0
	}
	below := 0
	for _, x := range values {
		if x < v {
			below++
		}
	}
	return round1(float64(below) / float64(len(values)) * 100)
}

// ---------- internals ----------

func mondayIndexed(w time.Weekday) int {
	// time.Weekday has Sunday=0; reports use Monday=0 like the mobile app.
	return (int(w) + 6) % 7
}

func weekdayName(mondayIdx int) string {
	return time.Weekday((mondayIdx + 1) % 7).String()
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func pct1(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(float64(count) / float64(total) * 100)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
