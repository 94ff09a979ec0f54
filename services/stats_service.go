package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/OCHOLLA20/75hard-fitness-tracker/cache"
	"github.com/OCHOLLA20/75hard-fitness-tracker/models"

	"gorm.io/gorm"
)

const dashboardCacheTTL = 5 * time.Minute

type StatsService struct {
	db       *gorm.DB
	useCache bool
}

// NewStatsService builds the reporting service. useCache toggles the redis
// dashboard cache; tests and cache-less deployments pass false.
func NewStatsService(db *gorm.DB, useCache bool) *StatsService {
	return &StatsService{db: db, useCache: useCache}
}

func (s *StatsService) fetchRecords(userID uint) ([]models.DailyProgress, error) {
	var records []models.DailyProgress
	err := s.db.Where("user_id = ?", userID).Order("day_number asc").Find(&records).Error
	return records, err
}

func (s *StatsService) fetchUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

type DashboardStats struct {
	ChallengeStatus
	TodayTracked bool                   `json:"today_tracked"`
	WeekNumber   int                    `json:"week_number"`
	TaskTotals   RequirementCounts      `json:"task_totals"`
	TaskRates    RequirementPercentages `json:"task_rates"`
}

// Dashboard is the landing-screen summary. Cached per user for a few
// minutes; any cache failure falls through to the database.
func (s *StatsService) Dashboard(userID uint) (*DashboardStats, error) {
	cacheKey := fmt.Sprintf("stats:dashboard:%d", userID)
	if s.useCache {
		var cached DashboardStats
		if err := cache.Get(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.fetchUser(userID)
	if err != nil {
		return nil, err
	}
	records, err := s.fetchRecords(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status := ComputeChallengeStatus(user.ChallengeStartDate, records, now)

	todayTracked := false
	today := dayStart(now)
	for _, p := range records {
		if dayStart(p.Date).Equal(today) {
			todayTracked = true
			break
		}
	}

	totals := countRequirements(records)
	out := &DashboardStats{
		ChallengeStatus: status,
		TodayTracked:    todayTracked,
		WeekNumber:      WeekNumber(status.CurrentDay),
		TaskTotals:      totals,
		TaskRates:       totals.Percentages(len(records)),
	}

	if s.useCache {
		_ = cache.Set(cacheKey, out, dashboardCacheTTL)
	}
	return out, nil
}

// InvalidateDashboard drops the cached summary after a mutation.
func (s *StatsService) InvalidateDashboard(userID uint) {
	if s.useCache {
		_ = cache.Delete(fmt.Sprintf("stats:dashboard:%d", userID))
	}
}

type FailedDay struct {
	DayNumber   int      `json:"day_number"`
	Date        string   `json:"date"`
	MissedTasks []string `json:"missed_tasks"`
}

type DetailedStats struct {
	ChallengeStatus
	TaskCompletion           RequirementCounts      `json:"task_completion"`
	TaskCompletionPercentage RequirementPercentages `json:"task_completion_percentage"`
	FailedDays               []FailedDay            `json:"failed_days"`
	TotalWorkouts            int64                  `json:"total_workouts"`
	TotalWorkoutMinutes      int64                  `json:"total_workout_minutes"`
	OutdoorWorkouts          int64                  `json:"outdoor_workouts"`
}

// Detailed breaks the run down per requirement and lists every failed day
// with the tasks that were missed on it.
func (s *StatsService) Detailed(userID uint) (*DetailedStats, error) {
	user, err := s.fetchUser(userID)
	if err != nil {
		return nil, err
	}
	records, err := s.fetchRecords(userID)
	if err != nil {
		return nil, err
	}

	status := ComputeChallengeStatus(user.ChallengeStartDate, records, time.Now())
	totals := countRequirements(records)

	today := dayStart(time.Now())
	var failed []FailedDay
	for _, p := range records {
		if p.Completed || !dayStart(p.Date).Before(today) {
			continue
		}
		fd := FailedDay{DayNumber: p.DayNumber, Date: p.Date.Format("2006-01-02")}
		if !p.MorningWorkoutDone {
			fd.MissedTasks = append(fd.MissedTasks, "morning_workout")
		}
		if !p.EveningWorkoutDone {
			fd.MissedTasks = append(fd.MissedTasks, "evening_workout")
		}
		if p.WaterIntakeLiters < WaterGoalLiters {
			fd.MissedTasks = append(fd.MissedTasks, "water_intake")
		}
		if !p.DietFollowed {
			fd.MissedTasks = append(fd.MissedTasks, "diet")
		}
		if !p.PhotoTaken {
			fd.MissedTasks = append(fd.MissedTasks, "progress_photo")
		}
		if !p.ReadingDone {
			fd.MissedTasks = append(fd.MissedTasks, "reading")
		}
		failed = append(failed, fd)
	}

	out := &DetailedStats{
		ChallengeStatus:          status,
		TaskCompletion:           totals,
		TaskCompletionPercentage: totals.Percentages(len(records)),
		FailedDays:               failed,
	}

	type workoutAgg struct {
		Count   int64
		Minutes int64
		Outdoor int64
	}
	var agg workoutAgg
	row := s.db.Model(&models.Workout{}).
		Select("COUNT(*) AS count, COALESCE(SUM(duration_minutes),0) AS minutes, COALESCE(SUM(CASE WHEN outdoor THEN 1 ELSE 0 END),0) AS outdoor").
		Where("user_id = ?", userID)
	if err := row.Scan(&agg).Error; err != nil {
		return nil, err
	}
	out.TotalWorkouts = agg.Count
	out.TotalWorkoutMinutes = agg.Minutes
	out.OutdoorWorkouts = agg.Outdoor

	return out, nil
}

func (s *StatsService) Weekly(userID uint) ([]WeekStats, error) {
	records, err := s.fetchRecords(userID)
	if err != nil {
		return nil, err
	}
	return ComputeWeekBuckets(records), nil
}

func (s *StatsService) Monthly(userID uint) ([]MonthStats, error) {
	records, err := s.fetchRecords(userID)
	if err != nil {
		return nil, err
	}
	return ComputeMonthBuckets(records), nil
}

func (s *StatsService) Weekdays(userID uint) ([]WeekdayStats, error) {
	records, err := s.fetchRecords(userID)
	if err != nil {
		return nil, err
	}
	return ComputeWeekdayBuckets(records), nil
}

type CategoryTrend struct {
	Category       string  `json:"category"`
	Count          int64   `json:"count"`
	TotalMinutes   int64   `json:"total_minutes"`
	AverageMinutes float64 `json:"average_minutes"`
}

type WorkoutTrends struct {
	TotalWorkouts   int64           `json:"total_workouts"`
	TotalMinutes    int64           `json:"total_minutes"`
	AverageMinutes  float64         `json:"average_minutes"`
	OutdoorPercent  float64         `json:"outdoor_percent"`
	MorningWorkouts int64           `json:"morning_workouts"`
	EveningWorkouts int64           `json:"evening_workouts"`
	ByCategory      []CategoryTrend `json:"by_category"`
}

func (s *StatsService) Workouts(userID uint) (*WorkoutTrends, error) {
	var workouts []models.Workout
	if err := s.db.Where("user_id = ?", userID).Find(&workouts).Error; err != nil {
		return nil, err
	}

	out := &WorkoutTrends{}
	byCat := map[string]*CategoryTrend{}
	var outdoor int64
	for _, w := range workouts {
		out.TotalWorkouts++
		out.TotalMinutes += int64(w.DurationMinutes)
		if w.Outdoor {
			outdoor++
		}
		switch w.Slot {
		case models.SlotMorning:
			out.MorningWorkouts++
		case models.SlotEvening:
			out.EveningWorkouts++
		}
		ct := byCat[w.Category]
		if ct == nil {
			ct = &CategoryTrend{Category: w.Category}
			byCat[w.Category] = ct
		}
		ct.Count++
		ct.TotalMinutes += int64(w.DurationMinutes)
	}

	if out.TotalWorkouts > 0 {
		out.AverageMinutes = round1(float64(out.TotalMinutes) / float64(out.TotalWorkouts))
		out.OutdoorPercent = round1(float64(outdoor) / float64(out.TotalWorkouts) * 100)
	}

	cats := make([]string, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		ct := byCat[c]
		ct.AverageMinutes = round1(float64(ct.TotalMinutes) / float64(ct.Count))
		out.ByCategory = append(out.ByCategory, *ct)
	}
	return out, nil
}

type WaterDay struct {
	DayNumber     int     `json:"day_number"`
	Date          string  `json:"date"`
	Liters        int     `json:"liters"`
	GoalMet       bool    `json:"goal_met"`
	MovingAverage float64 `json:"moving_average"`
}

type WaterTrends struct {
	Days           []WaterDay `json:"days"`
	AverageLiters  float64    `json:"average_liters"`
	GoalMetDays    int        `json:"goal_met_days"`
	GoalMetPercent float64    `json:"goal_met_percent"`
}

func (s *StatsService) Water(userID uint) (*WaterTrends, error) {
	records, err := s.fetchRecords(userID)
	if err != nil {
		return nil, err
	}

	avgByDay := ComputeWaterMovingAverage(records)
	out := &WaterTrends{Days: make([]WaterDay, 0, len(records))}
	sum := 0
	for _, p := range records {
		met := p.WaterIntakeLiters >= WaterGoalLiters
		if met {
			out.GoalMetDays++
		}
		sum += p.WaterIntakeLiters
		out.Days = append(out.Days, WaterDay{
			DayNumber:     p.DayNumber,
			Date:          p.Date.Format("2006-01-02"),
			Liters:        p.WaterIntakeLiters,
			GoalMet:       met,
			MovingAverage: avgByDay[p.DayNumber],
		})
	}
	if len(records) > 0 {
		out.AverageLiters = round1(float64(sum) / float64(len(records)))
		out.GoalMetPercent = pct1(out.GoalMetDays, len(records))
	}
	return out, nil
}

type MetricPercentile struct {
	Value      float64 `json:"value"`
	Percentile float64 `json:"percentile"`
}

type ComparativeStats struct {
	UsersWithData  int              `json:"users_with_data"`
	CompletionRate MetricPercentile `json:"completion_rate"`
	LongestStreak  MetricPercentile `json:"longest_streak"`
	AverageWater   MetricPercentile `json:"average_water"`
}

// Comparative ranks the user against everyone else who has tracked at least
// one day. Percentile is the share of users strictly below this user.
func (s *StatsService) Comparative(userID uint) (*ComparativeStats, error) {
	if _, err := s.fetchUser(userID); err != nil {
		return nil, err
	}

	var all []models.DailyProgress
	if err := s.db.Order("user_id asc, day_number asc").Find(&all).Error; err != nil {
		return nil, err
	}

	byUser := map[uint][]models.DailyProgress{}
	for _, p := range all {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	var completionRates, longestStreaks, avgWaters []float64
	var mine ComparativeStats
	for uid, records := range byUser {
		completed := 0
		waterSum := 0
		for _, p := range records {
			if p.Completed {
				completed++
			}
			waterSum += p.WaterIntakeLiters
		}
		rate := float64(completed) / float64(len(records)) * 100
		_, longest := ComputeStreaks(records)
		avgWater := float64(waterSum) / float64(len(records))

		completionRates = append(completionRates, rate)
		longestStreaks = append(longestStreaks, float64(longest))
		avgWaters = append(avgWaters, avgWater)

		if uid == userID {
			mine.CompletionRate.Value = round1(rate)
			mine.LongestStreak.Value = float64(longest)
			mine.AverageWater.Value = round1(avgWater)
		}
	}

	mine.UsersWithData = len(byUser)
	if _, ok := byUser[userID]; ok {
		mine.CompletionRate.Percentile = PercentileRank(completionRates, mine.CompletionRate.Value)
		mine.LongestStreak.Percentile = PercentileRank(longestStreaks, mine.LongestStreak.Value)
		mine.AverageWater.Percentile = PercentileRank(avgWaters, mine.AverageWater.Value)
	}
	return &mine, nil
}

type OverviewStats struct {
	TotalUsers          int64   `json:"total_users"`
	ActiveChallenges    int64   `json:"active_challenges"`
	CompletedChallenges int     `json:"completed_challenges"`
	TotalDaysTracked    int64   `json:"total_days_tracked"`
	TotalDaysCompleted  int64   `json:"total_days_completed"`
	OverallCompletion   float64 `json:"overall_completion_percent"`
}

// Overview aggregates across the whole user base.
func (s *StatsService) Overview() (*OverviewStats, error) {
	out := &OverviewStats{}

	if err := s.db.Model(&models.User{}).Where("is_active = ?", true).Count(&out.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).
		Where("is_active = ? AND challenge_start_date IS NOT NULL", true).
		Count(&out.ActiveChallenges).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.DailyProgress{}).Count(&out.TotalDaysTracked).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.DailyProgress{}).
		Where("completed = ?", true).Count(&out.TotalDaysCompleted).Error; err != nil {
		return nil, err
	}

	type userCompletion struct {
		UserID    uint
		Total     int64
		Completed int64
	}
	var perUser []userCompletion
	if err := s.db.Model(&models.DailyProgress{}).
		Select("user_id, COUNT(*) AS total, SUM(CASE WHEN completed THEN 1 ELSE 0 END) AS completed").
		Group("user_id").
		Scan(&perUser).Error; err != nil {
		return nil, err
	}
	for _, uc := range perUser {
		if uc.Total >= ChallengeLengthDays && uc.Completed >= ChallengeLengthDays {
			out.CompletedChallenges++
		}
	}

	if out.TotalDaysTracked > 0 {
		out.OverallCompletion = round1(float64(out.TotalDaysCompleted) / float64(out.TotalDaysTracked) * 100)
	}
	return out, nil
}
