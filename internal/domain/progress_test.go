package domain_test

import (
	"testing"
	"time"

	"fitplan/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDayProgressFor_HalfDone(t *testing.T) {
	plan := mondayPlan()
	plan.UpdatedAt = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	plan = domain.ToggleExercise(plan, "e1")
	plan.Exercises[2].Completed = true // flag only

	dp := domain.DayProgressFor(plan)
	assert.Equal(t, "Monday", dp.Day)
	assert.Equal(t, plan.UpdatedAt, dp.Date)
	assert.Equal(t, 2, dp.ExercisesCompleted)
	assert.Equal(t, 4, dp.ExercisesTotal)
	assert.Equal(t, 50.0, dp.ExerciseCompletionRate)
	assert.Equal(t, 0, dp.MealsCompleted)
	assert.Equal(t, 4, dp.MealsTotal)
	assert.Equal(t, 480.0+600+720+300, dp.CaloriesTarget)
	assert.Zero(t, dp.CaloriesConsumed)
}

func TestDayProgressFor_NoExercises(t *testing.T) {
	dp := domain.DayProgressFor(domain.DailyPlan{Day: "Monday"})
	assert.Zero(t, dp.ExercisesTotal)
	assert.Equal(t, 0.0, dp.ExerciseCompletionRate)
}

func TestDayProgressFor_StatusOnlyMeal(t *testing.T) {
	plan := mondayPlan()
	plan.CompletedStatus.Meals = []string{"m1"}

	dp := domain.DayProgressFor(plan)
	assert.Equal(t, 1, dp.MealsCompleted)
	assert.Equal(t, 480.0, dp.CaloriesConsumed)
}

func TestSummarize_ToggleMealChangesOnlyThatDay(t *testing.T) {
	week := domain.GenerateWeek(domain.Profile{Goal: domain.GoalMaintenance})
	weight := 82.5
	profile := &domain.Profile{Goal: domain.GoalMaintenance, WeightKg: &weight}

	before := domain.Summarize(week, profile)
	beforeDays := make([]domain.DayProgress, len(week))
	for i, p := range week {
		beforeDays[i] = domain.DayProgressFor(p)
	}

	week[0] = domain.ToggleMeal(week[0], "m3")
	after := domain.Summarize(week, profile)

	assert.Equal(t, before.TotalCaloriesConsumed+600, after.TotalCaloriesConsumed)
	assert.Equal(t, before.TotalCaloriesTarget, after.TotalCaloriesTarget)
	assert.Equal(t, beforeDays[0].CaloriesConsumed+600, domain.DayProgressFor(week[0]).CaloriesConsumed)
	for i := 1; i < len(week); i++ {
		assert.Equal(t, beforeDays[i], domain.DayProgressFor(week[i]))
	}
}

func TestSummarize(t *testing.T) {
	week := domain.GenerateWeek(domain.Profile{Goal: domain.GoalMaintenance})
	week[0] = domain.ToggleExercise(week[0], "e1")
	week[3] = domain.ToggleExercise(week[3], "e13")
	week[6] = domain.ToggleMeal(week[6], "m28")

	weight := 80.0
	s := domain.Summarize(week, &domain.Profile{Goal: domain.GoalMaintenance, WeightKg: &weight})

	// 4+4+4+1+4+4+1 exercises, 28 meals.
	assert.Equal(t, 22, s.TotalExercises)
	assert.Equal(t, 2, s.TotalExercisesCompleted)
	assert.Equal(t, 28, s.TotalMeals)
	assert.Equal(t, 1, s.TotalMealsCompleted)
	assert.Equal(t, 180.0, s.TotalCaloriesConsumed)
	assert.InDelta(t, 2.0/22*100, s.ExerciseCompletionRate, 1e-9)
	assert.InDelta(t, 180/s.TotalCaloriesTarget*100, s.CalorieCompletionRate, 1e-9)
	assert.Equal(t, domain.GoalMaintenance, s.Goal)
	assert.Equal(t, 80.0, *s.CurrentWeight)
	assert.Equal(t, "kg", s.WeightUnit)
}

func TestSummarize_Empty(t *testing.T) {
	s := domain.Summarize(nil, nil)
	assert.Zero(t, s.ExerciseCompletionRate)
	assert.Zero(t, s.CalorieCompletionRate)
	assert.Nil(t, s.CurrentWeight)
}

func TestStatsInUnit(t *testing.T) {
	weight := 100.0
	s := domain.Summarize(nil, &domain.Profile{WeightKg: &weight})

	lb := s.InUnit("lb")
	assert.InDelta(t, 220.462, *lb.CurrentWeight, 0.001)
	assert.Equal(t, "lb", lb.WeightUnit)
	assert.Equal(t, 100.0, *s.CurrentWeight)
}
