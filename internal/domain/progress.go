package domain

import "time"

// DayProgress is the completion summary of one daily plan.
type DayProgress struct {
	Day                    string    `json:"day"`
	Date                   time.Time `json:"date"`
	ExercisesCompleted     int       `json:"exercises_completed"`
	ExercisesTotal         int       `json:"exercises_total"`
	MealsCompleted         int       `json:"meals_completed"`
	MealsTotal             int       `json:"meals_total"`
	CaloriesConsumed       float64   `json:"calories_consumed"`
	CaloriesTarget         float64   `json:"calories_target"`
	ExerciseCompletionRate float64   `json:"exercise_completion_rate"`
}

// Stats is the cumulative summary over all of a user's plans.
type Stats struct {
	CurrentWeight           *float64 `json:"current_weight"`
	WeightUnit              string   `json:"weight_unit"`
	Goal                    Goal     `json:"goal"`
	TotalExercisesCompleted int      `json:"total_exercises_completed"`
	TotalExercises          int      `json:"total_exercises"`
	TotalMealsCompleted     int      `json:"total_meals_completed"`
	TotalMeals              int      `json:"total_meals"`
	TotalCaloriesConsumed   float64  `json:"total_calories_consumed"`
	TotalCaloriesTarget     float64  `json:"total_calories_target"`
	ExerciseCompletionRate  float64  `json:"exercise_completion_rate"`
	CalorieCompletionRate   float64  `json:"calorie_completion_rate"`
}

// DayProgressFor counts completed items of p using either completion
// representation.
func DayProgressFor(p DailyPlan) DayProgress {
	dp := DayProgress{
		Day:            p.Day,
		Date:           p.UpdatedAt,
		ExercisesTotal: len(p.Exercises),
		MealsTotal:     len(p.Meals),
	}
	for _, e := range p.Exercises {
		if IsExerciseDone(p, e) {
			dp.ExercisesCompleted++
		}
	}
	for _, m := range p.Meals {
		dp.CaloriesTarget += m.Calories
		if IsMealDone(p, m) {
			dp.MealsCompleted++
			dp.CaloriesConsumed += m.Calories
		}
	}
	dp.ExerciseCompletionRate = percent(float64(dp.ExercisesCompleted), float64(dp.ExercisesTotal))
	return dp
}

// Summarize sums the per-day counts over plans. Weight and goal come from
// profile, which may be nil. The weight is reported in kg.
func Summarize(plans []DailyPlan, profile *Profile) Stats {
	s := Stats{WeightUnit: UnitKg}
	if profile != nil {
		s.Goal = profile.Goal
		if profile.WeightKg != nil {
			w := *profile.WeightKg
			s.CurrentWeight = &w
		}
	}
	for _, p := range plans {
		dp := DayProgressFor(p)
		s.TotalExercisesCompleted += dp.ExercisesCompleted
		s.TotalExercises += dp.ExercisesTotal
		s.TotalMealsCompleted += dp.MealsCompleted
		s.TotalMeals += dp.MealsTotal
		s.TotalCaloriesConsumed += dp.CaloriesConsumed
		s.TotalCaloriesTarget += dp.CaloriesTarget
	}
	s.ExerciseCompletionRate = percent(float64(s.TotalExercisesCompleted), float64(s.TotalExercises))
	s.CalorieCompletionRate = percent(s.TotalCaloriesConsumed, s.TotalCaloriesTarget)
	return s
}

// InUnit returns a copy of s with the current weight converted to unit.
func (s Stats) InUnit(unit string) Stats {
	if s.CurrentWeight != nil && unit != s.WeightUnit {
		w := ConvertWeight(*s.CurrentWeight, s.WeightUnit, unit)
		s.CurrentWeight = &w
	}
	s.WeightUnit = unit
	return s
}

func percent(n, total float64) float64 {
	if total == 0 {
		return 0
	}
	return n / total * 100
}
