package domain

// GenerateWorkoutPlans returns one plan per weekday, Monday first, holding
// the exercises of the weekly rotation for p's goal and no meals.
func GenerateWorkoutPlans(p Profile) []DailyPlan {
	goal, _ := NormalizeGoal(p.Goal)
	plans := make([]DailyPlan, 0, len(Weekdays))
	for _, day := range Weekdays {
		plans = append(plans, DailyPlan{
			UserID:          p.UserID,
			Day:             day,
			Exercises:       ExercisesForDay(goal, day),
			Meals:           []Meal{},
			CompletedStatus: NewCompletionStatus(),
		})
	}
	return plans
}

// GenerateMealPlans returns one plan per weekday, Monday first, holding the
// meals for p's goal and no exercises.
func GenerateMealPlans(p Profile) []DailyPlan {
	goal, _ := NormalizeGoal(p.Goal)
	plans := make([]DailyPlan, 0, len(Weekdays))
	for _, day := range Weekdays {
		plans = append(plans, DailyPlan{
			UserID:          p.UserID,
			Day:             day,
			Exercises:       []Exercise{},
			Meals:           MealsFor(goal, day),
			CompletedStatus: NewCompletionStatus(),
		})
	}
	return plans
}

// CombinePlans merges workouts and meals by exact day label, in the order of
// workouts. Days without a meal entry get an empty meal list. Every result
// starts with an empty completion status.
func CombinePlans(workouts, meals []DailyPlan) []DailyPlan {
	byDay := make(map[string]DailyPlan, len(meals))
	for _, m := range meals {
		if _, seen := byDay[m.Day]; !seen {
			byDay[m.Day] = m
		}
	}

	out := make([]DailyPlan, 0, len(workouts))
	for _, w := range workouts {
		combined := DailyPlan{
			UserID:          w.UserID,
			Day:             w.Day,
			Exercises:       cloneExercises(w.Exercises),
			Meals:           []Meal{},
			CompletedStatus: NewCompletionStatus(),
		}
		if m, ok := byDay[w.Day]; ok && m.Meals != nil {
			combined.Meals = append(combined.Meals, m.Meals...)
		}
		out = append(out, combined)
	}
	return out
}

// GenerateWeek runs both generators and combines them.
func GenerateWeek(p Profile) []DailyPlan {
	return CombinePlans(GenerateWorkoutPlans(p), GenerateMealPlans(p))
}
