package domain

import "math"

// Category selects one of the weekly exercise rosters.
type Category string

const (
	CategoryPush Category = "push"
	CategoryLeg  Category = "leg"
	CategoryBack Category = "back"
	CategoryRest Category = "rest"
)

// CategoryFor returns the roster used on day: Monday and Friday push,
// Tuesday and Saturday legs, Wednesday back, Thursday and Sunday rest.
func CategoryFor(day string) Category {
	switch day {
	case "Monday", "Friday":
		return CategoryPush
	case "Tuesday", "Saturday":
		return CategoryLeg
	case "Wednesday":
		return CategoryBack
	default:
		return CategoryRest
	}
}

// CalorieMultiplier scales template calories per goal.
func CalorieMultiplier(g Goal) float64 {
	switch g {
	case GoalWeightLoss:
		return 0.85
	case GoalMuscleGain:
		return 1.2
	default:
		return 1
	}
}

// ProteinMultiplier scales template protein per goal.
func ProteinMultiplier(g Goal) float64 {
	if g == GoalMuscleGain {
		return 1.3
	}
	return 1
}

func minutes(n int) *int { return &n }

var pushRoster = map[Goal][]Exercise{
	GoalWeightLoss: {
		{ID: "e1", Name: "HIIT Cardio", Sets: 3, Reps: 0, Duration: minutes(10), Description: "High intensity intervals"},
		{ID: "e2", Name: "Jump Squats", Sets: 3, Reps: 15, Description: "Explosive lower body"},
		{ID: "e3", Name: "Burpees", Sets: 3, Reps: 12, Description: "Full body cardio"},
		{ID: "e4", Name: "Mountain Climbers", Sets: 3, Reps: 0, Duration: minutes(5), Description: "Core and cardio"},
	},
	GoalMuscleGain: {
		{ID: "e1", Name: "Bench Press", Sets: 4, Reps: 8, Description: "Flat bench with barbell"},
		{ID: "e2", Name: "Incline Dumbbell Press", Sets: 3, Reps: 10, Description: "45° incline angle"},
		{ID: "e3", Name: "Cable Flyes", Sets: 3, Reps: 12, Description: "Focus on chest squeeze"},
		{ID: "e4", Name: "Tricep Dips", Sets: 3, Reps: 12, Description: "Bodyweight or assisted"},
	},
	GoalMaintenance: {
		{ID: "e1", Name: "Push-ups", Sets: 3, Reps: 15, Description: "Standard form"},
		{ID: "e2", Name: "Bodyweight Squats", Sets: 3, Reps: 20, Description: "Controlled movement"},
		{ID: "e3", Name: "Plank Hold", Sets: 3, Reps: 0, Duration: minutes(1), Description: "60 second holds"},
		{ID: "e4", Name: "Lunges", Sets: 3, Reps: 12, Description: "Alternating legs"},
	},
}

var legRoster = map[Goal][]Exercise{
	GoalWeightLoss: {
		{ID: "e5", Name: "Jump Rope", Sets: 3, Reps: 0, Duration: minutes(5), Description: "Continuous jumping"},
		{ID: "e6", Name: "Walking Lunges", Sets: 3, Reps: 20, Description: "Cardio focus"},
		{ID: "e7", Name: "Box Jumps", Sets: 3, Reps: 12, Description: "Explosive power"},
		{ID: "e8", Name: "High Knees", Sets: 3, Reps: 0, Duration: minutes(3), Description: "Quick feet"},
	},
	GoalMuscleGain: {
		{ID: "e5", Name: "Squats", Sets: 4, Reps: 8, Description: "Barbell back squat"},
		{ID: "e6", Name: "Romanian Deadlifts", Sets: 3, Reps: 10, Description: "Focus on hamstrings"},
		{ID: "e7", Name: "Leg Press", Sets: 4, Reps: 12, Description: "Heavy weight"},
		{ID: "e8", Name: "Calf Raises", Sets: 4, Reps: 15, Description: "Standing"},
	},
	GoalMaintenance: {
		{ID: "e5", Name: "Goblet Squats", Sets: 3, Reps: 15, Description: "Dumbbell held at chest"},
		{ID: "e6", Name: "Step-ups", Sets: 3, Reps: 12, Description: "Alternating legs"},
		{ID: "e7", Name: "Wall Sit", Sets: 3, Reps: 0, Duration: minutes(1), Description: "45 second holds"},
		{ID: "e8", Name: "Glute Bridges", Sets: 3, Reps: 15, Description: "Squeeze at top"},
	},
}

var backRoster = map[Goal][]Exercise{
	GoalWeightLoss: {
		{ID: "e9", Name: "Rowing Machine", Sets: 3, Reps: 0, Duration: minutes(8), Description: "Moderate pace"},
		{ID: "e10", Name: "Superman Holds", Sets: 3, Reps: 15, Description: "Lower back focus"},
		{ID: "e11", Name: "Renegade Rows", Sets: 3, Reps: 10, Description: "Plank position rows"},
		{ID: "e12", Name: "Battle Ropes", Sets: 3, Reps: 0, Duration: minutes(2), Description: "Alternating waves"},
	},
	GoalMuscleGain: {
		{ID: "e9", Name: "Pull-ups", Sets: 4, Reps: 8, Description: "Wide grip"},
		{ID: "e10", Name: "Barbell Rows", Sets: 4, Reps: 10, Description: "Overhand grip"},
		{ID: "e11", Name: "Lat Pulldowns", Sets: 3, Reps: 12, Description: "Focus on contraction"},
		{ID: "e12", Name: "Bicep Curls", Sets: 3, Reps: 12, Description: "Dumbbell or barbell"},
	},
	GoalMaintenance: {
		{ID: "e9", Name: "Assisted Pull-ups", Sets: 3, Reps: 10, Description: "Machine or bands"},
		{ID: "e10", Name: "Dumbbell Rows", Sets: 3, Reps: 12, Description: "One arm at a time"},
		{ID: "e11", Name: "Face Pulls", Sets: 3, Reps: 15, Description: "Cable machine"},
		{ID: "e12", Name: "Reverse Flyes", Sets: 3, Reps: 12, Description: "Rear deltoids"},
	},
}

// Rest days are the same for every goal.
var restDays = map[string]Exercise{
	"Thursday": {ID: "e13", Name: "Rest Day", Description: "Active recovery - light stretching or walk"},
	"Sunday":   {ID: "e22", Name: "Rest Day", Description: "Full recovery - enjoy your day!"},
}

func rosterFor(c Category) map[Goal][]Exercise {
	switch c {
	case CategoryPush:
		return pushRoster
	case CategoryLeg:
		return legRoster
	case CategoryBack:
		return backRoster
	default:
		return nil
	}
}

// ExercisesFor returns a fresh copy of the roster for goal and category.
// Unknown goals get the maintenance roster. CategoryRest yields the
// mid-week active recovery entry.
func ExercisesFor(g Goal, c Category) []Exercise {
	if c == CategoryRest {
		return []Exercise{restDays["Thursday"]}
	}
	goal, _ := NormalizeGoal(g)
	return cloneExercises(rosterFor(c)[goal])
}

// ExercisesForDay applies the weekly rotation for day.
func ExercisesForDay(g Goal, day string) []Exercise {
	if rest, ok := restDays[day]; ok {
		return []Exercise{rest}
	}
	return ExercisesFor(g, CategoryFor(day))
}

func cloneExercises(in []Exercise) []Exercise {
	out := make([]Exercise, len(in))
	for i, e := range in {
		if e.Duration != nil {
			d := *e.Duration
			e.Duration = &d
		}
		out[i] = e
	}
	return out
}

// mealTemplate is one slot of the meal roster. Goal-keyed maps override
// the default name or carbs for that goal only. fixedProtein entries are
// not scaled.
type mealTemplate struct {
	id           string
	kind         MealType
	name         string
	names        map[Goal]string
	calories     float64
	protein      float64
	fixedProtein bool
	carbs        float64
	carbsByGoal  map[Goal]float64
	fat          float64
}

func (t mealTemplate) build(g Goal) Meal {
	name := t.name
	if n, ok := t.names[g]; ok {
		name = n
	}
	protein := t.protein
	if !t.fixedProtein {
		protein = math.Round(t.protein * ProteinMultiplier(g))
	}
	carbs := t.carbs
	if c, ok := t.carbsByGoal[g]; ok {
		carbs = c
	}
	return Meal{
		ID:       t.id,
		Name:     name,
		Type:     t.kind,
		Calories: math.Round(t.calories * CalorieMultiplier(g)),
		Protein:  protein,
		Carbs:    carbs,
		Fat:      t.fat,
	}
}

var mealRoster = map[string][]mealTemplate{
	"Monday": {
		{id: "m1", kind: MealBreakfast, name: "Protein Oatmeal", names: map[Goal]string{GoalWeightLoss: "Light Protein Oatmeal"},
			calories: 400, protein: 30, carbs: 45, fat: 10},
		{id: "m2", kind: MealLunch, name: "Chicken & Rice Bowl", names: map[Goal]string{GoalWeightLoss: "Grilled Chicken Salad"},
			calories: 500, protein: 42, carbs: 45, carbsByGoal: map[Goal]float64{GoalWeightLoss: 20}, fat: 18},
		{id: "m3", kind: MealDinner, name: "Grilled Salmon", names: map[Goal]string{GoalMuscleGain: "Salmon with Quinoa & Veggies"},
			calories: 600, protein: 48, carbs: 40, carbsByGoal: map[Goal]float64{GoalWeightLoss: 25}, fat: 22},
		{id: "m4", kind: MealSnack, name: "Greek Yogurt", names: map[Goal]string{GoalMuscleGain: "Greek Yogurt & Almonds"},
			calories: 250, protein: 20, carbs: 12, fat: 12},
	},
	"Tuesday": {
		{id: "m5", kind: MealBreakfast, name: "Whole Egg Scramble", names: map[Goal]string{GoalWeightLoss: "Egg White Omelette"},
			calories: 350, protein: 28, carbs: 15, fat: 12},
		{id: "m6", kind: MealLunch, name: "Turkey Wrap",
			calories: 480, protein: 38, carbs: 35, fat: 16},
		{id: "m7", kind: MealDinner, name: "Lean Beef Stir-fry", names: map[Goal]string{GoalMuscleGain: "Lean Beef Stir-fry with Rice"},
			calories: 550, protein: 45, carbs: 40, carbsByGoal: map[Goal]float64{GoalWeightLoss: 28}, fat: 20},
		{id: "m8", kind: MealSnack, name: "Protein Shake",
			calories: 200, protein: 28, carbs: 6, fat: 4},
	},
	"Wednesday": {
		{id: "m9", kind: MealBreakfast, name: "Smoothie Bowl", names: map[Goal]string{GoalWeightLoss: "Berry Protein Smoothie"},
			calories: 380, protein: 25, carbs: 40, fat: 8},
		{id: "m10", kind: MealLunch, name: "Tuna Avocado Bowl",
			calories: 520, protein: 40, carbs: 25, fat: 26},
		{id: "m11", kind: MealDinner, name: "Chicken Breast & Veggies",
			calories: 500, protein: 50, carbs: 22, fat: 16},
		{id: "m12", kind: MealSnack, name: "Cottage Cheese",
			calories: 180, protein: 22, carbs: 6, fat: 5},
	},
	"Thursday": {
		{id: "m13", kind: MealBreakfast, name: "Avocado Toast", names: map[Goal]string{GoalWeightLoss: "Avocado Toast (Light)"},
			calories: 350, protein: 14, fixedProtein: true, carbs: 30, fat: 20},
		{id: "m14", kind: MealLunch, name: "Mediterranean Bowl",
			calories: 500, protein: 28, carbs: 40, fat: 22},
		{id: "m15", kind: MealDinner, name: "Grilled Fish Tacos",
			calories: 550, protein: 38, carbs: 42, fat: 18},
		{id: "m16", kind: MealSnack, name: "Mixed Nuts", names: map[Goal]string{GoalWeightLoss: "Almonds (Small)"},
			calories: 220, protein: 7, fixedProtein: true, carbs: 8, fat: 18},
	},
	"Friday": {
		{id: "m17", kind: MealBreakfast, name: "Protein Pancakes",
			calories: 450, protein: 32, carbs: 42, fat: 12},
		{id: "m18", kind: MealLunch, name: "Chicken Caesar Wrap",
			calories: 520, protein: 40, carbs: 32, fat: 20},
		{id: "m19", kind: MealDinner, name: "Steak & Sweet Potato", names: map[Goal]string{GoalMuscleGain: "Steak & Sweet Potato (Large)"},
			calories: 650, protein: 50, carbs: 45, fat: 26},
		{id: "m20", kind: MealSnack, name: "Casein Shake",
			calories: 180, protein: 26, carbs: 5, fat: 3},
	},
	"Saturday": {
		{id: "m21", kind: MealBreakfast, name: "Full English Breakfast", names: map[Goal]string{GoalWeightLoss: "Veggie Omelette"},
			calories: 550, protein: 38, carbs: 35, fat: 28},
		{id: "m22", kind: MealLunch, name: "Poke Bowl",
			calories: 560, protein: 36, carbs: 50, fat: 18},
		{id: "m23", kind: MealDinner, name: "Grilled Lamb Cutlets", names: map[Goal]string{GoalMuscleGain: "Lamb Chops & Salad"},
			calories: 600, protein: 46, carbs: 18, fat: 32},
		{id: "m24", kind: MealSnack, name: "Protein Bar",
			calories: 210, protein: 20, carbs: 18, fat: 7},
	},
	"Sunday": {
		{id: "m25", kind: MealBreakfast, name: "Veggie Omelette",
			calories: 380, protein: 26, carbs: 10, fat: 24},
		{id: "m26", kind: MealLunch, name: "Grilled Shrimp Salad",
			calories: 430, protein: 38, carbs: 15, fat: 22},
		{id: "m27", kind: MealDinner, name: "Roast Chicken Dinner",
			calories: 650, protein: 52, carbs: 40, fat: 28},
		{id: "m28", kind: MealSnack, name: "Fruit & Almonds",
			calories: 180, protein: 5, fixedProtein: true, carbs: 22, fat: 8},
	},
}

// MealsFor returns the meals of day for goal with calories and protein
// scaled by the goal multipliers. Unknown goals get maintenance values and
// unknown days an empty list.
func MealsFor(g Goal, day string) []Meal {
	goal, _ := NormalizeGoal(g)
	templates := mealRoster[day]
	out := make([]Meal, 0, len(templates))
	for _, t := range templates {
		out = append(out, t.build(goal))
	}
	return out
}
