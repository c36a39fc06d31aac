package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Weekdays lists the plan days in week order. Every user owns exactly one
// DailyPlan per entry after generation.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ParseWeekday resolves a day label case-insensitively to its canonical form.
func ParseWeekday(s string) (string, bool) {
	for _, d := range Weekdays {
		if strings.EqualFold(d, strings.TrimSpace(s)) {
			return d, true
		}
	}
	return "", false
}

// WeekdayIndex returns the position of day in Weekdays, or -1.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if d == day {
			return i
		}
	}
	return -1
}

// MealType is one of breakfast, lunch, dinner or snack.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// IsValid reports whether t is one of the four meal types.
func (t MealType) IsValid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	default:
		return false
	}
}

// Exercise is a single workout item of a day.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	Duration    *int   `json:"duration,omitempty"` // minutes
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Meal is a single meal of a day. Macros are grams, energy is kcal.
type Meal struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     MealType `json:"type"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Consumed bool     `json:"consumed"`
}

// CompletionStatus records the ids of completed exercises and consumed
// meals of one plan. Both lists have set semantics.
type CompletionStatus struct {
	Exercises []string `json:"exercises"`
	Meals     []string `json:"meals"`
}

// NewCompletionStatus returns a status with both sets empty.
func NewCompletionStatus() CompletionStatus {
	return CompletionStatus{Exercises: []string{}, Meals: []string{}}
}

// DailyPlan is one weekday of a user's plan.
type DailyPlan struct {
	ID              int64            `json:"id,omitempty"`
	UserID          int64            `json:"-"`
	Day             string           `json:"day"`
	Exercises       []Exercise       `json:"exercises"`
	Meals           []Meal           `json:"meals"`
	CompletedStatus CompletionStatus `json:"completed_status"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Clone returns a deep copy of p.
func (p DailyPlan) Clone() DailyPlan {
	out := p
	out.Exercises = make([]Exercise, len(p.Exercises))
	for i, e := range p.Exercises {
		if e.Duration != nil {
			d := *e.Duration
			e.Duration = &d
		}
		out.Exercises[i] = e
	}
	out.Meals = append(make([]Meal, 0, len(p.Meals)), p.Meals...)
	out.CompletedStatus = CompletionStatus{
		Exercises: append(make([]string, 0, len(p.CompletedStatus.Exercises)), p.CompletedStatus.Exercises...),
		Meals:     append(make([]string, 0, len(p.CompletedStatus.Meals)), p.CompletedStatus.Meals...),
	}
	return out
}

// ValidateItems checks a client-supplied item list for one day. Ids must be
// present and unique within their kind since completion is tracked by id.
func ValidateItems(exercises []Exercise, meals []Meal) error {
	seen := make(map[string]bool, len(exercises))
	for _, e := range exercises {
		switch {
		case strings.TrimSpace(e.ID) == "":
			return fmt.Errorf("%w: exercise id is required", ErrValidation)
		case seen[e.ID]:
			return fmt.Errorf("%w: duplicate exercise id %q", ErrValidation, e.ID)
		case strings.TrimSpace(e.Name) == "":
			return fmt.Errorf("%w: exercise %s: name is required", ErrValidation, e.ID)
		case e.Sets < 0 || e.Reps < 0:
			return fmt.Errorf("%w: exercise %s: sets and reps must not be negative", ErrValidation, e.ID)
		case e.Duration != nil && *e.Duration < 0:
			return fmt.Errorf("%w: exercise %s: duration must not be negative", ErrValidation, e.ID)
		}
		seen[e.ID] = true
	}

	seen = make(map[string]bool, len(meals))
	for _, m := range meals {
		switch {
		case strings.TrimSpace(m.ID) == "":
			return fmt.Errorf("%w: meal id is required", ErrValidation)
		case seen[m.ID]:
			return fmt.Errorf("%w: duplicate meal id %q", ErrValidation, m.ID)
		case strings.TrimSpace(m.Name) == "":
			return fmt.Errorf("%w: meal %s: name is required", ErrValidation, m.ID)
		case !m.Type.IsValid():
			return fmt.Errorf("%w: meal %s: type must be breakfast, lunch, dinner, or snack", ErrValidation, m.ID)
		case m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fat < 0:
			return fmt.Errorf("%w: meal %s: calories and macros must not be negative", ErrValidation, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// PlanRepository is the port for daily plan persistence.
type PlanRepository interface {
	// ListPlans returns the user's plans ordered Monday to Sunday.
	ListPlans(ctx context.Context, userID int64) ([]DailyPlan, error)
	// GetPlan returns nil, nil when the user has no plan for day.
	GetPlan(ctx context.Context, userID int64, day string) (*DailyPlan, error)
	// UpdatePlan overwrites items and completion status of an existing
	// plan and stamps UpdatedAt. Returns ErrNotFound when no row matches.
	UpdatePlan(ctx context.Context, plan *DailyPlan) error
	// ReplaceWeek deletes every plan of the user and inserts plans as one
	// atomic unit.
	ReplaceWeek(ctx context.Context, userID int64, plans []DailyPlan) error
}
