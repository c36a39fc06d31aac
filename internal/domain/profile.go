package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Goal is the fitness goal that selects the plan templates.
type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalMaintenance Goal = "maintenance"
)

// IsValid reports whether g is one of the known goals.
func (g Goal) IsValid() bool {
	switch g {
	case GoalWeightLoss, GoalMuscleGain, GoalMaintenance:
		return true
	default:
		return false
	}
}

// NormalizeGoal returns g when it is a known goal and GoalMaintenance
// otherwise. fellBack is true when the maintenance default was substituted.
func NormalizeGoal(g Goal) (goal Goal, fellBack bool) {
	if g.IsValid() {
		return g, false
	}
	return GoalMaintenance, true
}

// ActivityLevel is accepted on the profile but does not change the
// generated plans.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// IsValid reports whether a is one of the known activity levels.
func (a ActivityLevel) IsValid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	default:
		return false
	}
}

// Profile holds the per-user data that drives plan generation.
type Profile struct {
	UserID        int64         `json:"user_id"`
	Name          string        `json:"name"`
	Age           *int          `json:"age"`
	Gender        *string       `json:"gender"`
	HeightCm      *float64      `json:"height"`
	WeightKg      *float64      `json:"weight"`
	Goal          Goal          `json:"goal"`
	ActivityLevel ActivityLevel `json:"activity_level,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// NewDefaultProfile returns the profile created at registration.
func NewDefaultProfile(userID int64, name string) Profile {
	return Profile{
		UserID: userID,
		Name:   name,
		Goal:   GoalMaintenance,
	}
}

// Validate checks the user-editable profile fields.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Age != nil && (*p.Age < 1 || *p.Age > 150) {
		return fmt.Errorf("%w: age must be between 1 and 150", ErrValidation)
	}
	if p.Gender != nil {
		switch *p.Gender {
		case "male", "female", "other":
		default:
			return fmt.Errorf("%w: invalid gender", ErrValidation)
		}
	}
	if p.HeightCm != nil && (*p.HeightCm < 50 || *p.HeightCm > 300) {
		return fmt.Errorf("%w: height must be between 50 and 300 cm", ErrValidation)
	}
	if p.WeightKg != nil && (*p.WeightKg < 10 || *p.WeightKg > 500) {
		return fmt.Errorf("%w: weight must be between 10 and 500 kg", ErrValidation)
	}
	if !p.Goal.IsValid() {
		return fmt.Errorf("%w: goal must be weight_loss, muscle_gain, or maintenance", ErrValidation)
	}
	if p.ActivityLevel != "" && !p.ActivityLevel.IsValid() {
		return fmt.Errorf("%w: invalid activity level", ErrValidation)
	}
	return nil
}

// ProfileRepository is the port for profile persistence.
// GetProfile returns nil, nil when the user has no profile.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, p Profile) (*Profile, error)
}
