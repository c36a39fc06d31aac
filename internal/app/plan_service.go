package app

import (
	"context"
	"errors"
	"fmt"

	"fitplan/internal/domain"
	"fitplan/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// PlanService encapsulates the weekly plan use cases.
type PlanService struct {
	plans    domain.PlanRepository
	profiles domain.ProfileRepository
	metrics  *metrics.Manager
}

// NewPlanService creates a PlanService. m may be nil.
func NewPlanService(plans domain.PlanRepository, profiles domain.ProfileRepository, m *metrics.Manager) *PlanService {
	return &PlanService{plans: plans, profiles: profiles, metrics: m}
}

// List returns the user's week, generating and storing one first when the
// user has no plans yet.
func (s *PlanService) List(ctx context.Context, userID int64) ([]domain.DailyPlan, error) {
	plans, err := s.plans.ListPlans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w: %w", domain.ErrPersistence, err)
	}
	if len(plans) == 0 {
		if err := s.Regenerate(ctx, userID); err != nil {
			return nil, err
		}
		if plans, err = s.plans.ListPlans(ctx, userID); err != nil {
			return nil, fmt.Errorf("list plans: %w: %w", domain.ErrPersistence, err)
		}
	}
	for i := range plans {
		plans[i] = domain.Reconcile(plans[i])
	}
	return plans, nil
}

// GetDay returns the plan of one weekday.
func (s *PlanService) GetDay(ctx context.Context, userID int64, day string) (*domain.DailyPlan, error) {
	canonical, ok := domain.ParseWeekday(day)
	if !ok {
		return nil, fmt.Errorf("day %q: %w", day, domain.ErrNotFound)
	}
	plan, err := s.plans.GetPlan(ctx, userID, canonical)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w: %w", domain.ErrPersistence, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("plan for %s: %w", canonical, domain.ErrNotFound)
	}
	reconciled := domain.Reconcile(*plan)
	return &reconciled, nil
}

// UpdateDay replaces the exercises and meals of one day. The completion
// flags carried by the new items become the completion status.
func (s *PlanService) UpdateDay(ctx context.Context, userID int64, day string, exercises []domain.Exercise, meals []domain.Meal) (*domain.DailyPlan, error) {
	if exercises == nil || meals == nil {
		return nil, fmt.Errorf("%w: exercises and meals are required", domain.ErrValidation)
	}
	if err := domain.ValidateItems(exercises, meals); err != nil {
		return nil, err
	}
	current, err := s.GetDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	current.Exercises = exercises
	current.Meals = meals
	updated := domain.SyncStatusFromFlags(*current)
	if err := s.plans.UpdatePlan(ctx, &updated); err != nil {
		return nil, s.writeErr(err)
	}
	return &updated, nil
}

// ToggleExercise flips the completion of one exercise and persists the
// result. On a storage failure nothing is returned and the caller should
// reload.
func (s *PlanService) ToggleExercise(ctx context.Context, userID int64, day, exerciseID string) (*domain.DailyPlan, error) {
	return s.toggle(ctx, userID, day, exerciseID, "exercise", domain.ToggleExercise)
}

// ToggleMeal flips the consumed state of one meal and persists the result.
func (s *PlanService) ToggleMeal(ctx context.Context, userID int64, day, mealID string) (*domain.DailyPlan, error) {
	return s.toggle(ctx, userID, day, mealID, "meal", domain.ToggleMeal)
}

func (s *PlanService) toggle(ctx context.Context, userID int64, day, id, kind string, fn func(domain.DailyPlan, string) domain.DailyPlan) (*domain.DailyPlan, error) {
	current, err := s.GetDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if !hasItem(*current, kind, id) {
		log.Debugf("toggle %s %s on %s: no such item", kind, id, current.Day)
		return current, nil
	}

	updated := fn(*current, id)
	if err := s.plans.UpdatePlan(ctx, &updated); err != nil {
		return nil, s.writeErr(err)
	}
	if s.metrics != nil {
		s.metrics.CounterPlanToggles.WithLabelValues(kind).Inc()
	}
	return &updated, nil
}

func hasItem(p domain.DailyPlan, kind, id string) bool {
	if kind == "meal" {
		for _, m := range p.Meals {
			if m.ID == id {
				return true
			}
		}
		return false
	}
	for _, e := range p.Exercises {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Regenerate discards the user's plans and stores a fresh week for the
// profile goal. All completion state is reset.
func (s *PlanService) Regenerate(ctx context.Context, userID int64) error {
	profile, err := ensureProfile(ctx, s.profiles, userID)
	if err != nil {
		return err
	}

	if _, fellBack := domain.NormalizeGoal(profile.Goal); fellBack {
		log.Warnf("user %d has unknown goal %q, generating maintenance plans", userID, profile.Goal)
		if s.metrics != nil {
			s.metrics.CounterGoalFallbacks.Inc()
		}
	}

	week := domain.CombinePlans(domain.GenerateWorkoutPlans(*profile), domain.GenerateMealPlans(*profile))
	if err := s.plans.ReplaceWeek(ctx, userID, week); err != nil {
		log.Errorf("replace week for user %d: %s", userID, err)
		return fmt.Errorf("replace week: %w: %w", domain.ErrPersistence, err)
	}
	if s.metrics != nil {
		s.metrics.CounterPlanRegenerations.Inc()
	}
	return nil
}

func (s *PlanService) writeErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	log.Errorf("update plan: %s", err)
	return fmt.Errorf("update plan: %w: %w", domain.ErrPersistence, err)
}
