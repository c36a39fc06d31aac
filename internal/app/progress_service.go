package app

import (
	"context"
	"fmt"

	"fitplan/internal/domain"
)

// ProgressService derives completion statistics from stored plans.
type ProgressService struct {
	plans    domain.PlanRepository
	profiles domain.ProfileRepository
}

// NewProgressService creates a ProgressService.
func NewProgressService(plans domain.PlanRepository, profiles domain.ProfileRepository) *ProgressService {
	return &ProgressService{plans: plans, profiles: profiles}
}

// Daily returns one progress entry per stored plan, Monday first.
func (s *ProgressService) Daily(ctx context.Context, userID int64) ([]domain.DayProgress, error) {
	plans, err := s.plans.ListPlans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w: %w", domain.ErrPersistence, err)
	}
	out := make([]domain.DayProgress, 0, len(plans))
	for _, p := range plans {
		out = append(out, domain.DayProgressFor(p))
	}
	return out, nil
}

// Stats returns cumulative totals with the current weight in unit.
func (s *ProgressService) Stats(ctx context.Context, userID int64, unit string) (*domain.Stats, error) {
	if unit == "" {
		unit = domain.UnitKg
	}
	if !domain.ValidWeightUnit(unit) {
		return nil, fmt.Errorf("%w: unit must be \"kg\" or \"lb\"", domain.ErrValidation)
	}

	profile, err := ensureProfile(ctx, s.profiles, userID)
	if err != nil {
		return nil, err
	}
	plans, err := s.plans.ListPlans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w: %w", domain.ErrPersistence, err)
	}

	stats := domain.Summarize(plans, profile).InUnit(unit)
	return &stats, nil
}
