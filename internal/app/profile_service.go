package app

import (
	"context"
	"fmt"
	"strings"

	"fitplan/internal/domain"

	log "github.com/sirupsen/logrus"
)

// ProfileService reads and edits user profiles.
type ProfileService struct {
	repo domain.ProfileRepository
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the profile of userID, creating the default one first if the
// user has none yet.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	return ensureProfile(ctx, s.repo, userID)
}

// Update validates and stores p for userID. Changing the goal does not
// touch existing plans; clients regenerate explicitly.
func (s *ProfileService) Update(ctx context.Context, userID int64, p domain.Profile) (*domain.Profile, error) {
	p.UserID = userID
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	saved, err := s.repo.UpsertProfile(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w: %w", domain.ErrPersistence, err)
	}
	return saved, nil
}

// ensureProfile loads the profile of userID. Users whose profile was never
// written, for instance after a failed insert during registration, get the
// default maintenance profile stored on first access.
func ensureProfile(ctx context.Context, repo domain.ProfileRepository, userID int64) (*domain.Profile, error) {
	p, err := repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w: %w", domain.ErrPersistence, err)
	}
	if p != nil {
		return p, nil
	}
	p, err = repo.UpsertProfile(ctx, domain.NewDefaultProfile(userID, ""))
	if err != nil {
		return nil, fmt.Errorf("create profile: %w: %w", domain.ErrPersistence, err)
	}
	log.Infof("created missing profile for user %d", userID)
	return p, nil
}
