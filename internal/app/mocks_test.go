package app

import (
	"context"
	"time"

	"fitplan/internal/domain"
)

type mockUserRepo struct {
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	createFn     func(ctx context.Context, email, name, passwordHash, role string) (*domain.User, error)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, email, name, passwordHash, role string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, email, name, passwordHash, role)
	}
	return &domain.User{ID: 1, Email: email, Name: name, PasswordHash: passwordHash, Role: role}, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) (int64, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

type mockProfileRepo struct {
	getFn    func(ctx context.Context, userID int64) (*domain.Profile, error)
	upsertFn func(ctx context.Context, p domain.Profile) (*domain.Profile, error)
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) UpsertProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, p)
	}
	return &p, nil
}

type mockPlanRepo struct {
	listFn        func(ctx context.Context, userID int64) ([]domain.DailyPlan, error)
	getFn         func(ctx context.Context, userID int64, day string) (*domain.DailyPlan, error)
	updateFn      func(ctx context.Context, plan *domain.DailyPlan) error
	replaceWeekFn func(ctx context.Context, userID int64, plans []domain.DailyPlan) error
}

func (m *mockPlanRepo) ListPlans(ctx context.Context, userID int64) ([]domain.DailyPlan, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockPlanRepo) GetPlan(ctx context.Context, userID int64, day string) (*domain.DailyPlan, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockPlanRepo) UpdatePlan(ctx context.Context, plan *domain.DailyPlan) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepo) ReplaceWeek(ctx context.Context, userID int64, plans []domain.DailyPlan) error {
	if m.replaceWeekFn != nil {
		return m.replaceWeekFn(ctx, userID, plans)
	}
	return nil
}
