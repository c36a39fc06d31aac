// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"fitplan/internal/domain"
)

type planKey struct {
	userID int64
	day    string
}

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	sessions map[string]*domain.Session
	profiles map[int64]domain.Profile
	plans    map[planKey]domain.DailyPlan
	writeErr error

	userIDCounter int64
	planIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
		profiles: make(map[int64]domain.Profile),
		plans:    make(map[planKey]domain.DailyPlan),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.PlanRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// FailWrites makes every subsequent plan and profile write return err.
// Pass nil to restore normal operation.
func (db *DB) FailWrites(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.writeErr = err
}

// --- UserRepository ---

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, email, name, passwordHash, role string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, domain.ErrConflict
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	c := *u
	return &c, nil
}

// --- ProfileRepository ---

// GetProfile returns the profile of userID, or nil when there is none.
func (db *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, nil
	}
	return copyProfile(p), nil
}

// UpsertProfile inserts or replaces the profile of p.UserID.
func (db *DB) UpsertProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.writeErr != nil {
		return nil, db.writeErr
	}
	p.UpdatedAt = time.Now().UTC()
	stored := *copyProfile(p)
	db.profiles[p.UserID] = stored
	return copyProfile(stored), nil
}

func copyProfile(p domain.Profile) *domain.Profile {
	if p.Age != nil {
		v := *p.Age
		p.Age = &v
	}
	if p.Gender != nil {
		v := *p.Gender
		p.Gender = &v
	}
	if p.HeightCm != nil {
		v := *p.HeightCm
		p.HeightCm = &v
	}
	if p.WeightKg != nil {
		v := *p.WeightKg
		p.WeightKg = &v
	}
	return &p
}

// --- PlanRepository ---

// ListPlans returns the user's plans ordered Monday to Sunday.
func (db *DB) ListPlans(ctx context.Context, userID int64) ([]domain.DailyPlan, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.DailyPlan, 0, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		if p, ok := db.plans[planKey{userID, day}]; ok {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// GetPlan returns the plan of userID for day, or nil when there is none.
func (db *DB) GetPlan(ctx context.Context, userID int64, day string) (*domain.DailyPlan, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.plans[planKey{userID, day}]
	if !ok {
		return nil, nil
	}
	c := p.Clone()
	return &c, nil
}

// UpdatePlan overwrites the items and completion status of an existing plan.
func (db *DB) UpdatePlan(ctx context.Context, plan *domain.DailyPlan) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.writeErr != nil {
		return db.writeErr
	}
	key := planKey{plan.UserID, plan.Day}
	current, ok := db.plans[key]
	if !ok {
		return domain.ErrNotFound
	}
	stored := plan.Clone()
	stored.ID = current.ID
	stored.UpdatedAt = time.Now().UTC()
	db.plans[key] = stored
	plan.ID = stored.ID
	plan.UpdatedAt = stored.UpdatedAt
	return nil
}

// ReplaceWeek deletes every plan of userID and inserts plans under one lock.
func (db *DB) ReplaceWeek(ctx context.Context, userID int64, plans []domain.DailyPlan) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.writeErr != nil {
		return db.writeErr
	}
	for k := range db.plans {
		if k.userID == userID {
			delete(db.plans, k)
		}
	}
	now := time.Now().UTC()
	for _, p := range plans {
		db.planIDCounter++
		stored := p.Clone()
		stored.ID = db.planIDCounter
		stored.UserID = userID
		stored.UpdatedAt = now
		db.plans[planKey{userID, p.Day}] = stored
	}
	return nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expiry is left to the caller.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	var n int64
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
			n++
		}
	}
	return n, nil
}
