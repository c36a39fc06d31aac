// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitplan/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long a login stays valid.
const SessionTTL = 7 * 24 * time.Hour

const minPasswordLen = 6

// AuthService handles registration, authentication and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	profiles domain.ProfileRepository
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, profiles domain.ProfileRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		profiles: profiles,
		now:      time.Now,
	}
}

// Register creates a user with the default maintenance profile.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	switch {
	case !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: valid email is required", domain.ErrValidation)
	case len(password) < minPasswordLen:
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	case name == "":
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, email, name, string(hash), domain.RoleUser)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("email %s: %w", email, domain.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w: %w", domain.ErrPersistence, err)
	}

	s.createDefaultProfile(ctx, user)

	log.Infof("registered user %d", user.ID)
	return user, nil
}

// Login authenticates a user and creates a session.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent, ip string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || user == nil || user.PasswordHash == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, user.ID, userAgent, ip)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession checks if a session token is valid and matches the user agent.
func (s *AuthService) ValidateSession(ctx context.Context, token, userAgent string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil || session == nil {
		return nil, domain.ErrSessionNotFound
	}

	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionExpired
	}

	if !ConstantTimeCompare(session.UserAgent, userAgent) {
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil || user == nil {
		return nil, domain.ErrSessionNotFound
	}

	return user, nil
}

// ValidateForwardAuth resolves the user named by a trusted Remote-User
// header, provisioning the account on first sight.
func (s *AuthService) ValidateForwardAuth(ctx context.Context, remoteUser string) (*domain.User, error) {
	if remoteUser == "" {
		return nil, errors.New("no remote user header")
	}
	return s.provision(ctx, remoteUser, remoteUser)
}

// LoginWithUser creates a session for an already authenticated user (e.g. via SSO).
func (s *AuthService) LoginWithUser(ctx context.Context, email, name, userAgent, ip string) (string, error) {
	user, err := s.provision(ctx, email, name)
	if err != nil {
		return "", err
	}
	return s.startSession(ctx, user.ID, userAgent, ip)
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}

// provision returns the user for email, creating it with an empty password
// hash and a default profile when missing. SSO users cannot log in with a
// password.
func (s *AuthService) provision(ctx context.Context, email, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w: %w", domain.ErrPersistence, err)
	}
	if user != nil {
		return user, nil
	}

	if name == "" {
		name = email
	}
	user, err = s.users.Create(ctx, email, name, "", domain.RoleUser)
	if err != nil {
		// Lost a race against a concurrent first login.
		if user, err = s.users.GetByEmail(ctx, email); err != nil || user == nil {
			return nil, fmt.Errorf("provision user %s: %w", email, domain.ErrPersistence)
		}
		return user, nil
	}
	s.createDefaultProfile(ctx, user)
	log.Infof("provisioned sso user %d", user.ID)
	return user, nil
}

// createDefaultProfile stores the starting profile for a new user. A failure
// is only logged since the profile is created again on first access.
func (s *AuthService) createDefaultProfile(ctx context.Context, user *domain.User) {
	if _, err := s.profiles.UpsertProfile(ctx, domain.NewDefaultProfile(user.ID, user.Name)); err != nil {
		log.Warnf("create profile for user %d: %s", user.ID, err)
	}
}

func (s *AuthService) startSession(ctx context.Context, userID int64, userAgent, ip string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := s.now().Add(SessionTTL)
	if err := s.sessions.Create(ctx, userID, token, userAgent, ip, expiresAt); err != nil {
		return "", fmt.Errorf("create session: %w: %w", domain.ErrPersistence, err)
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
