package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domainProfile "github.com/estate-hub/estate-hub/internal/domain/profile"
	domainSession "github.com/estate-hub/estate-hub/internal/domain/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// Service handles registration and session authentication.
type Service struct {
	profileRepo domainProfile.Repository
	sessionRepo domainSession.Repository
	sessionTTL  time.Duration
	logger      zerolog.Logger
}

// NewService creates an auth service.
func NewService(profileRepo domainProfile.Repository, sessionRepo domainSession.Repository, sessionTTL time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		logger:      logger.With().Str("service", "auth").Logger(),
	}
}

// LoginResult contains login response.
type LoginResult struct {
	Profile *domainProfile.Profile
	Session *domainSession.Session
	Token   string
}

// Register creates a profile with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, username, password string, role domainProfile.Role) (*domainProfile.Profile, error) {
	username = domainProfile.NormalizeUsername(username)
	if err := domainProfile.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domainProfile.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := domainProfile.ValidateRole(role); err != nil {
		return nil, err
	}

	existing, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domainProfile.ErrUsernameTaken
	}

	hash, err := domainProfile.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &domainProfile.Profile{
		ProfileID:    uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Sales:        []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.profileRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("profile_id", p.ProfileID.String()).Str("role", string(role)).Msg("profile registered")
	return p, nil
}

// Login verifies credentials and creates a session.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = domainProfile.NormalizeUsername(username)
	p, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if p == nil || !domainProfile.VerifyPassword(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &domainSession.Session{
		SessionID:  uuid.New(),
		TokenHash:  hashToken(token),
		ProfileID:  p.ProfileID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.sessionTTL),
		LastSeenAt: &now,
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info().Str("profile_id", p.ProfileID.String()).Msg("profile login")
	return &LoginResult{Profile: p, Session: sess, Token: token}, nil
}

// Authenticate validates a session token and returns the profile behind it.
func (s *Service) Authenticate(ctx context.Context, token string) (*domainProfile.Profile, *domainSession.Session, error) {
	if token == "" {
		return nil, nil, fmt.Errorf("%w: missing token", ErrUnauthenticated)
	}
	sess, err := s.sessionRepo.GetByTokenHash(ctx, hashToken(token))
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, fmt.Errorf("%w: session not found", ErrUnauthenticated)
	}
	if sess.IsExpired(time.Now().UTC()) {
		_ = s.sessionRepo.DeleteByID(ctx, sess.SessionID)
		return nil, nil, fmt.Errorf("%w: session expired", ErrUnauthenticated)
	}
	p, err := s.profileRepo.GetByID(ctx, sess.ProfileID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, fmt.Errorf("%w: profile gone", ErrUnauthenticated)
	}
	_ = s.sessionRepo.UpdateLastSeen(ctx, sess.SessionID)
	return p, sess, nil
}

// Logout deletes a session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByTokenHash(ctx, hashToken(token))
}

// PurgeExpired removes sessions past their expiry.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	n, err := s.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug().Int("count", n).Msg("expired sessions purged")
	}
	return n, nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
