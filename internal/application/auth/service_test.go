package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainProfile "github.com/estate-hub/estate-hub/internal/domain/profile"
	profileMocks "github.com/estate-hub/estate-hub/internal/domain/profile/mocks"
	domainSession "github.com/estate-hub/estate-hub/internal/domain/session"
	sessionMocks "github.com/estate-hub/estate-hub/internal/domain/session/mocks"
)

func newTestService(t *testing.T) (*Service, *profileMocks.MockRepository, *sessionMocks.MockRepository) {
	ctrl := gomock.NewController(t)
	profiles := profileMocks.NewMockRepository(ctrl)
	sessions := sessionMocks.NewMockRepository(ctrl)
	return NewService(profiles, sessions, time.Hour, zerolog.Nop()), profiles, sessions
}

func TestService_Register(t *testing.T) {
	t.Run("creates profile with hashed password", func(t *testing.T) {
		svc, profiles, _ := newTestService(t)

		profiles.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
		profiles.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domainProfile.Profile) error {
				assert.NotEqual(t, "password123", p.PasswordHash)
				assert.True(t, domainProfile.VerifyPassword(p.PasswordHash, "password123"))
				return nil
			})

		p, err := svc.Register(context.Background(), "  Alice ", "password123", domainProfile.RoleTenant)

		require.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
		assert.Equal(t, domainProfile.RoleTenant, p.Role)
		assert.Empty(t, p.Sales)
	})

	t.Run("username taken", func(t *testing.T) {
		svc, profiles, _ := newTestService(t)

		profiles.EXPECT().GetByUsername(gomock.Any(), "alice").Return(&domainProfile.Profile{Username: "alice"}, nil)

		_, err := svc.Register(context.Background(), "alice", "password123", domainProfile.RoleBuyer)

		assert.ErrorIs(t, err, domainProfile.ErrUsernameTaken)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Register(context.Background(), "alice", "password123", domainProfile.Role("ADMIN"))

		assert.ErrorIs(t, err, domainProfile.ErrInvalid)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Register(context.Background(), "alice", "short", domainProfile.RoleBuyer)

		assert.ErrorIs(t, err, domainProfile.ErrInvalid)
	})
}

func TestService_Login(t *testing.T) {
	hash, err := domainProfile.HashPassword("password123")
	require.NoError(t, err)
	p := &domainProfile.Profile{ProfileID: uuid.New(), Username: "alice", PasswordHash: hash, Role: domainProfile.RoleSeller}

	t.Run("creates session", func(t *testing.T) {
		svc, profiles, sessions := newTestService(t)

		profiles.EXPECT().GetByUsername(gomock.Any(), "alice").Return(p, nil)
		sessions.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *domainSession.Session) error {
				assert.Equal(t, p.ProfileID, s.ProfileID)
				assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, time.Minute)
				return nil
			})

		res, err := svc.Login(context.Background(), "alice", "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, hashToken(res.Token), res.Session.TokenHash)
		assert.Equal(t, p, res.Profile)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, profiles, _ := newTestService(t)

		profiles.EXPECT().GetByUsername(gomock.Any(), "alice").Return(p, nil)

		_, err := svc.Login(context.Background(), "alice", "nope-nope")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, profiles, _ := newTestService(t)

		profiles.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		_, err := svc.Login(context.Background(), "ghost", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_Authenticate(t *testing.T) {
	p := &domainProfile.Profile{ProfileID: uuid.New(), Username: "alice"}

	t.Run("valid session", func(t *testing.T) {
		svc, profiles, sessions := newTestService(t)
		sess := &domainSession.Session{SessionID: uuid.New(), ProfileID: p.ProfileID, ExpiresAt: time.Now().Add(time.Hour)}

		sessions.EXPECT().GetByTokenHash(gomock.Any(), hashToken("tok")).Return(sess, nil)
		profiles.EXPECT().GetByID(gomock.Any(), p.ProfileID).Return(p, nil)
		sessions.EXPECT().UpdateLastSeen(gomock.Any(), sess.SessionID).Return(nil)

		got, gotSess, err := svc.Authenticate(context.Background(), "tok")

		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.Equal(t, sess, gotSess)
	})

	t.Run("expired session is deleted", func(t *testing.T) {
		svc, _, sessions := newTestService(t)
		sess := &domainSession.Session{SessionID: uuid.New(), ProfileID: p.ProfileID, ExpiresAt: time.Now().Add(-time.Minute)}

		sessions.EXPECT().GetByTokenHash(gomock.Any(), hashToken("tok")).Return(sess, nil)
		sessions.EXPECT().DeleteByID(gomock.Any(), sess.SessionID).Return(nil)

		_, _, err := svc.Authenticate(context.Background(), "tok")

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("missing token", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.Authenticate(context.Background(), "")

		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestService_Logout(t *testing.T) {
	svc, _, sessions := newTestService(t)

	sessions.EXPECT().DeleteByTokenHash(gomock.Any(), hashToken("tok")).Return(nil)

	require.NoError(t, svc.Logout(context.Background(), "tok"))
	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestService_PurgeExpired(t *testing.T) {
	t.Run("returns deleted count", func(t *testing.T) {
		svc, _, sessions := newTestService(t)
		sessions.EXPECT().DeleteExpired(gomock.Any()).Return(3, nil)

		n, err := svc.PurgeExpired(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("propagates repository error", func(t *testing.T) {
		svc, _, sessions := newTestService(t)
		sessions.EXPECT().DeleteExpired(gomock.Any()).Return(0, errors.New("db down"))

		n, err := svc.PurgeExpired(context.Background())

		assert.EqualError(t, err, "db down")
		assert.Zero(t, n)
	})
}
