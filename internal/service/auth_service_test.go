package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cfg "postpilot/configs"
	"postpilot/internal/models"
)

type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	cp := *session
	r.sessions[cp.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return session, nil
}

func (r *fakeSessionRepo) Remove(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for id, session := range r.sessions {
		if !session.ExpiresAt.After(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func authConfig() cfg.Config {
	return cfg.Config{
		AdminPassword: "hunter2",
		SecretKey:     "test-secret",
		SessionTTL:    time.Hour,
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s := NewAuthService(authConfig(), newFakeSessionRepo())

	_, err := s.Login(context.Background(), "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLoginNotConfigured(t *testing.T) {
	c := authConfig()
	c.AdminPassword = ""
	s := NewAuthService(c, newFakeSessionRepo())

	_, err := s.Login(context.Background(), "anything")
	require.ErrorIs(t, err, ErrAuthNotConfigured)
}

func TestLoginIssuesValidatableToken(t *testing.T) {
	sr := newFakeSessionRepo()
	s := NewAuthService(authConfig(), sr)

	token, err := s.Login(context.Background(), "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Len(t, sr.sessions, 1, "login must open a durable session")

	require.NoError(t, s.Validate(context.Background(), token))
}

func TestValidateRejectsGarbageToken(t *testing.T) {
	s := NewAuthService(authConfig(), newFakeSessionRepo())

	require.ErrorIs(t, s.Validate(context.Background(), "not.a.token"), ErrInvalidSession)
}

func TestValidateRejectsExpiredSession(t *testing.T) {
	sr := newFakeSessionRepo()
	s := NewAuthService(authConfig(), sr)

	token, err := s.Login(context.Background(), "hunter2")
	require.NoError(t, err)

	for _, session := range sr.sessions {
		session.ExpiresAt = time.Now().Add(-time.Minute)
	}

	require.ErrorIs(t, s.Validate(context.Background(), token), ErrInvalidSession)
}

func TestLogoutEndsSession(t *testing.T) {
	sr := newFakeSessionRepo()
	s := NewAuthService(authConfig(), sr)

	token, err := s.Login(context.Background(), "hunter2")
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background(), token))
	require.ErrorIs(t, s.Validate(context.Background(), token), ErrInvalidSession)
}
