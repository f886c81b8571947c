package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	cfg "postpilot/configs"
	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/pkg/utils"
)

type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
	Validate(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
}

type authService struct {
	config cfg.Config
	sr     repository.SessionRepository
}

func NewAuthService(config cfg.Config, sr repository.SessionRepository) AuthService {
	return &authService{
		config: config,
		sr:     sr,
	}
}

// Login checks the operator password and opens a durable session. The
// returned token carries only the session id; everything else lives in
// the sessions table so restarts keep operators logged in.
func (s *authService) Login(ctx context.Context, password string) (string, error) {
	if s.config.AdminPassword == "" || s.config.SecretKey == "" {
		return "", ErrAuthNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) != 1 {
		return "", ErrInvalidPassword
	}

	sessionID, err := utils.GenerateRandomKey(24)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	now := time.Now()
	session := models.Session{
		ID:        sessionID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.SessionTTL),
	}
	if err := s.sr.Create(ctx, &session); err != nil {
		return "", err
	}

	return utils.GenerateToken(s.config.SecretKey, sessionID, s.config.SessionTTL)
}

func (s *authService) Validate(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(s.config.SecretKey, token)
	if err != nil {
		return ErrInvalidSession
	}

	session, err := s.sr.GetByID(ctx, claims.SessionID)
	if err != nil {
		return err
	}
	if session == nil || time.Now().After(session.ExpiresAt) {
		return ErrInvalidSession
	}
	return nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(s.config.SecretKey, token)
	if err != nil {
		return ErrInvalidSession
	}
	return s.sr.Remove(ctx, claims.SessionID)
}
