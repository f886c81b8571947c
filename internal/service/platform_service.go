package service

import (
	"context"
	"fmt"
	"strings"

	"postpilot/internal/models"
	"postpilot/internal/repository"
)

type PlatformService interface {
	List(ctx context.Context) ([]*models.PlatformAccount, error)
	Upsert(ctx context.Context, platform string, connected bool, label string) error
}

type platformService struct {
	ar repository.PlatformAccountRepository
}

func NewPlatformService(ar repository.PlatformAccountRepository) PlatformService {
	return &platformService{ar: ar}
}

func (s *platformService) List(ctx context.Context) ([]*models.PlatformAccount, error) {
	accounts, err := s.ar.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing platform accounts: %w", err)
	}
	return accounts, nil
}

func (s *platformService) Upsert(ctx context.Context, platform string, connected bool, label string) error {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		return invalid("platform is required")
	}

	account := models.PlatformAccount{
		Platform:  platform,
		Connected: connected,
		Label:     label,
	}
	if err := s.ar.Upsert(ctx, &account); err != nil {
		return fmt.Errorf("error updating platform account: %w", err)
	}
	return nil
}
