package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"

	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/internal/transfer"
)

type PostService interface {
	Create(ctx context.Context, pc *transfer.PostCreation, file *multipart.FileHeader) (*models.ScheduledPost, error)
	List(ctx context.Context) ([]*models.ScheduledPost, error)
	Update(ctx context.Context, id int64, pu *transfer.PostUpdate) (*models.ScheduledPost, error)
	Remove(ctx context.Context, id int64) error
	Outcomes(ctx context.Context, id int64) ([]*models.PublishOutcome, error)
}

type postService struct {
	pr repository.PostRepository
	ar repository.PlatformAccountRepository
	po repository.PublishOutcomeRepository
	ms MediaService
}

func NewPostService(
	pr repository.PostRepository,
	ar repository.PlatformAccountRepository,
	po repository.PublishOutcomeRepository,
	ms MediaService) PostService {
	return &postService{
		pr: pr,
		ar: ar,
		po: po,
		ms: ms,
	}
}

func (s *postService) Create(ctx context.Context, pc *transfer.PostCreation, file *multipart.FileHeader) (*models.ScheduledPost, error) {
	if pc == nil {
		return nil, invalid("post creation data is missing")
	}
	if file == nil {
		return nil, invalid("media file is required")
	}
	if pc.ScheduledTime == "" {
		return nil, invalid("scheduled_at is required")
	}

	scheduledAt, err := parseScheduledTime(pc.ScheduledTime)
	if err != nil {
		slog.Info(err.Error())
		return nil, invalid("invalid scheduled_at datetime")
	}

	var requested []string
	if pc.Platforms != "" {
		if err := json.Unmarshal([]byte(pc.Platforms), &requested); err != nil {
			slog.Info(err.Error())
			return nil, invalid("platforms must be a JSON array of platform identifiers")
		}
	}

	platforms, err := s.checkPlatforms(ctx, requested)
	if err != nil {
		return nil, err
	}

	stored, err := s.ms.Store(ctx, file)
	if err != nil {
		return nil, err
	}

	post := models.ScheduledPost{
		MediaRef:    stored.Ref,
		MediaKind:   stored.Kind,
		MimeType:    stored.MimeType,
		Caption:     pc.Caption,
		Platforms:   platforms,
		ScheduledAt: scheduledAt,
		Status:      models.PostStatusPending,
	}

	id, err := s.pr.Create(ctx, &post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return s.pr.GetByID(ctx, id)
}

func (s *postService) List(ctx context.Context) ([]*models.ScheduledPost, error) {
	posts, err := s.pr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

// Update is a field-level merge: only the fields present in pu change, and
// each one is validated on its own. Omitting platforms keeps the current
// set; setting caption to "" clears it.
func (s *postService) Update(ctx context.Context, id int64, pu *transfer.PostUpdate) (*models.ScheduledPost, error) {
	if pu == nil {
		return nil, invalid("update payload is missing")
	}

	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status != models.PostStatusPending {
		return nil, ErrPostNotEditable
	}

	caption := post.Caption
	if pu.Caption != nil {
		caption = *pu.Caption
	}

	scheduledAt := post.ScheduledAt
	if pu.ScheduledTime != nil {
		scheduledAt, err = parseScheduledTime(*pu.ScheduledTime)
		if err != nil {
			slog.Info(err.Error())
			return nil, invalid("invalid scheduled_at datetime")
		}
	}

	platforms := post.Platforms
	if pu.Platforms != nil {
		platforms, err = s.checkPlatforms(ctx, *pu.Platforms)
		if err != nil {
			return nil, err
		}
	}

	n, err := s.pr.UpdatePending(ctx, id, caption, scheduledAt, platforms)
	if err != nil {
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	if n == 0 {
		// Resolved or deleted between the read above and the update.
		return nil, ErrPostNotEditable
	}

	return s.pr.GetByID(ctx, id)
}

func (s *postService) Remove(ctx context.Context, id int64) error {
	n, err := s.pr.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}
	if n == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (s *postService) Outcomes(ctx context.Context, id int64) ([]*models.PublishOutcome, error) {
	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return s.po.ListByPostID(ctx, id)
}

// checkPlatforms normalizes the requested set and validates membership
// against the registry, so adding a platform is a registry change only.
func (s *postService) checkPlatforms(ctx context.Context, requested []string) ([]string, error) {
	platforms := normalizePlatforms(requested)
	if len(platforms) == 0 {
		return nil, invalid("at least one platform is required")
	}

	accounts, err := s.ar.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading platform registry: %w", err)
	}

	known := make(map[string]struct{}, len(accounts))
	for _, account := range accounts {
		known[account.Platform] = struct{}{}
	}

	for _, p := range platforms {
		if _, ok := known[p]; !ok {
			return nil, invalid(fmt.Sprintf("unknown platform %q", p))
		}
	}

	return platforms, nil
}
