package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"postpilot/internal/models"
)

type PublishOutcomeRepository interface {
	Create(ctx context.Context, outcome *models.PublishOutcome) (int64, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.PublishOutcome, error)
}

type publishOutcomeRepository struct {
	db *sql.DB
}

func NewPublishOutcomeRepository(db *sql.DB) PublishOutcomeRepository {
	return &publishOutcomeRepository{db: db}
}

func (r *publishOutcomeRepository) Create(ctx context.Context, outcome *models.PublishOutcome) (int64, error) {
	query := `
		INSERT INTO publish_outcomes (post_id, platform, success, error_message)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, outcome.PostID, outcome.Platform,
		outcome.Success, outcome.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *publishOutcomeRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.PublishOutcome, error) {
	query := `
		SELECT id, post_id, platform, success, error_message, created_at
		FROM publish_outcomes
		WHERE post_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var outcomes []*models.PublishOutcome
	for rows.Next() {
		var outcome models.PublishOutcome
		err := rows.Scan(&outcome.ID, &outcome.PostID, &outcome.Platform,
			&outcome.Success, &outcome.ErrorMessage, &outcome.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		outcomes = append(outcomes, &outcome)
	}
	return outcomes, rows.Err()
}
