package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"postpilot/internal/models"
)

type PlatformAccountRepository interface {
	List(ctx context.Context) ([]*models.PlatformAccount, error)
	Upsert(ctx context.Context, account *models.PlatformAccount) error
	Seed(ctx context.Context) error
}

type platformAccountRepository struct {
	db *sql.DB
}

func NewPlatformAccountRepository(db *sql.DB) PlatformAccountRepository {
	return &platformAccountRepository{db: db}
}

func (r *platformAccountRepository) List(ctx context.Context) ([]*models.PlatformAccount, error) {
	query := `SELECT platform, connected, label FROM platform_accounts ORDER BY platform ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.PlatformAccount
	for rows.Next() {
		var account models.PlatformAccount
		if err := rows.Scan(&account.Platform, &account.Connected, &account.Label); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, &account)
	}
	return accounts, rows.Err()
}

func (r *platformAccountRepository) Upsert(ctx context.Context, account *models.PlatformAccount) error {
	query := `
		INSERT INTO platform_accounts (platform, connected, label)
		VALUES ($1, $2, $3)
		ON CONFLICT (platform) DO UPDATE SET
			connected = EXCLUDED.connected,
			label = EXCLUDED.label
	`

	_, err := r.db.ExecContext(ctx, query, account.Platform, account.Connected, account.Label)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// Seed inserts the supported platforms in a disconnected state. Existing
// rows are left untouched, so reconnecting after a restart is safe.
func (r *platformAccountRepository) Seed(ctx context.Context) error {
	query := `
		INSERT INTO platform_accounts (platform, connected, label)
		VALUES ($1, false, '')
		ON CONFLICT (platform) DO NOTHING
	`

	for _, platform := range models.DefaultPlatforms {
		if _, err := r.db.ExecContext(ctx, query, platform); err != nil {
			slog.Info(err.Error())
			return err
		}
	}
	return nil
}
