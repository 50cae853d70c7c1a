package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creditref/internal/draft/models"
	"creditref/pkg/platform/sentinel"
	"creditref/pkg/requestcontext"
)

const schema = `
CREATE TABLE IF NOT EXISTS request_drafts (
	id         UUID PRIMARY KEY,
	body       JSONB       NOT NULL,
	created_by TEXT        NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS request_drafts_expires_at_idx ON request_drafts (expires_at);
`

// PostgresStore persists drafts in PostgreSQL as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the drafts table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate drafts: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, draft *models.Draft, ttl time.Duration) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	now := requestcontext.Now(ctx)
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO request_drafts (id, body, created_by, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		draft.ID, body, draft.CreatedBy, draft.CreatedAt, now.Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("draft %s: %w", draft.ID, sentinel.ErrConflict)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM request_drafts WHERE id = $1 AND expires_at > $2`,
		id, requestcontext.Now(ctx),
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("draft %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find draft: %w", err)
	}
	return decode(body)
}

// RemoveExpiredAt removes all drafts that have expired as of the given time.
// RunCleanup calls it with wall-clock time.
func (s *PostgresStore) RemoveExpiredAt(ctx context.Context, now time.Time) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM request_drafts WHERE expires_at <= $1`, now); err != nil {
		return fmt.Errorf("cleanup drafts: %w", err)
	}
	return nil
}
