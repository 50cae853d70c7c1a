//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"creditref/pkg/platform/sentinel"
	"creditref/pkg/requestcontext"
	"creditref/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	contractSuite
	pg       *containers.PostgresContainer
	postgres *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.postgres = NewPostgres(s.pg.Pool)
	s.Require().NoError(s.postgres.Migrate(context.Background()))
	// Migrate is idempotent.
	s.Require().NoError(s.postgres.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.Pool.Exec(context.Background(), `TRUNCATE request_drafts`)
	s.Require().NoError(err)
	s.store = s.postgres
}

func (s *PostgresStoreSuite) TestExpiryAndCleanup() {
	start := time.Now().UTC().Truncate(time.Second)
	ctx := requestcontext.WithTime(context.Background(), start)
	draft := sampleDraft()
	s.Require().NoError(s.postgres.Save(ctx, draft, time.Hour))

	_, err := s.postgres.FindByID(requestcontext.WithTime(ctx, start.Add(2*time.Hour)), draft.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.postgres.RemoveExpiredAt(ctx, start.Add(2*time.Hour)))
	var count int
	s.Require().NoError(s.pg.Pool.QueryRow(ctx, `SELECT count(*) FROM request_drafts`).Scan(&count))
	s.Zero(count)
}
