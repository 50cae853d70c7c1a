package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"creditref/pkg/platform/sentinel"
	"creditref/pkg/requestcontext"
)

type InMemoryStoreSuite struct {
	contractSuite
	memory *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.memory = NewInMemoryStore()
	s.store = s.memory
}

func (s *InMemoryStoreSuite) TestExpiry() {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), start)
	draft := sampleDraft()
	s.Require().NoError(s.memory.Save(ctx, draft, time.Hour))

	_, err := s.memory.FindByID(requestcontext.WithTime(ctx, start.Add(59*time.Minute)), draft.ID)
	s.NoError(err)
	_, err = s.memory.FindByID(requestcontext.WithTime(ctx, start.Add(time.Hour)), draft.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	// An expired ID can be reused.
	s.NoError(s.memory.Save(requestcontext.WithTime(ctx, start.Add(2*time.Hour)), draft, time.Hour))
}

func (s *InMemoryStoreSuite) TestRemoveExpiredAt() {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), start)
	s.Require().NoError(s.memory.Save(ctx, sampleDraft(), time.Minute))
	s.Require().NoError(s.memory.Save(ctx, sampleDraft(), time.Hour))

	s.Require().NoError(s.memory.RemoveExpiredAt(ctx, start.Add(30*time.Minute)))
	s.Equal(1, s.memory.Len())
}
