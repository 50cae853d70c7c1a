package bucket

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"creditref/internal/ratelimit/models"
	"creditref/pkg/requestcontext"
)

type bucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
	Reset(ctx context.Context, key string) error
}

// contractSuite runs the same sliding window checks against every store.
type contractSuite struct {
	suite.Suite
	store bucketStore
	start time.Time
}

func (s *contractSuite) at(offset time.Duration) context.Context {
	return requestcontext.WithTime(context.Background(), s.start.Add(offset))
}

func (s *contractSuite) SetupTest() {
	s.start = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
}

func (s *contractSuite) TestAllowsUpToLimit() {
	for i := range 3 {
		res, err := s.store.Allow(s.at(time.Duration(i)*time.Second), "client:a", 3, time.Minute)
		s.Require().NoError(err)
		s.True(res.Allowed)
		s.Equal(2-i, res.Remaining)
		s.Equal(3, res.Limit)
	}

	res, err := s.store.Allow(s.at(10*time.Second), "client:a", 3, time.Minute)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(0, res.Remaining)
	s.Equal(50, res.RetryAfter)
	s.True(res.ResetAt.Equal(s.start.Add(time.Minute)))
}

func (s *contractSuite) TestWindowSlides() {
	for range 2 {
		_, err := s.store.Allow(s.at(0), "client:b", 2, time.Minute)
		s.Require().NoError(err)
	}
	res, err := s.store.Allow(s.at(59*time.Second), "client:b", 2, time.Minute)
	s.Require().NoError(err)
	s.False(res.Allowed)

	res, err = s.store.Allow(s.at(time.Minute), "client:b", 2, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)
}

func (s *contractSuite) TestKeysAreIndependent() {
	_, err := s.store.Allow(s.at(0), "client:c", 1, time.Minute)
	s.Require().NoError(err)

	res, err := s.store.Allow(s.at(0), "client:d", 1, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)
}

func (s *contractSuite) TestReset() {
	_, err := s.store.Allow(s.at(0), "client:e", 1, time.Minute)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Reset(s.at(0), "client:e"))

	res, err := s.store.Allow(s.at(time.Second), "client:e", 1, time.Minute)
	s.Require().NoError(err)
	s.True(res.Allowed)
}
