package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"creditref/pkg/platform/sentinel"
)

type RedisStoreSuite struct {
	contractSuite
	server *miniredis.Miniredis
	redis  *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupTest() {
	s.server = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.server.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })
	s.redis = NewRedis(client)
	s.store = s.redis
}

func (s *RedisStoreSuite) TestTTLIsSet() {
	draft := sampleDraft()
	s.Require().NoError(s.redis.Save(context.Background(), draft, 90*time.Minute))

	s.Equal(90*time.Minute, s.server.TTL(redisKey(draft.ID)))
	s.server.FastForward(91 * time.Minute)

	_, err := s.redis.FindByID(context.Background(), draft.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestCorruptPayload() {
	draft := sampleDraft()
	s.Require().NoError(s.server.Set(redisKey(draft.ID), "{not json"))

	_, err := s.redis.FindByID(context.Background(), draft.ID)
	s.ErrorContains(err, "decode draft")
}

func (s *RedisStoreSuite) TestBackendDown() {
	s.server.Close()
	_, err := s.redis.FindByID(context.Background(), sampleDraft().ID)
	s.Error(err)
	s.NotErrorIs(err, sentinel.ErrNotFound)
}
