//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"propworth/internal/ratelimit"
	"propworth/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimit.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = ratelimit.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestIncrCountsWithinWindow() {
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		count, resetAt, err := s.store.Incr(ctx, "client-a", time.Minute)
		s.Require().NoError(err)
		s.Equal(i, count)
		s.WithinDuration(time.Now().Add(time.Minute), resetAt, 5*time.Second)
	}
}

func (s *RedisStoreSuite) TestWindowExpiryResetsCount() {
	ctx := context.Background()

	count, _, err := s.store.Incr(ctx, "client-b", time.Second)
	s.Require().NoError(err)
	s.Equal(1, count)

	time.Sleep(1500 * time.Millisecond)

	count, _, err = s.store.Incr(ctx, "client-b", time.Second)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *RedisStoreSuite) TestLimiterOverRedisDeniesAboveThreshold() {
	ctx := context.Background()
	limiter := ratelimit.NewLimiter(s.store, 3, time.Minute)

	var last *ratelimit.Result
	for range 4 {
		var err error
		last, err = limiter.Check(ctx, "client-c")
		s.Require().NoError(err)
	}
	s.False(last.Allowed)
	s.GreaterOrEqual(last.RetryAfter, 1)
}
