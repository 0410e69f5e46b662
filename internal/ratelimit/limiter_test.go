package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 5
	testWindow = time.Minute
)

type LimiterSuite struct {
	suite.Suite
	store   *InMemoryStore
	limiter *Limiter
	ctx     context.Context
	clock   time.Time
}

func TestLimiterSuite(t *testing.T) {
	suite.Run(t, new(LimiterSuite))
}

func (s *LimiterSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.clock = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.store.now = func() time.Time { return s.clock }
	s.limiter = NewLimiter(s.store, testLimit, testWindow)
	s.ctx = context.Background()
}

func (s *LimiterSuite) TestFirstRequestAllowed() {
	result, err := s.limiter.Check(s.ctx, "203.0.113.9")
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit, result.Limit)
	s.Equal(testLimit-1, result.Remaining)
	s.Equal(s.clock.Add(testWindow), result.ResetAt)
}

func (s *LimiterSuite) TestThresholdDeniesNextRequest() {
	for range testLimit {
		result, err := s.limiter.Check(s.ctx, "203.0.113.9")
		s.Require().NoError(err)
		s.Require().True(result.Allowed)
	}

	result, err := s.limiter.Check(s.ctx, "203.0.113.9")
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(0, result.Remaining)
	s.GreaterOrEqual(result.RetryAfter, 1)
}

func (s *LimiterSuite) TestWindowElapsesAndResets() {
	for range testLimit + 1 {
		_, err := s.limiter.Check(s.ctx, "203.0.113.9")
		s.Require().NoError(err)
	}

	s.clock = s.clock.Add(testWindow + time.Second)

	result, err := s.limiter.Check(s.ctx, "203.0.113.9")
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit-1, result.Remaining)
}

func (s *LimiterSuite) TestKeysAreIndependent() {
	for range testLimit + 1 {
		_, err := s.limiter.Check(s.ctx, "203.0.113.9")
		s.Require().NoError(err)
	}

	result, err := s.limiter.Check(s.ctx, "198.51.100.4")
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *LimiterSuite) TestDeniedCallsStillCountAgainstWindow() {
	for range testLimit + 3 {
		_, err := s.limiter.Check(s.ctx, "203.0.113.9")
		s.Require().NoError(err)
	}

	s.store.mu.Lock()
	count := s.store.records["203.0.113.9"].count
	s.store.mu.Unlock()
	s.Equal(testLimit+3, count)
}

func (s *LimiterSuite) TestConcurrentChecksNeverExceedLimit() {
	store := NewInMemoryStore()
	limiter := NewLimiter(store, 50, testWindow)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := limiter.Check(s.ctx, "shared-key")
			s.Require().NoError(err)
			if result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	s.Equal(50, allowed)
}
