package store

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

type InMemorySuite struct {
	suite.Suite
	now   time.Time
	store *InMemory
	ctx   context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.now = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	s.store = NewInMemory(WithClock(func() time.Time { return s.now }))
	s.ctx = context.Background()
}

func (s *InMemorySuite) allow(key string) (allowed bool, remaining int) {
	r, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
	s.Require().NoError(err)
	return r.Allowed, r.Remaining
}

func (s *InMemorySuite) TestAdmitsUpToLimit() {
	for i := range testLimit {
		allowed, remaining := s.allow("k")
		s.True(allowed)
		s.Equal(testLimit-i-1, remaining)
	}
	r, err := s.store.Allow(s.ctx, "k", testLimit, testWindow)
	s.Require().NoError(err)
	s.False(r.Allowed)
	s.Equal(0, r.Remaining)
	s.Equal(testLimit, r.Limit)
	s.Equal(60, r.RetryAfter)
}

func (s *InMemorySuite) TestWindowSlides() {
	s.allow("k")
	s.now = s.now.Add(30 * time.Second)
	for range testLimit - 1 {
		s.allow("k")
	}
	allowed, _ := s.allow("k")
	s.False(allowed)

	// The first request leaves the window; the four later ones remain.
	s.now = s.now.Add(31 * time.Second)
	allowed, remaining := s.allow("k")
	s.True(allowed)
	s.Equal(0, remaining)

	r, err := s.store.Allow(s.ctx, "k", testLimit, testWindow)
	s.Require().NoError(err)
	s.False(r.Allowed)
	s.Equal(29, r.RetryAfter)
}

func (s *InMemorySuite) TestDeniedRequestsDoNotExtendWindow() {
	for range testLimit {
		s.allow("k")
	}
	for range 10 {
		allowed, _ := s.allow("k")
		s.False(allowed)
	}
	s.now = s.now.Add(testWindow + time.Second)
	allowed, remaining := s.allow("k")
	s.True(allowed)
	s.Equal(testLimit-1, remaining)
}

func (s *InMemorySuite) TestKeysAreIndependent() {
	for range testLimit {
		s.allow("a")
	}
	allowed, _ := s.allow("b")
	s.True(allowed)
}

func (s *InMemorySuite) TestConcurrentCallersNeverExceedLimit() {
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := s.store.Allow(s.ctx, "shared", testLimit, testWindow)
			if err == nil && r.Allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(testLimit, admitted)
}
