package ratelimit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
)

// maxAttempts bounds the loop in case the server has throttling disabled.
const maxAttempts = 1000

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	GetResponseHeader(name string) string
	SetForwardedIP(ip string)
	Unique(name string) string
}

// RegisterSteps registers login throttling step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I am attempting login for user "([^"]*)" from IP "([^"]*)"$`, steps.attemptingLoginFromIP)
	ctx.Step(`^I fail authentication until throttled$`, steps.failUntilThrottled)
	ctx.Step(`^I fail authentication with a new account each time until throttled$`, steps.rotateUntilThrottled)
	ctx.Step(`^every attempt before the limit should return (\d+)$`, steps.attemptsBeforeLimitReturn)
	ctx.Step(`^I fail authentication once$`, steps.failOnce)
}

type ratelimitSteps struct {
	tc       TestContext
	user     string
	email    string
	statuses []int
}

func (s *ratelimitSteps) attemptingLoginFromIP(ctx context.Context, user, ip string) error {
	s.user = user
	s.email = s.tc.Unique(user) + "@example.org"
	s.tc.SetForwardedIP(ip)
	return nil
}

func (s *ratelimitSteps) failOnce(ctx context.Context) error {
	if err := s.tc.POST("/api/auth/login", map[string]interface{}{
		"email":    s.email,
		"password": "wrong-password",
	}); err != nil {
		return err
	}
	s.statuses = append(s.statuses, s.tc.GetLastResponseStatus())
	return nil
}

// failUntilThrottled stops at the first 429 and checks the limit header of the
// previous responses accounts for every admitted attempt.
func (s *ratelimitSteps) failUntilThrottled(ctx context.Context) error {
	limit := 0
	for i := 0; i < maxAttempts; i++ {
		if err := s.failOnce(ctx); err != nil {
			return err
		}
		if s.tc.GetLastResponseStatus() == 429 {
			admitted := len(s.statuses) - 1
			if limit > 0 && admitted != limit {
				return fmt.Errorf("throttled after %d attempts, limit is %d", admitted, limit)
			}
			return nil
		}
		if v := s.tc.GetResponseHeader("X-RateLimit-Limit"); v != "" {
			limit, _ = strconv.Atoi(v)
		}
	}
	return fmt.Errorf("not throttled after %d attempts", maxAttempts)
}

// rotateUntilThrottled names a different account on every attempt.
func (s *ratelimitSteps) rotateUntilThrottled(ctx context.Context) error {
	for i := 0; i < maxAttempts; i++ {
		s.email = s.tc.Unique(s.user+strconv.Itoa(i)) + "@example.org"
		if err := s.failOnce(ctx); err != nil {
			return err
		}
		if s.tc.GetLastResponseStatus() == 429 {
			return nil
		}
	}
	return fmt.Errorf("not throttled after %d attempts", maxAttempts)
}

func (s *ratelimitSteps) attemptsBeforeLimitReturn(ctx context.Context, want int) error {
	if len(s.statuses) == 0 {
		return fmt.Errorf("no attempts made")
	}
	for i, got := range s.statuses[:len(s.statuses)-1] {
		if got != want {
			return fmt.Errorf("attempt %d returned %d", i+1, got)
		}
	}
	return nil
}
