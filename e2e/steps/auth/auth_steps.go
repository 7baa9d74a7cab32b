package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

const defaultPassword = "s3cret-pass"

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	ResponseString(field string) (string, error)
	SetAccessToken(token string)
	Unique(name string) string
}

// RegisterSteps registers account and session step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I register as "([^"]*)"$`, steps.registerAs)
	ctx.Step(`^I log in as "([^"]*)"$`, steps.logInAs)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.logInWithPassword)
	ctx.Step(`^I log out$`, steps.logOut)
	ctx.Step(`^I am not authenticated$`, steps.notAuthenticated)
	ctx.Step(`^my role should be "([^"]*)"$`, steps.roleShouldBe)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) email(username string) string {
	return s.tc.Unique(username) + "@example.org"
}

func (s *authSteps) registerAs(ctx context.Context, username string) error {
	err := s.tc.POST("/api/auth/register", map[string]interface{}{
		"username":  s.tc.Unique(username),
		"email":     s.email(username),
		"password":  defaultPassword,
		"firstName": username,
		"lastName":  "E2E",
	})
	if err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("register %s: status %d: %s", username, status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *authSteps) logInAs(ctx context.Context, username string) error {
	if err := s.logInWithPassword(ctx, username, defaultPassword); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("login %s: status %d: %s", username, status, s.tc.GetLastResponseBody())
	}
	token, err := s.tc.ResponseString("data.token")
	if err != nil {
		return err
	}
	s.tc.SetAccessToken(token)
	return nil
}

func (s *authSteps) logInWithPassword(ctx context.Context, username, password string) error {
	return s.tc.POST("/api/auth/login", map[string]interface{}{
		"email":    s.email(username),
		"password": password,
	})
}

// logOut keeps the token so later steps can show it was revoked.
func (s *authSteps) logOut(ctx context.Context) error {
	if err := s.tc.POST("/api/auth/logout", nil); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("logout: status %d: %s", status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *authSteps) notAuthenticated(ctx context.Context) error {
	s.tc.SetAccessToken("")
	return nil
}

func (s *authSteps) roleShouldBe(ctx context.Context, want string) error {
	got, err := s.tc.ResponseString("data.user.role.roleCode")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected role %q, got %q", want, got)
	}
	return nil
}
