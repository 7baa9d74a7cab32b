package common

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Request(method, path string, body interface{}, headers map[string]string) error
	GET(path string, headers map[string]string) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	GetResponseHeader(name string) string
	ResponseString(field string) (string, error)
	Recall(key string) (string, error)
	SetForwardedIP(ip string)
}

// RegisterSteps registers background, request and envelope assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the registrar is running$`, steps.registrarIsRunning)
	ctx.Step(`^I connect from IP "([^"]*)"$`, steps.connectFrom)
	ctx.Step(`^I (GET|DELETE) "([^"]*)"$`, steps.sendWithoutBody)
	ctx.Step(`^I (POST|PUT) to "([^"]*)" with body:$`, steps.sendWithBody)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the request should succeed$`, steps.requestShouldSucceed)
	ctx.Step(`^the response error should be "([^"]*)"$`, steps.errorShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response should have header "([^"]*)"$`, steps.shouldHaveHeader)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) registrarIsRunning(ctx context.Context) error {
	if err := s.tc.GET("/health", nil); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() != 200 {
		return fmt.Errorf("registrar is not healthy: %d %s", s.tc.GetLastResponseStatus(), s.tc.GetLastResponseBody())
	}
	return nil
}

// expand replaces {name} with a value saved by an earlier step.
func (s *commonSteps) expand(path string) (string, error) {
	for {
		start := strings.Index(path, "{")
		if start < 0 {
			return path, nil
		}
		end := strings.Index(path[start:], "}")
		if end < 0 {
			return path, nil
		}
		v, err := s.tc.Recall(path[start+1 : start+end])
		if err != nil {
			return "", err
		}
		path = path[:start] + v + path[start+end+1:]
	}
}

func (s *commonSteps) sendWithoutBody(ctx context.Context, method, path string) error {
	p, err := s.expand(path)
	if err != nil {
		return err
	}
	return s.tc.Request(method, p, nil, nil)
}

func (s *commonSteps) sendWithBody(ctx context.Context, method, path string, doc *godog.DocString) error {
	p, err := s.expand(path)
	if err != nil {
		return err
	}
	var body interface{}
	if err := json.Unmarshal([]byte(doc.Content), &body); err != nil {
		return fmt.Errorf("step body is not JSON: %w", err)
	}
	return s.tc.Request(method, p, body, nil)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, want int) error {
	if got := s.tc.GetLastResponseStatus(); got != want {
		return fmt.Errorf("expected status %d, got %d: %s", want, got, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) requestShouldSucceed(ctx context.Context) error {
	if status := s.tc.GetLastResponseStatus(); status < 200 || status > 299 {
		return fmt.Errorf("expected success, got %d: %s", status, s.tc.GetLastResponseBody())
	}
	return s.fieldShouldBe(ctx, "success", "true")
}

func (s *commonSteps) errorShouldBe(ctx context.Context, want string) error {
	return s.fieldShouldBe(ctx, "error", want)
}

func (s *commonSteps) fieldShouldBe(ctx context.Context, field, want string) error {
	got, err := s.tc.ResponseString(field)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %s to be %q, got %q", field, want, got)
	}
	return nil
}

func (s *commonSteps) shouldHaveHeader(ctx context.Context, name string) error {
	if s.tc.GetResponseHeader(name) == "" {
		return fmt.Errorf("response has no %s header", name)
	}
	return nil
}

// connectFrom gives the scenario its own client address and so its own
// auth rate limit budget.
func (s *commonSteps) connectFrom(ctx context.Context, ip string) error {
	s.tc.SetForwardedIP(ip)
	return nil
}
