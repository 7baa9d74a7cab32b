package organization

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	PUT(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	DELETE(path string) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	GetResponseField(field string) (interface{}, error)
	ResponseString(field string) (string, error)
	Unique(name string) string
	Save(key, value string)
	Recall(key string) (string, error)
}

// RegisterSteps registers organization registry step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &organizationSteps{tc: tc}

	ctx.Step(`^I create organization "([^"]*)" named "([^"]*)"$`, steps.createOrganization)
	ctx.Step(`^I save the organization id$`, steps.saveOrganizationID)
	ctx.Step(`^I set the organization status to "([^"]*)"$`, steps.setStatus)
	ctx.Step(`^I fetch the organization$`, steps.fetch)
	ctx.Step(`^I delete the organization$`, steps.delete)
	ctx.Step(`^the organization should be named "([^"]*)" with status "([^"]*)"$`, steps.shouldBeNamedWithStatus)
}

type organizationSteps struct {
	tc     TestContext
	typeID interface{}
}

// organizationType picks the first seeded organization type.
func (s *organizationSteps) organizationType() (interface{}, error) {
	if s.typeID != nil {
		return s.typeID, nil
	}
	if err := s.tc.GET("/api/organizations/types", nil); err != nil {
		return nil, err
	}
	id, err := s.tc.GetResponseField("data.0.id")
	if err != nil {
		return nil, fmt.Errorf("no organization types seeded: %w", err)
	}
	s.typeID = id
	return id, nil
}

func (s *organizationSteps) createOrganization(ctx context.Context, number, name string) error {
	typeID, err := s.organizationType()
	if err != nil {
		return err
	}
	return s.tc.POST("/api/organizations/", map[string]interface{}{
		"registrationNumber": s.tc.Unique(number),
		"organizationName":   name,
		"organizationTypeId": typeID,
		"registrationDate":   "2024-01-15",
		"status":             "active",
	})
}

func (s *organizationSteps) saveOrganizationID(ctx context.Context) error {
	id, err := s.tc.ResponseString("data.id")
	if err != nil {
		return err
	}
	s.tc.Save("organizationId", id)
	return nil
}

func (s *organizationSteps) path() (string, error) {
	id, err := s.tc.Recall("organizationId")
	if err != nil {
		return "", err
	}
	return "/api/organizations/" + id, nil
}

func (s *organizationSteps) setStatus(ctx context.Context, status string) error {
	p, err := s.path()
	if err != nil {
		return err
	}
	return s.tc.PUT(p, map[string]interface{}{"status": status})
}

func (s *organizationSteps) fetch(ctx context.Context) error {
	p, err := s.path()
	if err != nil {
		return err
	}
	return s.tc.GET(p, nil)
}

func (s *organizationSteps) delete(ctx context.Context) error {
	p, err := s.path()
	if err != nil {
		return err
	}
	return s.tc.DELETE(p)
}

func (s *organizationSteps) shouldBeNamedWithStatus(ctx context.Context, name, status string) error {
	if code := s.tc.GetLastResponseStatus(); code != 200 {
		return fmt.Errorf("expected 200, got %d: %s", code, s.tc.GetLastResponseBody())
	}
	gotName, err := s.tc.ResponseString("data.organizationName")
	if err != nil {
		return err
	}
	gotStatus, err := s.tc.ResponseString("data.status")
	if err != nil {
		return err
	}
	if gotName != name || gotStatus != status {
		return fmt.Errorf("expected %q/%q, got %q/%q", name, status, gotName, gotStatus)
	}
	return nil
}
