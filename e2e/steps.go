package e2e

import (
	"github.com/cucumber/godog"

	"registrar/e2e/steps/auth"
	"registrar/e2e/steps/common"
	"registrar/e2e/steps/organization"
	"registrar/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background, generic requests and envelope assertions
	common.RegisterSteps(ctx, tc)

	// Accounts, sessions and token revocation
	auth.RegisterSteps(ctx, tc)

	// Organization registry
	organization.RegisterSteps(ctx, tc)

	// Login throttling
	ratelimit.RegisterSteps(ctx, tc)
}
