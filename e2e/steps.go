package e2e

import (
	"github.com/cucumber/godog"

	"creditref/e2e/steps/requests"
)

// RegisterSteps registers all step definitions from modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	requests.RegisterSteps(ctx, tc)
}
