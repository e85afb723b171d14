package e2e

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs the gherkin scenarios against a live server. Set
// SHOPGATE_E2E_URL to the base URL of a running instance; the suite is
// skipped otherwise so it never breaks a plain unit test run.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("SHOPGATE_E2E_URL")
	if baseURL == "" {
		t.Skip("SHOPGATE_E2E_URL not set")
	}

	tc, err := NewTestContext(baseURL)
	if err != nil {
		t.Fatalf("failed to build test context: %v", err)
	}

	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("e2e scenarios failed")
	}
}
