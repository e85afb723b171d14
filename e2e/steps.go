package e2e

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// RegisterSteps registers all step definitions against the shared context.
// Each scenario starts with a fresh cookie jar.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		return c, tc.Reset()
	})

	s := &steps{tc: tc}

	ctx.Step(`^I sign up with email "([^"]*)" password "([^"]*)" and name "([^"]*)"$`, s.signup)
	ctx.Step(`^I log in with email "([^"]*)" and password "([^"]*)"$`, s.login)
	ctx.Step(`^I log out$`, s.logout)
	ctx.Step(`^I refresh the session$`, s.refresh)
	ctx.Step(`^I request my profile$`, s.profile)
	ctx.Step(`^I drop the "([^"]*)" cookie$`, s.dropCookie)

	ctx.Step(`^the response status should be (\d+)$`, s.assertStatus)
	ctx.Step(`^the response message should be "([^"]*)"$`, s.assertMessage)
	ctx.Step(`^the response email should be "([^"]*)"$`, s.assertEmail)
	ctx.Step(`^I should have an? "([^"]*)" cookie$`, s.assertCookie)
	ctx.Step(`^I should not have an? "([^"]*)" cookie$`, s.assertNoCookie)
}

type steps struct {
	tc *TestContext
}

func (s *steps) signup(email, password, name string) error {
	return s.tc.POST("/signup", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
}

func (s *steps) login(email, password string) error {
	return s.tc.POST("/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (s *steps) logout() error {
	return s.tc.POST("/logout", nil)
}

func (s *steps) refresh() error {
	return s.tc.POST("/refresh-token", nil)
}

func (s *steps) profile() error {
	return s.tc.GET("/profile")
}

func (s *steps) dropCookie(name string) error {
	return s.tc.DropCookie(name)
}

func (s *steps) assertStatus(expected int) error {
	if s.tc.LastStatus() != expected {
		return fmt.Errorf("expected status %d, got %d", expected, s.tc.LastStatus())
	}
	return nil
}

func (s *steps) assertMessage(expected string) error {
	got, err := s.tc.ResponseField("message")
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected message %q, got %q", expected, got)
	}
	return nil
}

func (s *steps) assertEmail(expected string) error {
	got, err := s.tc.ResponseField("email")
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected email %q, got %q", expected, got)
	}
	return nil
}

func (s *steps) assertCookie(name string) error {
	ok, err := s.tc.HasCookie(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected cookie %q to be set", name)
	}
	return nil
}

func (s *steps) assertNoCookie(name string) error {
	ok, err := s.tc.HasCookie(name)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("expected cookie %q to be absent", name)
	}
	return nil
}
