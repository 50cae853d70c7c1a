package requests

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext is the part of the scenario context these steps need.
type TestContext interface {
	POST(path, body string) error
	GET(path string) error
	SetAuthenticated(authenticated bool)
	GetResponseField(path string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseHeader(name string) string
}

// RegisterSteps registers request building step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &requestSteps{tc: tc}

	ctx.Step(`^I am authenticated$`, steps.authenticated)
	ctx.Step(`^I am not authenticated$`, steps.notAuthenticated)
	ctx.Step(`^I build a request with:$`, steps.buildRequest)
	ctx.Step(`^I fetch the created draft$`, steps.fetchCreatedDraft)
	ctx.Step(`^I fetch the draft "([^"]*)"$`, steps.fetchDraft)
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the draft should list (\d+) rejections?$`, steps.rejectionCount)
	ctx.Step(`^the response header "([^"]*)" should start with "([^"]*)"$`, steps.headerHasPrefix)
}

type requestSteps struct {
	tc      TestContext
	draftID string
}

func (s *requestSteps) authenticated(context.Context) error {
	s.tc.SetAuthenticated(true)
	return nil
}

func (s *requestSteps) notAuthenticated(context.Context) error {
	s.tc.SetAuthenticated(false)
	return nil
}

func (s *requestSteps) buildRequest(_ context.Context, body *godog.DocString) error {
	if err := s.tc.POST("/v1/requests", body.Content); err != nil {
		return err
	}
	if id, err := s.tc.GetResponseField("id"); err == nil {
		s.draftID = fmt.Sprint(id)
	}
	return nil
}

func (s *requestSteps) fetchCreatedDraft(ctx context.Context) error {
	if s.draftID == "" {
		return fmt.Errorf("no draft was created in this scenario")
	}
	return s.fetchDraft(ctx, s.draftID)
}

func (s *requestSteps) fetchDraft(_ context.Context, id string) error {
	return s.tc.GET("/v1/requests/" + id)
}

func (s *requestSteps) statusShouldBe(_ context.Context, want int) error {
	if got := s.tc.GetLastResponseStatus(); got != want {
		return fmt.Errorf("expected status %d, got %d", want, got)
	}
	return nil
}

func (s *requestSteps) fieldShouldBe(_ context.Context, path, want string) error {
	v, err := s.tc.GetResponseField(path)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); !strings.EqualFold(got, want) {
		return fmt.Errorf("expected %s to be %q, got %q", path, want, got)
	}
	return nil
}

func (s *requestSteps) rejectionCount(_ context.Context, want int) error {
	v, err := s.tc.GetResponseField("rejections")
	if err != nil {
		return err
	}
	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("rejections is not a list: %v", v)
	}
	if len(list) != want {
		return fmt.Errorf("expected %d rejections, got %d", want, len(list))
	}
	return nil
}

func (s *requestSteps) headerHasPrefix(_ context.Context, name, prefix string) error {
	got := s.tc.GetLastResponseHeader(name)
	if !strings.HasPrefix(got, prefix) {
		return fmt.Errorf("expected header %s to start with %q, got %q", name, prefix, got)
	}
	return nil
}
