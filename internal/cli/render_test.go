package cli

import (
	"errors"
	"strings"
	"testing"

	"orgsh/internal/parser"
	"orgsh/internal/session"
)

func TestRenderError_Suggestions(t *testing.T) {
	err := &parser.UnresolvedWordError{Suggestions: []parser.MatchSuggestion{
		{Token: "creat", Candidates: []string{"create"}},
		{Token: "zzz"},
	}}

	out := RenderError(err)
	if !strings.Contains(out, `"creat"`) || !strings.Contains(out, "did you mean: create?") {
		t.Errorf("suggestion not rendered: %q", out)
	}
	if !strings.Contains(out, `unknown word "zzz"`) {
		t.Errorf("candidate-less token not rendered: %q", out)
	}
	if strings.Contains(out, "error:") {
		t.Errorf("resolution failure rendered as generic error: %q", out)
	}
}

func TestRenderError_ContextViolation(t *testing.T) {
	err := &parser.ContextViolationError{
		Required: session.LevelSys,
		Actual:   session.LevelOrg,
		Exact:    true,
	}
	out := RenderError(err)
	if !strings.Contains(out, "use 'cd' to change context") {
		t.Errorf("violation hint missing: %q", out)
	}
}

func TestRenderError_Fallback(t *testing.T) {
	out := RenderError(errors.New("boom"))
	if out != "error: boom" {
		t.Errorf("fallback = %q", out)
	}
}
