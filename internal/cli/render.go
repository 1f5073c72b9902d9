package cli

import (
	"errors"
	"fmt"
	"strings"

	"orgsh/internal/parser"
	"orgsh/internal/store"
)

// RenderError turns parse and dispatch failures into the messages the
// shell prints. Resolution errors get multi-line rendering with
// suggestions; everything else falls back to the error string.
func RenderError(err error) string {
	var unresolved *parser.UnresolvedWordError
	if errors.As(err, &unresolved) {
		var b strings.Builder
		for i, s := range unresolved.Suggestions {
			if i > 0 {
				b.WriteString("\n")
			}
			if len(s.Candidates) == 0 {
				fmt.Fprintf(&b, "unknown word %q", s.Token)
				continue
			}
			fmt.Fprintf(&b, "unknown word %q, did you mean: %s?", s.Token, strings.Join(s.Candidates, ", "))
		}
		return b.String()
	}

	var violation *parser.ContextViolationError
	if errors.As(err, &violation) {
		return fmt.Sprintf("%v\nuse 'cd' to change context", violation)
	}

	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrAlreadyExists) {
		return err.Error()
	}

	return "error: " + err.Error()
}
