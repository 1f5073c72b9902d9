package parser

import (
	"fmt"
	"strings"

	"orgsh/internal/session"
)

// MatchSuggestion is produced when a token fails exact matching:
// candidates are word IDs within the edit-distance threshold, ordered by
// increasing distance then lexicographically.
type MatchSuggestion struct {
	Token      string
	Candidates []string
}

// UnresolvedWordError reports every token on the line that matched no
// vocabulary entry within the threshold. Suggestions are collected over
// the whole line before failing so the caller can render all of them in
// one pass.
type UnresolvedWordError struct {
	Suggestions []MatchSuggestion
}

func (e *UnresolvedWordError) Error() string {
	parts := make([]string, 0, len(e.Suggestions))
	for _, s := range e.Suggestions {
		if len(s.Candidates) == 0 {
			parts = append(parts, fmt.Sprintf("%q", s.Token))
			continue
		}
		parts = append(parts, fmt.Sprintf("%q (did you mean %s?)", s.Token, strings.Join(s.Candidates, ", ")))
	}
	return "unresolved words: " + strings.Join(parts, "; ")
}

// MissingActionError: no action word present on the line.
type MissingActionError struct{}

func (e *MissingActionError) Error() string {
	return "no action word found (try create, add, update, show, delete, cd)"
}

// MissingEntityError: the action requires an entity word and none was given.
type MissingEntityError struct {
	Action string
}

func (e *MissingEntityError) Error() string {
	return fmt.Sprintf("action %q requires an entity word (company, brand, metadata, ...)", e.Action)
}

// MissingRequiredAttributeError: a fixed-shape command is missing one of
// its declared required attributes.
type MissingRequiredAttributeError struct {
	Action    string
	Entity    string
	Attribute string
}

func (e *MissingRequiredAttributeError) Error() string {
	return fmt.Sprintf("%s %s requires attribute %q", e.Action, e.Entity, e.Attribute)
}

// UnsupportedAttributeError: the attribute word exists but is not declared
// on the resolved entity.
type UnsupportedAttributeError struct {
	Attribute string
	Entity    string
}

func (e *UnsupportedAttributeError) Error() string {
	return fmt.Sprintf("attribute %q is not valid for entity %q", e.Attribute, e.Entity)
}

// UnexpectedTokenError: a bare token could not be classified as target,
// attribute, or positional value.
type UnexpectedTokenError struct {
	Token  string
	Reason string
}

func (e *UnexpectedTokenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unexpected token %q: %s", e.Token, e.Reason)
	}
	return fmt.Sprintf("unexpected token %q", e.Token)
}

// ContextViolationError: the command requires a context level the caller
// is not currently in.
type ContextViolationError struct {
	Required session.Level
	Actual   session.Level
	Exact    bool
}

func (e *ContextViolationError) Error() string {
	if e.Exact {
		return fmt.Sprintf("command requires %q context, currently at %q", e.Required, e.Actual)
	}
	return fmt.Sprintf("command requires at least %q context, currently at %q", e.Required, e.Actual)
}

// InvalidAttributeError: malformed key=value token.
type InvalidAttributeError struct {
	Token  string
	Reason string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid attribute %q: %s", e.Token, e.Reason)
}
