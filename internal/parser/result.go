package parser

import (
	"orgsh/internal/session"
	"orgsh/internal/vocabulary"
)

// Result is the structured outcome of parsing one line. It is built only
// on full success; resolution is all-or-nothing and no partial result is
// ever returned alongside an error.
type Result struct {
	Input      string            // raw input line, before shortcut expansion
	Action     *vocabulary.Word  // category action, always set
	Entity     *vocabulary.Word  // category entity, nil for entity-agnostic actions
	Modifiers  []string          // modifier word IDs in input order
	Target     string            // free-text identifier, e.g. a company name
	Attributes map[string]string // attribute word ID -> raw value ("" for bare references)

	// ContextLevelRequired is the level the command spec declared for the
	// action/entity pair; LevelSys when no spec gates it.
	ContextLevelRequired session.Level

	// IsDynamic is true when the entity's attribute set is open-ended and
	// validated only against declared membership.
	IsDynamic bool

	// Warning carries the action's destructive-operation warning, if any.
	Warning string
}

// ActionID returns the action word ID.
func (r *Result) ActionID() string {
	return r.Action.ID
}

// EntityID returns the entity word ID, or "" when no entity was matched.
func (r *Result) EntityID() string {
	if r.Entity == nil {
		return ""
	}
	return r.Entity.ID
}

// BareAttributes returns the attribute IDs referenced without a value, in
// the entity's declaration order. Used by show/delete handlers that
// operate on named attributes ("show brand vision").
func (r *Result) BareAttributes() []string {
	if r.Entity == nil {
		return nil
	}
	var out []string
	for _, attr := range r.Entity.Attributes {
		if v, ok := r.Attributes[attr]; ok && v == "" {
			out = append(out, attr)
		}
	}
	return out
}
