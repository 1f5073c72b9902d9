package vocabulary

import (
	"fmt"
	"sort"
	"strings"
)

// DuplicateWordError is returned at registry-load time when a word ID,
// alias, or shortcut trigger collides with a surface form already present.
// It is fatal to startup, never to an individual parse.
type DuplicateWordError struct {
	Surface    string
	ExistingID string
}

func (e *DuplicateWordError) Error() string {
	return fmt.Sprintf("duplicate vocabulary surface %q (already registered for %q)", e.Surface, e.ExistingID)
}

// Registry is the read-mostly lookup structure for all declared words,
// shortcuts, and command specs. Build it once at startup and pass it by
// reference into the parsing pipeline; it holds no behavior beyond lookup.
type Registry struct {
	words     map[string]*Word  // id -> word
	surfaces  map[string]string // lowercase id/alias -> id
	shortcuts map[string]*Shortcut
	commands  map[string]*CommandSpec // "action entity" -> spec
	order     []string                // ids in registration order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		words:     make(map[string]*Word),
		surfaces:  make(map[string]string),
		shortcuts: make(map[string]*Shortcut),
		commands:  make(map[string]*CommandSpec),
	}
}

// Register adds a word. IDs are unique across all categories combined and
// aliases must not collide with any other word's ID or alias.
func (r *Registry) Register(w *Word) error {
	id := strings.ToLower(w.ID)
	if existing, ok := r.surfaces[id]; ok {
		return &DuplicateWordError{Surface: w.ID, ExistingID: existing}
	}
	if _, ok := r.shortcuts[id]; ok {
		return &DuplicateWordError{Surface: w.ID, ExistingID: "shortcut " + id}
	}
	for _, alias := range w.Aliases {
		if existing, ok := r.surfaces[strings.ToLower(alias)]; ok {
			return &DuplicateWordError{Surface: alias, ExistingID: existing}
		}
	}

	r.words[id] = w
	r.surfaces[id] = id
	for _, alias := range w.Aliases {
		r.surfaces[strings.ToLower(alias)] = id
	}
	r.order = append(r.order, id)
	return nil
}

// RegisterShortcut adds a shortcut expansion. Triggers must not collide
// with any word ID or alias.
func (r *Registry) RegisterShortcut(s *Shortcut) error {
	trigger := strings.ToLower(s.Trigger)
	if existing, ok := r.surfaces[trigger]; ok {
		return &DuplicateWordError{Surface: s.Trigger, ExistingID: existing}
	}
	if _, ok := r.shortcuts[trigger]; ok {
		return &DuplicateWordError{Surface: s.Trigger, ExistingID: "shortcut " + trigger}
	}
	r.shortcuts[trigger] = s
	return nil
}

// RegisterCommand declares the spec for an (action, entity) pair. Both
// words must already be registered.
func (r *Registry) RegisterCommand(spec *CommandSpec) error {
	if w := r.Lookup(spec.Action); w == nil || !w.IsAction() {
		return fmt.Errorf("command spec references unknown action %q", spec.Action)
	}
	if spec.Entity != "" {
		if w := r.Lookup(spec.Entity); w == nil || !w.IsEntity() {
			return fmt.Errorf("command spec references unknown entity %q", spec.Entity)
		}
	}
	for _, attr := range spec.Required {
		if w := r.Lookup(attr); w == nil || !w.IsAttribute() {
			return fmt.Errorf("command spec references unknown attribute %q", attr)
		}
	}
	r.commands[commandKey(spec.Action, spec.Entity)] = spec
	return nil
}

func commandKey(action, entity string) string {
	return action + " " + entity
}

// Lookup resolves a token to a word by ID or alias, case-insensitively.
// Returns nil when the token matches nothing.
func (r *Registry) Lookup(token string) *Word {
	id, ok := r.surfaces[strings.ToLower(token)]
	if !ok {
		return nil
	}
	return r.words[id]
}

// Shortcut returns the shortcut registered for the trigger token, or nil.
func (r *Registry) Shortcut(token string) *Shortcut {
	return r.shortcuts[strings.ToLower(token)]
}

// Command returns the spec for an (action, entity) pair. When no
// entity-specific spec exists it falls back to the action's
// entity-agnostic spec, if any.
func (r *Registry) Command(action, entity string) *CommandSpec {
	if spec, ok := r.commands[commandKey(action, entity)]; ok {
		return spec
	}
	if spec, ok := r.commands[commandKey(action, "")]; ok {
		return spec
	}
	return nil
}

// Candidates returns the IDs of all registered words, optionally filtered
// by category, sorted lexicographically. Used by the word matcher for
// approximate matching; the slice is freshly allocated per call so callers
// may iterate it repeatedly.
func (r *Registry) Candidates(categories ...Category) []string {
	ids := make([]string, 0, len(r.order))
	for _, id := range r.order {
		w := r.words[id]
		if len(categories) == 0 {
			ids = append(ids, id)
			continue
		}
		for _, c := range categories {
			if w.Category == c {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// Words returns all registered words in registration order.
func (r *Registry) Words() []*Word {
	out := make([]*Word, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.words[id])
	}
	return out
}

// Shortcuts returns all registered shortcuts sorted by trigger.
func (r *Registry) Shortcuts() []*Shortcut {
	triggers := make([]string, 0, len(r.shortcuts))
	for t := range r.shortcuts {
		triggers = append(triggers, t)
	}
	sort.Strings(triggers)
	out := make([]*Shortcut, 0, len(triggers))
	for _, t := range triggers {
		out = append(out, r.shortcuts[t])
	}
	return out
}
