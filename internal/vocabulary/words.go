// Package vocabulary holds the declared command vocabulary: words, shortcut
// expansions, and command specs. The registry is built once at startup and
// treated as read-only by the parsing pipeline; there is no ambient global
// registry and no registration by import side effect.
package vocabulary

import "orgsh/internal/session"

// Category discriminates the word variants. The parser dispatches on it.
type Category string

const (
	CategoryAction    Category = "action"
	CategoryEntity    Category = "entity"
	CategoryAttribute Category = "attribute"
	CategoryModifier  Category = "modifier"
)

// Word is a single vocabulary entry. Exactly one of the category payloads
// is meaningful, selected by Category.
type Word struct {
	ID          string
	Category    Category
	Description string
	Aliases     []string

	// Action payload
	RequiresEntity bool
	Destructive    bool
	Warning        string

	// Entity payload
	Attributes []string // attribute word IDs in declaration order
	Dynamic    bool     // open-ended attribute set, membership-checked only

	// Attribute payload
	Entities []string // entity word IDs this attribute belongs to

	// Modifier payload
	AppliesTo     []string
	ExclusiveWith []string
}

// IsAction reports whether the word is an action verb.
func (w *Word) IsAction() bool { return w.Category == CategoryAction }

// IsEntity reports whether the word is an entity noun.
func (w *Word) IsEntity() bool { return w.Category == CategoryEntity }

// IsAttribute reports whether the word is an attribute.
func (w *Word) IsAttribute() bool { return w.Category == CategoryAttribute }

// IsModifier reports whether the word is a modifier.
func (w *Word) IsModifier() bool { return w.Category == CategoryModifier }

// BelongsTo reports whether an attribute word is declared on the given
// entity. Non-attribute words never belong to an entity.
func (w *Word) BelongsTo(entityID string) bool {
	if !w.IsAttribute() {
		return false
	}
	for _, e := range w.Entities {
		if e == entityID {
			return true
		}
	}
	return false
}

// HasAttribute reports whether an entity word declares the given attribute.
func (w *Word) HasAttribute(attrID string) bool {
	if !w.IsEntity() {
		return false
	}
	for _, a := range w.Attributes {
		if a == attrID {
			return true
		}
	}
	return false
}

// Shortcut maps a single leading trigger token to a full word sequence,
// e.g. "cc" -> ["create", "company"]. Expansion is applied at most once
// per line and never recursively.
type Shortcut struct {
	Trigger   string
	Expansion []string
}

// CommandSpec declares the requirements for one (action, entity) pair:
// the minimum context level, whether the level must match exactly, and
// which attributes are required. Entity is empty for entity-agnostic
// actions such as cd.
type CommandSpec struct {
	Action     string
	Entity     string
	Level      session.Level
	ExactLevel bool
	Required   []string
}
