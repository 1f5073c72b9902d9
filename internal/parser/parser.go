// Package parser implements the command-resolution core: shortcut
// expansion, tokenization, vocabulary matching (exact and approximate),
// key=value and positional value extraction, and resolution of the parsed
// tokens into a single validated Result.
//
// The parser is synchronous and stateless between calls; it reads the
// vocabulary registry and the caller's execution context and never
// mutates either. Dispatch of the resulting command is the caller's
// responsibility.
package parser

import (
	"orgsh/internal/session"
	"orgsh/internal/vocabulary"
)

// defaultMaxDistance is the edit-distance threshold for approximate
// word matching.
const defaultMaxDistance = 2

// Parser parses raw input lines against a vocabulary registry.
type Parser struct {
	registry    *vocabulary.Registry
	maxDistance int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDistance overrides the edit-distance threshold for approximate
// matching.
func WithMaxDistance(d int) Option {
	return func(p *Parser) { p.maxDistance = d }
}

// New creates a parser over the given registry.
func New(registry *vocabulary.Registry, opts ...Option) *Parser {
	p := &Parser{registry: registry, maxDistance: defaultMaxDistance}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// parseState accumulates the walk over one token sequence.
type parseState struct {
	action      *vocabulary.Word
	entity      *vocabulary.Word
	modifiers   []string
	target      string
	targetSet   bool
	attributes  map[string]string
	positionals []string
	suggestions []MatchSuggestion
}

// Parse runs the full pipeline on one raw line: expand, tokenize, match,
// extract, resolve. It returns either a complete Result or exactly one of
// the structured error kinds; errors are data for the caller to render,
// never rendered here.
func (p *Parser) Parse(line string, ctx session.Context) (*Result, error) {
	tokens := Tokenize(p.Expand(line))
	if len(tokens) == 0 {
		return nil, &MissingActionError{}
	}

	st := &parseState{attributes: make(map[string]string)}
	for _, tok := range tokens {
		var err error
		if tok.Kind == TokenPair {
			err = p.consumePair(st, tok)
		} else {
			err = p.consumeBare(st, tok)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(st.suggestions) > 0 {
		return nil, &UnresolvedWordError{Suggestions: st.suggestions}
	}

	return p.resolve(line, st, ctx)
}

// consumePair handles a key=value token: the key must resolve to an
// attribute word (exactly or by unique correction); the value is stored
// verbatim with no coercion.
func (p *Parser) consumePair(st *parseState, tok Token) error {
	if tok.Key == "" {
		return &InvalidAttributeError{Token: tok.Text, Reason: "empty attribute key"}
	}

	word := p.registry.Lookup(tok.Key)
	if word == nil {
		corrected, suggestion := p.fuzzyMatch(tok.Key, vocabulary.CategoryAttribute)
		if corrected == nil {
			st.suggestions = append(st.suggestions, *suggestion)
			return nil
		}
		word = corrected
	}
	if !word.IsAttribute() {
		return &UnexpectedTokenError{Token: tok.Text, Reason: word.ID + " is not an attribute"}
	}

	st.attributes[word.ID] = tok.Value
	return nil
}

// consumeBare handles a plain token: exact word match first, then the
// target rule, then approximate matching restricted to the categories
// still expected at this position, then positional values for dynamic
// entities.
func (p *Parser) consumeBare(st *parseState, tok Token) error {
	if word := p.registry.Lookup(tok.Text); word != nil {
		return st.acceptWord(word, tok)
	}

	// The first unrecognized bare token after the entity word is the
	// target identifier. Entity-agnostic actions (cd) take their target
	// directly after the action.
	if !st.targetSet && st.targetEligible() {
		st.target = tok.Text
		st.targetSet = true
		return nil
	}

	word, suggestion := p.fuzzyMatch(tok.Text, st.expectedCategories()...)
	if word != nil {
		return st.acceptWord(word, tok)
	}

	// Past the target position: dynamic entities accept trailing bare
	// tokens as positional attribute values.
	if st.entity != nil && st.entity.Dynamic {
		st.positionals = append(st.positionals, tok.Text)
		return nil
	}
	if len(suggestion.Candidates) == 0 && st.targetSet {
		return &UnexpectedTokenError{Token: tok.Text, Reason: "target already set and no matching attribute"}
	}
	st.suggestions = append(st.suggestions, *suggestion)
	return nil
}

func (st *parseState) targetEligible() bool {
	if st.entity != nil {
		return true
	}
	return st.action != nil && !st.action.RequiresEntity
}

// expectedCategories narrows approximate matching to what can still
// legally appear: the action comes first, then the entity, then
// attributes and modifiers in any order.
func (st *parseState) expectedCategories() []vocabulary.Category {
	if st.action == nil {
		return []vocabulary.Category{vocabulary.CategoryAction}
	}
	if st.entity == nil {
		return []vocabulary.Category{vocabulary.CategoryEntity, vocabulary.CategoryAttribute, vocabulary.CategoryModifier}
	}
	return []vocabulary.Category{vocabulary.CategoryAttribute, vocabulary.CategoryModifier}
}

// acceptWord records an exactly or approximately matched word.
func (st *parseState) acceptWord(word *vocabulary.Word, tok Token) error {
	switch word.Category {
	case vocabulary.CategoryAction:
		if st.action != nil {
			return &UnexpectedTokenError{Token: tok.Text, Reason: "action already given as " + st.action.ID}
		}
		st.action = word
	case vocabulary.CategoryEntity:
		if st.entity != nil {
			return &UnexpectedTokenError{Token: tok.Text, Reason: "entity already given as " + st.entity.ID}
		}
		st.entity = word
	case vocabulary.CategoryAttribute:
		// Bare attribute reference: "show brand vision", "delete brand
		// vision". Stored with an empty value.
		if _, ok := st.attributes[word.ID]; !ok {
			st.attributes[word.ID] = ""
		}
	case vocabulary.CategoryModifier:
		for _, seen := range st.modifiers {
			for _, excl := range word.ExclusiveWith {
				if seen == excl {
					return &UnexpectedTokenError{Token: tok.Text, Reason: "modifier conflicts with " + seen}
				}
			}
		}
		st.modifiers = append(st.modifiers, word.ID)
	}
	return nil
}

// resolve validates the accumulated state against the vocabulary and the
// execution context and builds the immutable Result.
func (p *Parser) resolve(input string, st *parseState, ctx session.Context) (*Result, error) {
	if st.action == nil {
		return nil, &MissingActionError{}
	}
	if st.action.RequiresEntity && st.entity == nil {
		return nil, &MissingEntityError{Action: st.action.ID}
	}

	if st.entity != nil {
		if err := p.assignPositionals(st); err != nil {
			return nil, err
		}
		// Membership is checked for dynamic entities too: dynamic relaxes
		// the required/optional split, not which attribute words belong.
		for attr := range st.attributes {
			word := p.registry.Lookup(attr)
			if word == nil || !word.BelongsTo(st.entity.ID) {
				return nil, &UnsupportedAttributeError{Attribute: attr, Entity: st.entity.ID}
			}
		}
		for _, mod := range st.modifiers {
			word := p.registry.Lookup(mod)
			applies := false
			for _, e := range word.AppliesTo {
				if e == st.entity.ID {
					applies = true
					break
				}
			}
			if !applies {
				return nil, &UnexpectedTokenError{Token: mod, Reason: "modifier does not apply to " + st.entity.ID}
			}
		}
	}

	required := session.LevelSys
	spec := p.registry.Command(st.action.ID, entityID(st))
	if spec != nil {
		required = spec.Level
		violated := ctx.Level < spec.Level
		if spec.ExactLevel {
			violated = ctx.Level != spec.Level
		}
		if violated {
			return nil, &ContextViolationError{Required: spec.Level, Actual: ctx.Level, Exact: spec.ExactLevel}
		}
	}

	if st.entity != nil && !st.entity.Dynamic && spec != nil {
		for _, attr := range spec.Required {
			if _, ok := st.attributes[attr]; !ok {
				return nil, &MissingRequiredAttributeError{Action: st.action.ID, Entity: st.entity.ID, Attribute: attr}
			}
		}
	}

	return &Result{
		Input:                input,
		Action:               st.action,
		Entity:               st.entity,
		Modifiers:            st.modifiers,
		Target:               st.target,
		Attributes:           st.attributes,
		ContextLevelRequired: required,
		IsDynamic:            st.entity != nil && st.entity.Dynamic,
		Warning:              st.action.Warning,
	}, nil
}

// assignPositionals maps trailing bare values onto the entity's remaining
// attributes in declaration order.
func (p *Parser) assignPositionals(st *parseState) error {
	if len(st.positionals) == 0 {
		return nil
	}
	var open []string
	for _, attr := range st.entity.Attributes {
		if _, ok := st.attributes[attr]; !ok {
			open = append(open, attr)
		}
	}
	if len(st.positionals) > len(open) {
		return &UnexpectedTokenError{
			Token:  st.positionals[len(open)],
			Reason: "no remaining attribute to assign it to",
		}
	}
	for i, v := range st.positionals {
		st.attributes[open[i]] = v
	}
	return nil
}

func entityID(st *parseState) string {
	if st.entity == nil {
		return ""
	}
	return st.entity.ID
}
