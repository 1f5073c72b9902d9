package vocabulary

import "orgsh/internal/session"

// DefaultRegistry builds the stock vocabulary: actions, entities,
// attributes, modifiers, the shortcut table, and the command specs. The
// returned registry is ready for the parser; callers extend it with
// further Register* calls before the first parse if they need to.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()

	words := []*Word{
		// Actions
		{
			ID:          "create",
			Category:    CategoryAction,
			Description: "Create a new entity",
			Aliases:     []string{"init", "new"},

			RequiresEntity: true,
		},
		{
			ID:          "add",
			Category:    CategoryAction,
			Description: "Add or set attribute values on an entity",
			Aliases:     []string{"attach"},

			RequiresEntity: true,
		},
		{
			ID:          "update",
			Category:    CategoryAction,
			Description: "Update attribute values on an existing entity",
			Aliases:     []string{"modify", "edit"},

			RequiresEntity: true,
		},
		{
			ID:          "show",
			Category:    CategoryAction,
			Description: "Show an entity or selected attributes",
			Aliases:     []string{"display", "view"},

			RequiresEntity: true,
		},
		{
			ID:          "delete",
			Category:    CategoryAction,
			Description: "Delete an entity or selected attributes",
			Aliases:     []string{"remove", "drop"},

			RequiresEntity: true,
			Destructive:    true,
			Warning:        "this action permanently deletes data",
		},
		{
			ID:          "cd",
			Category:    CategoryAction,
			Description: "Navigate between sys, org, and app contexts",
			Aliases:     []string{"navigate", "goto"},

			RequiresEntity: false,
		},

		// Entities
		{
			ID:          "company",
			Category:    CategoryEntity,
			Description: "A business organization managed in the shell",
			Aliases:     []string{"business", "firm"},
			Attributes:  []string{"name", "entity", "type", "currency", "unit", "closing", "incorporation"},
		},
		{
			ID:          "metadata",
			Category:    CategoryEntity,
			Description: "Key-value metadata extending company information",
			Aliases:     []string{"meta", "info"},
			Attributes:  []string{"key", "value"},
			Dynamic:     true,
		},
		{
			ID:          "brand",
			Category:    CategoryEntity,
			Description: "Company brand identity",
			Aliases:     []string{"branding", "identity"},
			Attributes:  []string{"name", "vision", "mission", "personality", "promise"},
		},
		{
			ID:          "offering",
			Category:    CategoryEntity,
			Description: "Company product or service offerings",
			Aliases:     []string{"portfolio"},
			Attributes:  []string{"name", "key", "value"},
		},
		{
			ID:          "target",
			Category:    CategoryEntity,
			Description: "Target audience or market segments",
			Aliases:     []string{"audience", "segment"},
			Attributes:  []string{"name", "key", "value"},
		},
		{
			ID:          "values",
			Category:    CategoryEntity,
			Description: "Company core values",
			Aliases:     []string{"principles"},
			Attributes:  []string{"name", "key", "value"},
		},

		// Attributes
		{
			ID:          "name",
			Category:    CategoryAttribute,
			Description: "Name or title of the entity",
			Aliases:     []string{"title"},
			Entities:    []string{"company", "brand", "offering", "target", "values"},
		},
		{
			ID:          "key",
			Category:    CategoryAttribute,
			Description: "Key identifier or category",
			Aliases:     []string{"category"},
			Entities:    []string{"metadata", "offering", "target", "values"},
		},
		{
			ID:          "value",
			Category:    CategoryAttribute,
			Description: "Value or description content",
			Aliases:     []string{"content"},
			Entities:    []string{"metadata", "offering", "target", "values"},
		},
		{
			ID:          "entity",
			Category:    CategoryAttribute,
			Description: "Legal entity type (SA, LLC, INC, ...)",
			Aliases:     []string{"legal_entity"},
			Entities:    []string{"company"},
		},
		{
			ID:          "type",
			Category:    CategoryAttribute,
			Description: "Organization type (company, fund, foundation)",
			Aliases:     []string{"org_type"},
			Entities:    []string{"company"},
		},
		{
			ID:          "currency",
			Category:    CategoryAttribute,
			Description: "Currency for financial data (EUR, USD, ...)",
			Aliases:     []string{"curr"},
			Entities:    []string{"company"},
		},
		{
			ID:          "unit",
			Category:    CategoryAttribute,
			Description: "Unit for financial data (THOUSANDS, MILLIONS)",
			Aliases:     []string{"financial_unit"},
			Entities:    []string{"company"},
		},
		{
			ID:          "closing",
			Category:    CategoryAttribute,
			Description: "Fiscal year end month (1-12)",
			Aliases:     []string{"fiscal_month"},
			Entities:    []string{"company"},
		},
		{
			ID:          "incorporation",
			Category:    CategoryAttribute,
			Description: "Date of incorporation",
			Aliases:     []string{"founded"},
			Entities:    []string{"company"},
		},
		{
			ID:          "vision",
			Category:    CategoryAttribute,
			Description: "Company vision statement",
			Aliases:     []string{"vision_statement"},
			Entities:    []string{"brand"},
		},
		{
			ID:          "mission",
			Category:    CategoryAttribute,
			Description: "Company mission statement",
			Aliases:     []string{"mission_statement"},
			Entities:    []string{"brand"},
		},
		{
			ID:          "personality",
			Category:    CategoryAttribute,
			Description: "Brand personality description",
			Aliases:     []string{"brand_personality"},
			Entities:    []string{"brand"},
		},
		{
			ID:          "promise",
			Category:    CategoryAttribute,
			Description: "Brand promise to customers",
			Aliases:     []string{"brand_promise"},
			Entities:    []string{"brand"},
		},

		// Modifiers
		{
			ID:            "holding",
			Category:      CategoryModifier,
			Description:   "Mark a company as a holding structure",
			AppliesTo:     []string{"company"},
			ExclusiveWith: []string{"operating"},
		},
		{
			ID:            "operating",
			Category:      CategoryModifier,
			Description:   "Mark a company as an operating structure",
			AppliesTo:     []string{"company"},
			ExclusiveWith: []string{"holding"},
		},
	}

	for _, w := range words {
		if err := r.Register(w); err != nil {
			return nil, err
		}
	}

	// Shortcut table: first letter is the action, second the entity.
	expansions := map[byte]string{
		'c': "create", 's': "show", 'u': "update", 'a': "add", 'd': "delete",
	}
	entities := map[byte]string{
		'c': "company", 'b': "brand", 'm': "metadata", 'o': "offering", 't': "target", 'v': "values",
	}
	for actionByte, action := range expansions {
		for entityByte, entity := range entities {
			shortcut := &Shortcut{
				Trigger:   string([]byte{actionByte, entityByte}),
				Expansion: []string{action, entity},
			}
			if err := r.RegisterShortcut(shortcut); err != nil {
				return nil, err
			}
		}
	}

	specs := []*CommandSpec{
		// Company lifecycle happens at system level; creating or deleting a
		// company from inside one is rejected outright.
		{Action: "create", Entity: "company", Level: session.LevelSys, ExactLevel: true},
		{Action: "delete", Entity: "company", Level: session.LevelSys, ExactLevel: true},
		{Action: "show", Entity: "company", Level: session.LevelSys},
		{Action: "update", Entity: "company", Level: session.LevelOrg},

		// Navigation is entity-agnostic and valid everywhere.
		{Action: "cd", Level: session.LevelSys},
	}
	// The dynamic entities share one spec shape per action, gated at org
	// level: you must be inside a company to touch its sub-entities.
	for _, entity := range []string{"metadata", "brand", "offering", "target", "values"} {
		for _, action := range []string{"add", "update", "show", "delete"} {
			specs = append(specs, &CommandSpec{Action: action, Entity: entity, Level: session.LevelOrg})
		}
	}

	for _, spec := range specs {
		if err := r.RegisterCommand(spec); err != nil {
			return nil, err
		}
	}

	return r, nil
}
