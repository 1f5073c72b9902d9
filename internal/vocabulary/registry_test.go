package vocabulary

import (
	"errors"
	"testing"

	"orgsh/internal/session"
)

func TestRegister_DuplicateIDRejected(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Word{ID: "show", Category: CategoryAction}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	err := r.Register(&Word{ID: "show", Category: CategoryEntity})
	var dup *DuplicateWordError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateWordError, got %v", err)
	}
	if dup.ExistingID != "show" {
		t.Errorf("ExistingID = %q", dup.ExistingID)
	}
}

func TestRegister_AliasCollisionRejected(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Word{ID: "create", Category: CategoryAction, Aliases: []string{"new"}}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	err := r.Register(&Word{ID: "news", Category: CategoryEntity, Aliases: []string{"new"}})
	var dup *DuplicateWordError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateWordError, got %v", err)
	}
}

func TestRegisterShortcut_TriggerCollisionRejected(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Word{ID: "cd", Category: CategoryAction}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err := r.RegisterShortcut(&Shortcut{Trigger: "cd", Expansion: []string{"create", "dashboard"}})
	var dup *DuplicateWordError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateWordError, got %v", err)
	}
}

func TestLookup_CaseInsensitiveAliases(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Word{ID: "company", Category: CategoryEntity, Aliases: []string{"firm"}}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, token := range []string{"company", "COMPANY", "firm", "Firm"} {
		w := r.Lookup(token)
		if w == nil || w.ID != "company" {
			t.Errorf("Lookup(%q) = %v", token, w)
		}
	}
	if w := r.Lookup("factory"); w != nil {
		t.Errorf("Lookup(factory) = %v, want nil", w)
	}
}

func TestCommand_EntityAgnosticFallback(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Word{ID: "cd", Category: CategoryAction}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := r.RegisterCommand(&CommandSpec{Action: "cd", Level: session.LevelSys}); err != nil {
		t.Fatalf("register command failed: %v", err)
	}

	spec := r.Command("cd", "company")
	if spec == nil {
		t.Fatal("entity-agnostic fallback not used")
	}
	if spec.Level != session.LevelSys {
		t.Errorf("level = %v", spec.Level)
	}
}

func TestRegisterCommand_UnknownWordsRejected(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterCommand(&CommandSpec{Action: "launch", Entity: "rocket"}); err == nil {
		t.Fatal("command spec with unknown action accepted")
	}
}

func TestCandidates_FilteredAndSorted(t *testing.T) {
	r := NewRegistry()
	for _, w := range []*Word{
		{ID: "show", Category: CategoryAction},
		{ID: "brand", Category: CategoryEntity},
		{ID: "add", Category: CategoryAction},
	} {
		if err := r.Register(w); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	}

	actions := r.Candidates(CategoryAction)
	if len(actions) != 2 || actions[0] != "add" || actions[1] != "show" {
		t.Errorf("actions = %v", actions)
	}
	all := r.Candidates()
	if len(all) != 3 {
		t.Errorf("all = %v", all)
	}
}

func TestDefaultRegistry_Builds(t *testing.T) {
	r, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry failed: %v", err)
	}

	// The shortcut table covers every action/entity initial pair.
	if n := len(r.Shortcuts()); n != 30 {
		t.Errorf("expected 30 shortcuts, got %d", n)
	}

	cc := r.Shortcut("cc")
	if cc == nil || cc.Expansion[0] != "create" || cc.Expansion[1] != "company" {
		t.Errorf("cc shortcut = %v", cc)
	}

	// Every declared entity attribute must itself be a registered
	// attribute word that lists the entity back.
	for _, w := range r.Words() {
		if !w.IsEntity() {
			continue
		}
		for _, attr := range w.Attributes {
			aw := r.Lookup(attr)
			if aw == nil || !aw.IsAttribute() {
				t.Errorf("entity %s references unknown attribute %q", w.ID, attr)
				continue
			}
			if !aw.BelongsTo(w.ID) {
				t.Errorf("attribute %s does not list entity %s", attr, w.ID)
			}
		}
	}

	spec := r.Command("create", "company")
	if spec == nil || spec.Level != session.LevelSys || !spec.ExactLevel {
		t.Errorf("create company spec = %+v", spec)
	}
}
