package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemory_OrganizationLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	orgID, err := m.CreateOrganization(ctx, Organization{Name: "ACME", Currency: "EUR"})
	if err != nil {
		t.Fatalf("CreateOrganization returned error: %v", err)
	}
	if orgID == "" {
		t.Fatal("expected generated org id")
	}

	if _, err := m.CreateOrganization(ctx, Organization{Name: "ACME"}); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	if err := m.UpdateOrganization(ctx, "ACME", map[string]string{"currency": "USD", "name": "ACME Corp"}); err != nil {
		t.Fatalf("UpdateOrganization returned error: %v", err)
	}
	org, err := m.GetOrganizationByName(ctx, "ACME Corp")
	if err != nil {
		t.Fatalf("rename lost the organization: %v", err)
	}
	if org.Currency != "USD" {
		t.Errorf("currency = %q", org.Currency)
	}
	if _, err := m.GetOrganizationByName(ctx, "ACME"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old name still resolves: %v", err)
	}

	if err := m.DeleteOrganization(ctx, "ACME Corp"); err != nil {
		t.Fatalf("DeleteOrganization returned error: %v", err)
	}
	if exists, _ := m.OrganizationExists(ctx, "ACME Corp"); exists {
		t.Error("organization still exists after delete")
	}
}

func TestMemory_EntityDocs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	orgID, err := m.CreateOrganization(ctx, Organization{Name: "ACME"})
	if err != nil {
		t.Fatalf("CreateOrganization returned error: %v", err)
	}

	if err := m.MergeEntityDoc(ctx, orgID, "brand", map[string]string{"vision": "grow", "mission": "serve"}); err != nil {
		t.Fatalf("MergeEntityDoc returned error: %v", err)
	}
	if err := m.MergeEntityDoc(ctx, orgID, "brand", map[string]string{"vision": "expand"}); err != nil {
		t.Fatalf("second merge returned error: %v", err)
	}

	doc, err := m.GetEntityDoc(ctx, orgID, "brand")
	if err != nil {
		t.Fatalf("GetEntityDoc returned error: %v", err)
	}
	if doc["vision"] != "expand" || doc["mission"] != "serve" {
		t.Errorf("unexpected doc: %v", doc)
	}

	// The returned map is a copy.
	doc["vision"] = "mutated"
	fresh, _ := m.GetEntityDoc(ctx, orgID, "brand")
	if fresh["vision"] != "expand" {
		t.Error("GetEntityDoc leaked internal map")
	}

	if err := m.DeleteEntityAttrs(ctx, orgID, "brand", []string{"vision"}); err != nil {
		t.Fatalf("DeleteEntityAttrs returned error: %v", err)
	}
	doc, _ = m.GetEntityDoc(ctx, orgID, "brand")
	if _, ok := doc["vision"]; ok {
		t.Error("vision survived attribute delete")
	}

	if err := m.DeleteEntityAttrs(ctx, orgID, "brand", nil); err != nil {
		t.Fatalf("document delete returned error: %v", err)
	}
	if _, err := m.GetEntityDoc(ctx, orgID, "brand"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after document delete, got %v", err)
	}
}

func TestMemory_DeleteCascadesDocs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	orgID, _ := m.CreateOrganization(ctx, Organization{Name: "ACME"})
	_ = m.MergeEntityDoc(ctx, orgID, "metadata", map[string]string{"industry": "fintech"})

	if err := m.DeleteOrganization(ctx, "ACME"); err != nil {
		t.Fatalf("DeleteOrganization returned error: %v", err)
	}
	if _, err := m.GetEntityDoc(ctx, orgID, "metadata"); !errors.Is(err, ErrNotFound) {
		t.Errorf("documents survived organization delete: %v", err)
	}
}
