// Package store persists organizations and their sub-entity documents in
// PostgreSQL. Each organization owns at most one JSON document per entity
// kind (brand, metadata, offering, target, values); attribute-level
// add/update/delete is a read-merge-write over that document.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
)

// ErrNotFound is returned when the requested organization or entity
// document does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when creating an organization whose name
// is taken.
var ErrAlreadyExists = errors.New("already exists")

// Organization is one row of the organizations table.
type Organization struct {
	OrgID         string    `db:"org_id" json:"org_id"`
	Name          string    `db:"name" json:"name"`
	LegalEntity   string    `db:"legal_entity" json:"legal_entity"`
	OrgType       string    `db:"org_type" json:"org_type"`
	Currency      string    `db:"currency" json:"currency"`
	FinUnit       string    `db:"fin_unit" json:"fin_unit"`
	ClosingMonth  string    `db:"closing_month" json:"closing_month"`
	Incorporation string    `db:"incorporation" json:"incorporation"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Store wraps the database handle.
type Store struct {
	db *sqlx.DB
}

// New connects to PostgreSQL.
func New(connStr string) (*Store, error) {
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing handle; used by tests.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InitDB creates the schema if it does not exist.
func (s *Store) InitDB(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS organizations (
    org_id        UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name          TEXT NOT NULL UNIQUE,
    legal_entity  TEXT NOT NULL DEFAULT '',
    org_type      TEXT NOT NULL DEFAULT 'company',
    currency      TEXT NOT NULL DEFAULT 'EUR',
    fin_unit      TEXT NOT NULL DEFAULT 'THOUSANDS',
    closing_month TEXT NOT NULL DEFAULT '12',
    incorporation TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS entity_docs (
    org_id     UUID NOT NULL REFERENCES organizations(org_id) ON DELETE CASCADE,
    entity     TEXT NOT NULL,
    doc        JSONB NOT NULL DEFAULT '{}',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (org_id, entity)
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// CreateOrganization inserts a new organization and returns its ID.
func (s *Store) CreateOrganization(ctx context.Context, org Organization) (string, error) {
	var orgID string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO organizations (name, legal_entity, org_type, currency, fin_unit, closing_month, incorporation)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         RETURNING org_id::text`,
		org.Name, org.LegalEntity, org.OrgType, org.Currency, org.FinUnit, org.ClosingMonth, org.Incorporation,
	).Scan(&orgID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return "", fmt.Errorf("organization %q: %w", org.Name, ErrAlreadyExists)
		}
		return "", fmt.Errorf("failed to create organization %q: %w", org.Name, err)
	}
	return orgID, nil
}

// GetOrganizationByName fetches one organization by its unique name.
func (s *Store) GetOrganizationByName(ctx context.Context, name string) (*Organization, error) {
	var org Organization
	err := s.db.GetContext(ctx, &org,
		`SELECT org_id::text AS org_id, name, legal_entity, org_type, currency, fin_unit, closing_month, incorporation, created_at
         FROM organizations WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("organization %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization %q: %w", name, err)
	}
	return &org, nil
}

// ListOrganizations returns all organizations ordered by name.
func (s *Store) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	err := s.db.SelectContext(ctx, &orgs,
		`SELECT org_id::text AS org_id, name, legal_entity, org_type, currency, fin_unit, closing_month, incorporation, created_at
         FROM organizations ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// OrganizationExists reports whether an organization with the name exists.
func (s *Store) OrganizationExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM organizations WHERE name = $1)`, name)
	if err != nil {
		return false, fmt.Errorf("failed to check organization %q: %w", name, err)
	}
	return exists, nil
}

// organizationColumns maps attribute word IDs to organization columns.
var organizationColumns = map[string]string{
	"name":          "name",
	"entity":        "legal_entity",
	"type":          "org_type",
	"currency":      "currency",
	"unit":          "fin_unit",
	"closing":       "closing_month",
	"incorporation": "incorporation",
}

// UpdateOrganization applies attribute values to an organization's
// columns. Keys are attribute word IDs.
func (s *Store) UpdateOrganization(ctx context.Context, name string, attrs map[string]string) error {
	for attr, value := range attrs {
		column, ok := organizationColumns[attr]
		if !ok {
			return fmt.Errorf("no organization column for attribute %q", attr)
		}
		res, err := s.db.ExecContext(ctx,
			fmt.Sprintf(`UPDATE organizations SET %s = $1 WHERE name = $2`, column),
			value, name)
		if err != nil {
			return fmt.Errorf("failed to update organization %q: %w", name, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update organization %q: %w", name, err)
		}
		if affected == 0 {
			return fmt.Errorf("organization %q: %w", name, ErrNotFound)
		}
	}
	return nil
}

// DeleteOrganization removes an organization and, via cascade, its
// entity documents.
func (s *Store) DeleteOrganization(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM organizations WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete organization %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete organization %q: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("organization %q: %w", name, ErrNotFound)
	}
	return nil
}

// GetEntityDoc returns the attribute document for (org, entity). A
// missing document is ErrNotFound.
func (s *Store) GetEntityDoc(ctx context.Context, orgID, entity string) (map[string]string, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw,
		`SELECT doc FROM entity_docs WHERE org_id = $1 AND entity = $2`, orgID, entity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s document for org %s: %w", entity, orgID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s document: %w", entity, err)
	}

	doc := make(map[string]string)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", entity, err)
	}
	return doc, nil
}

// MergeEntityDoc merges attribute values into the (org, entity) document,
// creating it when absent.
func (s *Store) MergeEntityDoc(ctx context.Context, orgID, entity string, attrs map[string]string) error {
	doc, err := s.GetEntityDoc(ctx, orgID, entity)
	if errors.Is(err, ErrNotFound) {
		doc = make(map[string]string)
	} else if err != nil {
		return err
	}

	for k, v := range attrs {
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", entity, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entity_docs (org_id, entity, doc, updated_at)
         VALUES ($1, $2, $3, now())
         ON CONFLICT (org_id, entity) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		orgID, entity, raw)
	if err != nil {
		return fmt.Errorf("failed to save %s document: %w", entity, err)
	}
	return nil
}

// DeleteEntityAttrs removes the named attributes from the document. An
// empty key list deletes the whole document.
func (s *Store) DeleteEntityAttrs(ctx context.Context, orgID, entity string, keys []string) error {
	if len(keys) == 0 {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM entity_docs WHERE org_id = $1 AND entity = $2`, orgID, entity)
		if err != nil {
			return fmt.Errorf("failed to delete %s document: %w", entity, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to delete %s document: %w", entity, err)
		}
		if affected == 0 {
			return fmt.Errorf("%s document for org %s: %w", entity, orgID, ErrNotFound)
		}
		return nil
	}

	doc, err := s.GetEntityDoc(ctx, orgID, entity)
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(doc, k)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", entity, err)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE entity_docs SET doc = $3, updated_at = now() WHERE org_id = $1 AND entity = $2`,
		orgID, entity, raw)
	if err != nil {
		return fmt.Errorf("failed to update %s document: %w", entity, err)
	}
	return nil
}
