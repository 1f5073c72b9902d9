package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process store used when ORGSH_STORE=memory and by
// tests that do not want a database.
type Memory struct {
	mu   sync.RWMutex
	orgs map[string]*Organization     // keyed by name
	docs map[string]map[string]string // keyed by orgID + "/" + entity
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		orgs: make(map[string]*Organization),
		docs: make(map[string]map[string]string),
	}
}

func docKey(orgID, entity string) string {
	return orgID + "/" + entity
}

// CreateOrganization inserts a new organization and returns its ID.
func (m *Memory) CreateOrganization(_ context.Context, org Organization) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orgs[org.Name]; ok {
		return "", fmt.Errorf("organization %q: %w", org.Name, ErrAlreadyExists)
	}
	org.OrgID = uuid.New().String()
	org.CreatedAt = time.Now().UTC()
	m.orgs[org.Name] = &org
	return org.OrgID, nil
}

// GetOrganizationByName fetches one organization by name.
func (m *Memory) GetOrganizationByName(_ context.Context, name string) (*Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	org, ok := m.orgs[name]
	if !ok {
		return nil, fmt.Errorf("organization %q: %w", name, ErrNotFound)
	}
	copied := *org
	return &copied, nil
}

// ListOrganizations returns all organizations ordered by name.
func (m *Memory) ListOrganizations(_ context.Context) ([]Organization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.orgs))
	for name := range m.orgs {
		names = append(names, name)
	}
	sort.Strings(names)
	orgs := make([]Organization, 0, len(names))
	for _, name := range names {
		orgs = append(orgs, *m.orgs[name])
	}
	return orgs, nil
}

// OrganizationExists reports whether an organization with the name exists.
func (m *Memory) OrganizationExists(_ context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.orgs[name]
	return ok, nil
}

// UpdateOrganization applies attribute values to an organization.
func (m *Memory) UpdateOrganization(_ context.Context, name string, attrs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	org, ok := m.orgs[name]
	if !ok {
		return fmt.Errorf("organization %q: %w", name, ErrNotFound)
	}
	for attr, value := range attrs {
		switch attr {
		case "name":
			delete(m.orgs, org.Name)
			org.Name = value
			m.orgs[value] = org
		case "entity":
			org.LegalEntity = value
		case "type":
			org.OrgType = value
		case "currency":
			org.Currency = value
		case "unit":
			org.FinUnit = value
		case "closing":
			org.ClosingMonth = value
		case "incorporation":
			org.Incorporation = value
		default:
			return fmt.Errorf("no organization column for attribute %q", attr)
		}
	}
	return nil
}

// DeleteOrganization removes an organization and its entity documents.
func (m *Memory) DeleteOrganization(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	org, ok := m.orgs[name]
	if !ok {
		return fmt.Errorf("organization %q: %w", name, ErrNotFound)
	}
	delete(m.orgs, name)
	for key := range m.docs {
		if len(key) > len(org.OrgID) && key[:len(org.OrgID)] == org.OrgID {
			delete(m.docs, key)
		}
	}
	return nil
}

// GetEntityDoc returns the attribute document for (org, entity).
func (m *Memory) GetEntityDoc(_ context.Context, orgID, entity string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[docKey(orgID, entity)]
	if !ok {
		return nil, fmt.Errorf("%s document for org %s: %w", entity, orgID, ErrNotFound)
	}
	copied := make(map[string]string, len(doc))
	for k, v := range doc {
		copied[k] = v
	}
	return copied, nil
}

// MergeEntityDoc merges attribute values into the (org, entity) document.
func (m *Memory) MergeEntityDoc(_ context.Context, orgID, entity string, attrs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := docKey(orgID, entity)
	doc, ok := m.docs[key]
	if !ok {
		doc = make(map[string]string)
		m.docs[key] = doc
	}
	for k, v := range attrs {
		doc[k] = v
	}
	return nil
}

// DeleteEntityAttrs removes the named attributes; an empty key list
// deletes the whole document.
func (m *Memory) DeleteEntityAttrs(_ context.Context, orgID, entity string, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := docKey(orgID, entity)
	doc, ok := m.docs[key]
	if !ok {
		return fmt.Errorf("%s document for org %s: %w", entity, orgID, ErrNotFound)
	}
	if len(keys) == 0 {
		delete(m.docs, key)
		return nil
	}
	for _, k := range keys {
		delete(doc, k)
	}
	return nil
}
