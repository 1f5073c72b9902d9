// Package dispatch executes resolved commands against a backend and the
// current session context. The parser decides WHAT a line means; this
// package decides what happens, including context switches for
// navigation commands.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"orgsh/internal/parser"
	"orgsh/internal/session"
	"orgsh/internal/store"
)

// Backend is the persistence surface dispatch runs against. Both
// *store.Store and *store.Memory satisfy it.
type Backend interface {
	CreateOrganization(ctx context.Context, org store.Organization) (string, error)
	GetOrganizationByName(ctx context.Context, name string) (*store.Organization, error)
	ListOrganizations(ctx context.Context) ([]store.Organization, error)
	OrganizationExists(ctx context.Context, name string) (bool, error)
	UpdateOrganization(ctx context.Context, name string, attrs map[string]string) error
	DeleteOrganization(ctx context.Context, name string) error
	GetEntityDoc(ctx context.Context, orgID, entity string) (map[string]string, error)
	MergeEntityDoc(ctx context.Context, orgID, entity string, attrs map[string]string) error
	DeleteEntityAttrs(ctx context.Context, orgID, entity string, keys []string) error
}

// Outcome is what a handler produced: the structured command result plus
// a message for the shell and, for navigation, the context to switch the
// session into.
type Outcome struct {
	Operation  string            // action word ID
	Entity     string            // entity word ID, "" for navigation
	Name       string            // affected organization or target name
	Attributes map[string]string // attribute values the handler applied
	Message    string
	NewContext *session.Context
}

// handlerFunc executes one resolved command.
type handlerFunc func(ctx context.Context, res *parser.Result, sctx session.Context) (*Outcome, error)

// Dispatcher routes parse results to handlers. Routing is by exact
// (action, entity) key first, then by an action-level fallback shared by
// all sub-entity document kinds.
type Dispatcher struct {
	backend  Backend
	table    map[string]handlerFunc
	fallback map[string]handlerFunc
}

// New creates a dispatcher over the backend.
func New(backend Backend) *Dispatcher {
	d := &Dispatcher{backend: backend}
	d.table = map[string]handlerFunc{
		"cd":             d.navigate,
		"create company": d.createCompany,
		"show company":   d.showCompany,
		"update company": d.updateCompany,
		"delete company": d.deleteCompany,
	}
	d.fallback = map[string]handlerFunc{
		"create": d.mergeDoc,
		"add":    d.mergeDoc,
		"update": d.mergeDoc,
		"show":   d.showDoc,
		"delete": d.deleteDoc,
	}
	return d
}

func tableKey(action, entity string) string {
	if entity == "" {
		return action
	}
	return action + " " + entity
}

// Execute runs the resolved command in the session's context.
func (d *Dispatcher) Execute(ctx context.Context, res *parser.Result, sctx session.Context) (*Outcome, error) {
	if h, ok := d.table[tableKey(res.ActionID(), res.EntityID())]; ok {
		return h(ctx, res, sctx)
	}
	if h, ok := d.fallback[res.ActionID()]; ok && res.Entity != nil {
		return h(ctx, res, sctx)
	}
	return nil, fmt.Errorf("no handler for %s %s", res.ActionID(), res.EntityID())
}

func (d *Dispatcher) navigate(ctx context.Context, res *parser.Result, sctx session.Context) (*Outcome, error) {
	out := &Outcome{Operation: "cd", Name: res.Target}

	switch res.Target {
	case "", "~", "/":
		next := session.NewSysContext()
		out.Message, out.NewContext = "sys", &next
		return out, nil
	case "..":
		next := sctx.Up()
		out.Message, out.NewContext = next.Prompt(), &next
		return out, nil
	}

	switch sctx.Level {
	case session.LevelSys:
		org, err := d.backend.GetOrganizationByName(ctx, res.Target)
		if err != nil {
			return nil, err
		}
		next := sctx.EnterOrg(org.OrgID, org.Name)
		out.Message, out.NewContext = next.Prompt(), &next
		return out, nil
	case session.LevelOrg:
		next, err := sctx.EnterApp(res.Target)
		if err != nil {
			return nil, err
		}
		out.Message, out.NewContext = next.Prompt(), &next
		return out, nil
	default:
		return nil, fmt.Errorf("cannot navigate into %q from %s", res.Target, sctx.Level)
	}
}

func (d *Dispatcher) createCompany(ctx context.Context, res *parser.Result, _ session.Context) (*Outcome, error) {
	name := res.Target
	if name == "" {
		name = res.Attributes["name"]
	}
	if name == "" {
		return nil, errors.New("company name required")
	}

	org := store.Organization{
		Name:          name,
		LegalEntity:   res.Attributes["entity"],
		OrgType:       res.Attributes["type"],
		Currency:      res.Attributes["currency"],
		FinUnit:       res.Attributes["unit"],
		ClosingMonth:  res.Attributes["closing"],
		Incorporation: res.Attributes["incorporation"],
	}
	if org.OrgType == "" {
		org.OrgType = "company"
	}
	for _, mod := range res.Modifiers {
		org.OrgType = mod
	}
	if org.Currency == "" {
		org.Currency = "EUR"
	}
	if org.FinUnit == "" {
		org.FinUnit = "THOUSANDS"
	}
	if org.ClosingMonth == "" {
		org.ClosingMonth = "12"
	}

	orgID, err := d.backend.CreateOrganization(ctx, org)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Operation:  "create",
		Entity:     "company",
		Name:       name,
		Attributes: valuedAttributes(res),
		Message:    fmt.Sprintf("created company %s (%s)", name, orgID),
	}, nil
}

func (d *Dispatcher) showCompany(ctx context.Context, res *parser.Result, sctx session.Context) (*Outcome, error) {
	name := res.Target
	if name == "" && sctx.Level >= session.LevelOrg {
		name = sctx.OrgName
	}
	out := &Outcome{Operation: "show", Entity: "company", Name: name}

	if name == "" {
		orgs, err := d.backend.ListOrganizations(ctx)
		if err != nil {
			return nil, err
		}
		if len(orgs) == 0 {
			out.Message = "no companies"
			return out, nil
		}
		var b strings.Builder
		for _, org := range orgs {
			fmt.Fprintf(&b, "%s  %s  %s\n", org.Name, org.LegalEntity, org.Currency)
		}
		out.Message = strings.TrimRight(b.String(), "\n")
		return out, nil
	}

	org, err := d.backend.GetOrganizationByName(ctx, name)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "name:          %s\n", org.Name)
	fmt.Fprintf(&b, "entity:        %s\n", org.LegalEntity)
	fmt.Fprintf(&b, "type:          %s\n", org.OrgType)
	fmt.Fprintf(&b, "currency:      %s\n", org.Currency)
	fmt.Fprintf(&b, "unit:          %s\n", org.FinUnit)
	fmt.Fprintf(&b, "closing:       %s\n", org.ClosingMonth)
	fmt.Fprintf(&b, "incorporation: %s", org.Incorporation)
	out.Message = b.String()
	return out, nil
}

func (d *Dispatcher) updateCompany(ctx context.Context, res *parser.Result, sctx session.Context) (*Outcome, error) {
	name := res.Target
	if name == "" {
		name = sctx.OrgName
	}
	if name == "" {
		return nil, errors.New("company name required")
	}
	attrs := valuedAttributes(res)
	if len(attrs) == 0 {
		return nil, errors.New("nothing to update")
	}
	if err := d.backend.UpdateOrganization(ctx, name, attrs); err != nil {
		return nil, err
	}
	return &Outcome{
		Operation:  "update",
		Entity:     "company",
		Name:       name,
		Attributes: attrs,
		Message:    fmt.Sprintf("updated company %s", name),
	}, nil
}

func (d *Dispatcher) deleteCompany(ctx context.Context, res *parser.Result, _ session.Context) (*Outcome, error) {
	if res.Target == "" {
		return nil, errors.New("company name required")
	}
	if err := d.backend.DeleteOrganization(ctx, res.Target); err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("deleted company %s", res.Target)
	if res.Warning != "" {
		msg = res.Warning + "\n" + msg
	}
	return &Outcome{Operation: "delete", Entity: "company", Name: res.Target, Message: msg}, nil
}

func (d *Dispatcher) mergeDoc(ctx context.Context, res *parser.Result, sctx session.Context) (*Outcome, error) {
	if sctx.OrgID == "" {
		return nil, errors.New("no organization selected")
	}
	attrs := valuedAttributes(res)
	if len(attrs) == 0 {
		return nil, errors.New("nothing to save")
	}
	if err := d.backend.MergeEntityDoc(ctx, sctx.OrgID, res.EntityID(), attrs); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Outcome{
		Operation:  res.ActionID(),
		Entity:     res.EntityID(),
		Name:       sctx.OrgName,
		Attributes: attrs,
		Message:    fmt.Sprintf("saved %s: %s", res.EntityID(), strings.Join(keys, ", ")),
	}, nil
}

func (d *Dispatcher) showDoc(ctx context.Context, res *parser.Result, sctx session.Context) (*Outcome, error) {
	if sctx.OrgID == "" {
		return nil, errors.New("no organization selected")
	}
	doc, err := d.backend.GetEntityDoc(ctx, sctx.OrgID, res.EntityID())
	if err != nil {
		return nil, err
	}

	keys := res.BareAttributes()
	if len(keys) == 0 {
		keys = make([]string, 0, len(doc))
		for k := range doc {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	out := &Outcome{Operation: "show", Entity: res.EntityID(), Name: sctx.OrgName}
	if len(keys) == 0 {
		out.Message = fmt.Sprintf("%s is empty", res.EntityID())
		return out, nil
	}
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, doc[k])
	}
	out.Message = strings.TrimRight(b.String(), "\n")
	return out, nil
}

func (d *Dispatcher) deleteDoc(ctx context.Context, res *parser.Result, sctx session.Context) (*Outcome, error) {
	if sctx.OrgID == "" {
		return nil, errors.New("no organization selected")
	}
	keys := res.BareAttributes()
	if err := d.backend.DeleteEntityAttrs(ctx, sctx.OrgID, res.EntityID(), keys); err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("deleted %s", res.EntityID())
	if len(keys) > 0 {
		msg = fmt.Sprintf("deleted %s: %s", res.EntityID(), strings.Join(keys, ", "))
	}
	if res.Warning != "" {
		msg = res.Warning + "\n" + msg
	}
	return &Outcome{Operation: "delete", Entity: res.EntityID(), Name: sctx.OrgName, Message: msg}, nil
}

// valuedAttributes returns the attributes that carry a value, dropping
// bare references.
func valuedAttributes(res *parser.Result) map[string]string {
	out := make(map[string]string, len(res.Attributes))
	for k, v := range res.Attributes {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
