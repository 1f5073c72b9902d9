package dispatch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgsh/internal/parser"
	"orgsh/internal/session"
	"orgsh/internal/store"
	"orgsh/internal/vocabulary"
)

type fixture struct {
	parser  *parser.Parser
	backend *store.Memory
	d       *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	registry, err := vocabulary.DefaultRegistry()
	require.NoError(t, err)
	backend := store.NewMemory()
	return &fixture{
		parser:  parser.New(registry),
		backend: backend,
		d:       New(backend),
	}
}

// run parses and executes one line in the given context.
func (f *fixture) run(t *testing.T, line string, sctx session.Context) (*Outcome, error) {
	t.Helper()
	result, err := f.parser.Parse(line, sctx)
	if err != nil {
		return nil, err
	}
	return f.d.Execute(context.Background(), result, sctx)
}

func (f *fixture) mustRun(t *testing.T, line string, sctx session.Context) *Outcome {
	t.Helper()
	outcome, err := f.run(t, line, sctx)
	require.NoError(t, err, "command %q", line)
	return outcome
}

func (f *fixture) enterOrg(t *testing.T, name string) session.Context {
	t.Helper()
	org, err := f.backend.GetOrganizationByName(context.Background(), name)
	require.NoError(t, err)
	return session.NewSysContext().EnterOrg(org.OrgID, org.Name)
}

// =============================================================================
// Company Lifecycle
// =============================================================================

func TestCompanyLifecycle(t *testing.T) {
	f := newFixture(t)
	sys := session.NewSysContext()

	outcome := f.mustRun(t, "create company ACME entity=SA currency=USD", sys)
	assert.Contains(t, outcome.Message, "created company ACME")
	assert.Equal(t, "create", outcome.Operation)
	assert.Equal(t, "company", outcome.Entity)
	assert.Equal(t, "ACME", outcome.Name)

	org, err := f.backend.GetOrganizationByName(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, "SA", org.LegalEntity)
	assert.Equal(t, "USD", org.Currency)
	assert.Equal(t, "THOUSANDS", org.FinUnit, "defaults applied")

	outcome = f.mustRun(t, "show company ACME", sys)
	assert.Contains(t, outcome.Message, "currency:      USD")

	orgCtx := f.enterOrg(t, "ACME")
	f.mustRun(t, "update company closing=6", orgCtx)
	org, err = f.backend.GetOrganizationByName(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, "6", org.ClosingMonth)

	outcome = f.mustRun(t, "delete company ACME", sys)
	assert.Contains(t, outcome.Message, "deleted company ACME")
	assert.Contains(t, outcome.Message, "permanently deletes", "destructive warning surfaced")

	_, err = f.backend.GetOrganizationByName(context.Background(), "ACME")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateCompany_DuplicateName(t *testing.T) {
	f := newFixture(t)
	sys := session.NewSysContext()

	f.mustRun(t, "create company ACME", sys)
	_, err := f.run(t, "create company ACME", sys)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateCompany_ModifierSetsType(t *testing.T) {
	f := newFixture(t)

	f.mustRun(t, "create company ACME holding", session.NewSysContext())
	org, err := f.backend.GetOrganizationByName(context.Background(), "ACME")
	require.NoError(t, err)
	assert.Equal(t, "holding", org.OrgType)
}

func TestShowCompany_ListsAll(t *testing.T) {
	f := newFixture(t)
	sys := session.NewSysContext()

	f.mustRun(t, "create company Beta", sys)
	f.mustRun(t, "create company Alpha", sys)

	outcome := f.mustRun(t, "show company", sys)
	assert.Contains(t, outcome.Message, "Alpha")
	assert.Contains(t, outcome.Message, "Beta")
	assert.Less(t, // ordered by name
		strings.Index(outcome.Message, "Alpha"), strings.Index(outcome.Message, "Beta"))
}

// =============================================================================
// Sub-Entity Documents
// =============================================================================

func TestBrandDocumentRoundTrip(t *testing.T) {
	f := newFixture(t)
	sys := session.NewSysContext()
	f.mustRun(t, "create company ACME", sys)
	orgCtx := f.enterOrg(t, "ACME")

	f.mustRun(t, "add brand vision=grow mission=serve", orgCtx)

	outcome := f.mustRun(t, "show brand", orgCtx)
	assert.Contains(t, outcome.Message, "vision: grow")
	assert.Contains(t, outcome.Message, "mission: serve")

	// Selected attributes only.
	outcome = f.mustRun(t, "show brand vision", orgCtx)
	assert.Contains(t, outcome.Message, "vision: grow")
	assert.NotContains(t, outcome.Message, "mission")

	f.mustRun(t, "update brand vision=expand", orgCtx)
	outcome = f.mustRun(t, "show brand vision", orgCtx)
	assert.Contains(t, outcome.Message, "vision: expand")

	// Attribute-level delete leaves the rest of the document alone.
	f.mustRun(t, "delete brand vision", orgCtx)
	doc, err := f.backend.GetEntityDoc(context.Background(), orgCtx.OrgID, "brand")
	require.NoError(t, err)
	assert.NotContains(t, doc, "vision")
	assert.Equal(t, "serve", doc["mission"])

	// Bare delete drops the whole document.
	f.mustRun(t, "delete brand", orgCtx)
	_, err = f.backend.GetEntityDoc(context.Background(), orgCtx.OrgID, "brand")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMetadataRoundTrip(t *testing.T) {
	f := newFixture(t)
	sys := session.NewSysContext()
	f.mustRun(t, "create company ACME", sys)
	orgCtx := f.enterOrg(t, "ACME")

	outcome := f.mustRun(t, "add metadata key=industry value=fintech", orgCtx)
	assert.Equal(t, "add", outcome.Operation, "fallback routing keeps the action")
	assert.Equal(t, "metadata", outcome.Entity)

	doc, err := f.backend.GetEntityDoc(context.Background(), orgCtx.OrgID, "metadata")
	require.NoError(t, err)
	assert.Equal(t, "industry", doc["key"])
	assert.Equal(t, "fintech", doc["value"])

	// Attributes of other entities stay rejected at parse time.
	_, err = f.run(t, "add metadata vision=grow", orgCtx)
	assert.Error(t, err)
}

func TestDocsIsolatedPerCompany(t *testing.T) {
	f := newFixture(t)
	sys := session.NewSysContext()
	f.mustRun(t, "create company ACME", sys)
	f.mustRun(t, "create company Globex", sys)

	acme := f.enterOrg(t, "ACME")
	globex := f.enterOrg(t, "Globex")

	f.mustRun(t, "add brand vision=grow", acme)
	_, err := f.backend.GetEntityDoc(context.Background(), globex.OrgID, "brand")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// =============================================================================
// Navigation
// =============================================================================

func TestNavigation(t *testing.T) {
	f := newFixture(t)
	sys := session.NewSysContext()
	f.mustRun(t, "create company ACME", sys)

	outcome := f.mustRun(t, "cd ACME", sys)
	require.NotNil(t, outcome.NewContext)
	assert.Equal(t, session.LevelOrg, outcome.NewContext.Level)
	assert.Equal(t, "ACME", outcome.NewContext.OrgName)

	orgCtx := *outcome.NewContext
	outcome = f.mustRun(t, "cd valuation", orgCtx)
	require.NotNil(t, outcome.NewContext)
	assert.Equal(t, session.LevelApp, outcome.NewContext.Level)
	assert.Equal(t, "valuation", outcome.NewContext.AppID)

	outcome = f.mustRun(t, "cd ..", *outcome.NewContext)
	require.NotNil(t, outcome.NewContext)
	assert.Equal(t, session.LevelOrg, outcome.NewContext.Level)

	outcome = f.mustRun(t, "cd ~", *outcome.NewContext)
	require.NotNil(t, outcome.NewContext)
	assert.Equal(t, session.LevelSys, outcome.NewContext.Level)
}

func TestNavigation_UnknownCompany(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "cd Ghost", session.NewSysContext())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubEntityWithoutOrgSelected(t *testing.T) {
	f := newFixture(t)

	// Hand-built org context that doesn't point at a stored company is
	// still required for the parse; dispatch then needs a real org id.
	fake := session.Context{Level: session.LevelOrg, OrgName: "ACME"}
	result, err := f.parser.Parse("show brand", fake)
	require.NoError(t, err)
	_, err = f.d.Execute(context.Background(), result, fake)
	assert.Error(t, err)
}
