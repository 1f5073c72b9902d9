// Package session provides the execution context consumed by the parsing
// pipeline and the navigation handlers, plus an interactive session
// manager. Contexts are treated as immutable: navigation constructs new
// Context values rather than mutating existing ones.
package session

import "fmt"

// Level is the hierarchical scope gating which commands are valid.
type Level int

const (
	LevelSys Level = 0 // system / root level
	LevelOrg Level = 1 // organization level, inside a company
	LevelApp Level = 2 // application level, inside a plugin
)

// String returns the canonical level name, SYS, ORG or APP. The prompt
// renders its own lowercase form via Prompt.
func (l Level) String() string {
	switch l {
	case LevelSys:
		return "SYS"
	case LevelOrg:
		return "ORG"
	case LevelApp:
		return "APP"
	default:
		return fmt.Sprintf("unknown(%d)", int(l))
	}
}

// Context is the navigation context passed into every parse and dispatch
// call. The parser only ever reads Level; navigation handlers build new
// contexts via the Enter/Leave helpers.
type Context struct {
	Level   Level
	OrgID   string
	OrgName string
	AppID   string
}

// NewSysContext returns the root context.
func NewSysContext() Context {
	return Context{Level: LevelSys}
}

// Validate checks level/field consistency: org fields must be set from
// ORG level up, the app field only at APP level.
func (c Context) Validate() error {
	switch c.Level {
	case LevelSys:
		if c.OrgID != "" || c.OrgName != "" || c.AppID != "" {
			return fmt.Errorf("sys context must not carry org or app fields")
		}
	case LevelOrg:
		if c.OrgID == "" || c.OrgName == "" {
			return fmt.Errorf("org context requires org id and name")
		}
		if c.AppID != "" {
			return fmt.Errorf("org context must not carry an app id")
		}
	case LevelApp:
		if c.OrgID == "" || c.OrgName == "" || c.AppID == "" {
			return fmt.Errorf("app context requires org id, org name, and app id")
		}
	default:
		return fmt.Errorf("level must be sys, org, or app")
	}
	return nil
}

// CanRun reports whether the context satisfies a minimum level.
func (c Context) CanRun(min Level) bool {
	return c.Level >= min
}

// EnterOrg returns the ORG-level context for the given organization.
func (c Context) EnterOrg(orgID, orgName string) Context {
	return Context{Level: LevelOrg, OrgID: orgID, OrgName: orgName}
}

// EnterApp returns the APP-level context for the given plugin. Only valid
// from ORG level.
func (c Context) EnterApp(appID string) (Context, error) {
	if c.Level != LevelOrg {
		return c, fmt.Errorf("cannot enter app context from %s level", c.Level)
	}
	return Context{Level: LevelApp, OrgID: c.OrgID, OrgName: c.OrgName, AppID: appID}, nil
}

// Up returns the context one level towards sys. At sys it is a no-op.
func (c Context) Up() Context {
	switch c.Level {
	case LevelApp:
		return Context{Level: LevelOrg, OrgID: c.OrgID, OrgName: c.OrgName}
	case LevelOrg:
		return NewSysContext()
	default:
		return c
	}
}

// Prompt renders the context the way the shell prompt shows it,
// e.g. "sys", "org:ACME", "app:ACME/valuation".
func (c Context) Prompt() string {
	switch c.Level {
	case LevelOrg:
		return fmt.Sprintf("org:%s", c.OrgName)
	case LevelApp:
		return fmt.Sprintf("app:%s/%s", c.OrgName, c.AppID)
	default:
		return "sys"
	}
}
