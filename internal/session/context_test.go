package session

import "testing"

func TestLevel_String(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelSys, "SYS"},
		{LevelOrg, "ORG"},
		{LevelApp, "APP"},
		{Level(7), "unknown(7)"},
	}
	for _, tc := range cases {
		if got := tc.level.String(); got != tc.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(tc.level), got, tc.want)
		}
	}
}

func TestContext_Navigation(t *testing.T) {
	sys := NewSysContext()
	if sys.Prompt() != "sys" {
		t.Errorf("sys prompt = %q", sys.Prompt())
	}

	org := sys.EnterOrg("org-1", "ACME")
	if org.Level != LevelOrg || org.OrgName != "ACME" {
		t.Errorf("org context = %+v", org)
	}
	if org.Prompt() != "org:ACME" {
		t.Errorf("org prompt = %q", org.Prompt())
	}

	app, err := org.EnterApp("valuation")
	if err != nil {
		t.Fatalf("EnterApp failed: %v", err)
	}
	if app.Level != LevelApp || app.Prompt() != "app:ACME/valuation" {
		t.Errorf("app context = %+v, prompt %q", app, app.Prompt())
	}

	if back := app.Up(); back.Level != LevelOrg || back.AppID != "" {
		t.Errorf("Up from app = %+v", back)
	}
	if root := org.Up(); root != sys {
		t.Errorf("Up from org = %+v", root)
	}
	if again := sys.Up(); again != sys {
		t.Errorf("Up from sys moved: %+v", again)
	}
}

func TestContext_EnterAppOnlyFromOrg(t *testing.T) {
	if _, err := NewSysContext().EnterApp("valuation"); err == nil {
		t.Error("EnterApp from sys level accepted")
	}

	org := NewSysContext().EnterOrg("org-1", "ACME")
	app, err := org.EnterApp("valuation")
	if err != nil {
		t.Fatalf("EnterApp from org failed: %v", err)
	}
	if _, err := app.EnterApp("reporting"); err == nil {
		t.Error("EnterApp from app level accepted")
	}
}

func TestContext_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ctx     Context
		wantErr bool
	}{
		{"sys clean", NewSysContext(), false},
		{"sys with org fields", Context{Level: LevelSys, OrgID: "x"}, true},
		{"org complete", Context{Level: LevelOrg, OrgID: "x", OrgName: "ACME"}, false},
		{"org missing name", Context{Level: LevelOrg, OrgID: "x"}, true},
		{"org with app id", Context{Level: LevelOrg, OrgID: "x", OrgName: "ACME", AppID: "v"}, true},
		{"app complete", Context{Level: LevelApp, OrgID: "x", OrgName: "ACME", AppID: "v"}, false},
		{"app missing app id", Context{Level: LevelApp, OrgID: "x", OrgName: "ACME"}, true},
		{"bogus level", Context{Level: Level(7)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContext_CanRun(t *testing.T) {
	org := NewSysContext().EnterOrg("org-1", "ACME")
	if !org.CanRun(LevelSys) || !org.CanRun(LevelOrg) {
		t.Error("org level should satisfy sys and org minimums")
	}
	if org.CanRun(LevelApp) {
		t.Error("org level should not satisfy app minimum")
	}
}
