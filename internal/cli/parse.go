package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"orgsh/internal/parser"
	"orgsh/internal/session"
	"orgsh/internal/vocabulary"
)

// RunParse resolves one command line without executing it and prints
// what it resolved to. Useful for checking vocabulary behavior.
func RunParse(registry *vocabulary.Registry, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: orgsh parse <command line>")
	}
	line := strings.Join(args, " ")

	p := parser.New(registry)
	// Parse-only runs have no real session. Every command spec is
	// satisfiable at exactly one of the three levels, so try each.
	contexts := []session.Context{
		session.NewSysContext(),
		{Level: session.LevelOrg, OrgID: "-", OrgName: "-"},
		{Level: session.LevelApp, OrgID: "-", OrgName: "-", AppID: "-"},
	}
	var result *parser.Result
	var err error
	for _, sctx := range contexts {
		result, err = p.Parse(line, sctx)
		var violation *parser.ContextViolationError
		if errors.As(err, &violation) {
			continue
		}
		break
	}
	if err != nil {
		fmt.Println(RenderError(err))
		return err
	}

	fmt.Printf("input:    %s\n", result.Input)
	fmt.Printf("action:   %s\n", result.ActionID())
	if result.Entity != nil {
		fmt.Printf("entity:   %s\n", result.EntityID())
	}
	if result.Target != "" {
		fmt.Printf("target:   %s\n", result.Target)
	}
	if len(result.Modifiers) > 0 {
		fmt.Printf("modifiers: %s\n", strings.Join(result.Modifiers, ", "))
	}
	if len(result.Attributes) > 0 {
		keys := make([]string, 0, len(result.Attributes))
		for k := range result.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if result.Attributes[k] == "" {
				fmt.Printf("  %s\n", k)
				continue
			}
			fmt.Printf("  %s = %s\n", k, result.Attributes[k])
		}
	}
	fmt.Printf("level:    %s\n", result.ContextLevelRequired)
	return nil
}
