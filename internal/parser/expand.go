package parser

import "strings"

// Expand rewrites a line whose leading token matches a registered shortcut
// trigger, substituting the trigger with its full expansion and preserving
// the remaining tokens. Only the leading token is eligible; shortcuts
// never apply mid-line. Expansion is idempotent because triggers may not
// collide with word IDs, so an expanded line never starts with a trigger.
func (p *Parser) Expand(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return line
	}

	shortcut := p.registry.Shortcut(fields[0])
	if shortcut == nil {
		return line
	}

	expanded := make([]string, 0, len(shortcut.Expansion)+len(fields)-1)
	expanded = append(expanded, shortcut.Expansion...)
	expanded = append(expanded, fields[1:]...)
	return strings.Join(expanded, " ")
}
