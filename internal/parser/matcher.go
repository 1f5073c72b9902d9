package parser

import (
	"sort"
	"strings"

	"orgsh/internal/vocabulary"
)

// maxSuggestions bounds the candidate list carried by a MatchSuggestion.
const maxSuggestions = 5

// fuzzyMatch resolves a token approximately against the registry,
// restricted to the given categories. A word matches at the minimum
// distance over its ID and aliases but is always reported by ID.
//
// Returns the word when exactly one candidate lies within the threshold;
// otherwise returns a suggestion listing the in-threshold candidates
// ordered by distance then lexicographically (candidate IDs come out of
// the registry already sorted, so a stable sort on distance preserves the
// tie-break).
func (p *Parser) fuzzyMatch(token string, categories ...vocabulary.Category) (*vocabulary.Word, *MatchSuggestion) {
	lower := strings.ToLower(token)

	type scored struct {
		id       string
		distance int
	}
	var candidates []scored

	for _, id := range p.registry.Candidates(categories...) {
		w := p.registry.Lookup(id)
		best := levenshtein(lower, id, p.maxDistance)
		for _, alias := range w.Aliases {
			if d := levenshtein(lower, strings.ToLower(alias), p.maxDistance); d < best {
				best = d
			}
		}
		if best <= p.maxDistance {
			candidates = append(candidates, scored{id: id, distance: best})
		}
	}

	if len(candidates) == 1 {
		return p.registry.Lookup(candidates[0].id), nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	suggestion := &MatchSuggestion{Token: token}
	for _, c := range candidates {
		if len(suggestion.Candidates) == maxSuggestions {
			break
		}
		suggestion.Candidates = append(suggestion.Candidates, c.id)
	}
	return nil, suggestion
}
