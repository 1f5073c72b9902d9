package parser

import "strings"

// TokenKind classifies raw tokens before word matching.
type TokenKind int

const (
	// TokenBare is a plain whitespace-delimited token.
	TokenBare TokenKind = iota
	// TokenPair is a key=value token, kept atomic by the tokenizer and
	// split once on the first '='.
	TokenPair
)

// Token is one raw token from the input line.
type Token struct {
	Text     string // original token text
	Kind     TokenKind
	Key      string // left of the first '=', pairs only
	Value    string // right of the first '=', verbatim, pairs only
	Position int    // index in the token sequence
}

// Tokenize splits a line into raw tokens. Splitting is whitespace-only; a
// contiguous key=value substring stays one token. Values containing
// whitespace are a documented limitation of the input grammar, as are
// values that themselves contain '=' beyond the first (everything after
// the first '=' is kept verbatim). A leading "--" on a pair is stripped
// for compatibility with flag-style input. Empty input yields an empty
// sequence.
func Tokenize(line string) []Token {
	fields := strings.Fields(line)
	tokens := make([]Token, 0, len(fields))
	for i, field := range fields {
		clean := strings.TrimPrefix(field, "--")
		if idx := strings.Index(clean, "="); idx >= 0 {
			tokens = append(tokens, Token{
				Text:     field,
				Kind:     TokenPair,
				Key:      clean[:idx],
				Value:    strings.Trim(clean[idx+1:], `"'`),
				Position: i,
			})
			continue
		}
		tokens = append(tokens, Token{Text: clean, Kind: TokenBare, Position: i})
	}
	return tokens
}
