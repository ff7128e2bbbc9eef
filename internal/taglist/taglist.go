// Package taglist encodes and decodes the comma-joined tag string stored on
// each document.
//
// The canonical form is lowercase, trimmed tokens with empties dropped and
// duplicates removed, first occurrence wins. Every function here returns the
// canonical form, so callers rewriting a document never reintroduce noise.
package taglist

import "strings"

// Sep separates tokens in the stored string.
const Sep = ","

// Normalize trims and lowercases a single tag value.
func Normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// Parse splits a stored or user-supplied tag string into canonical tokens.
// An empty or all-separator string yields nil.
func Parse(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range strings.Split(s, Sep) {
		tok = Normalize(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Join canonicalises tokens and joins them with Sep.
func Join(tokens []string) string {
	return strings.Join(Parse(strings.Join(tokens, Sep)), Sep)
}

// Canonical rewrites s into its canonical form.
func Canonical(s string) string {
	return strings.Join(Parse(s), Sep)
}

// Contains reports whether s has value as a whole token.
func Contains(s, value string) bool {
	value = Normalize(value)
	for _, tok := range Parse(s) {
		if tok == value {
			return true
		}
	}
	return false
}

// Replace swaps every token equal to old with new, then canonicalises.
// Renaming onto a token already present collapses the two.
func Replace(s, old, new string) string {
	old, new = Normalize(old), Normalize(new)
	toks := Parse(s)
	for i, tok := range toks {
		if tok == old {
			toks[i] = new
		}
	}
	return Join(toks)
}

// Remove drops every token equal to value.
func Remove(s, value string) string {
	value = Normalize(value)
	toks := Parse(s)
	out := toks[:0]
	for _, tok := range toks {
		if tok != value {
			out = append(out, tok)
		}
	}
	return strings.Join(out, Sep)
}
