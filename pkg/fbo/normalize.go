package fbo

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// genericTokens are substrings carrying no identity: "Signature Aviation",
// "Signature FBO" and "Signature" all name the same facility.
var genericTokens = []string{"aviation", "fbo"}

// Normalize canonicalizes a facility name into a comparison key: lower-case,
// generic tokens removed, whitespace trimmed and collapsed. Idempotent, so
// keys can safely be re-normalized. Empty input yields empty output.
func Normalize(name string) string {
	s := strings.ToLower(name)

	// Removing a token can expose another ("fbofbo"), so repeat until the
	// string is stable.
	for {
		before := s
		for _, tok := range genericTokens {
			s = strings.ReplaceAll(s, tok, "")
		}
		if s == before {
			break
		}
	}

	// Fields splits on any whitespace run, which both trims and collapses.
	return strings.Join(strings.Fields(s), " ")
}

// DisplayName fixes shouty names from bulk sources: an all-uppercase name is
// title-cased, anything else is returned as entered.
func DisplayName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return trimmed
	}
	if trimmed != strings.ToUpper(trimmed) || trimmed == strings.ToLower(trimmed) {
		return trimmed
	}
	return cases.Title(language.English).String(strings.ToLower(trimmed))
}
