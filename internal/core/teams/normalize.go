package teams

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalizer maps team-name spellings onto one canonical name so a
// team's history is not split across season files.
type Normalizer struct {
	aliases map[string]string // key() of a spelling -> canonical name
}

// NewNormalizer builds a Normalizer from spelling -> canonical pairs.
// Spellings are matched case-, accent- and whitespace-insensitively.
func NewNormalizer(aliases map[string]string) *Normalizer {
	n := &Normalizer{aliases: make(map[string]string, len(aliases))}
	for spelling, canonical := range aliases {
		n.aliases[Key(spelling)] = strings.TrimSpace(canonical)
	}
	return n
}

// Canonical returns the alias target for s, or s with surrounding and
// repeated whitespace removed when no alias matches.
func (n *Normalizer) Canonical(s string) string {
	s = collapseWhitespace(strings.TrimSpace(s))
	if n == nil || s == "" {
		return s
	}
	if canonical, ok := n.aliases[Key(s)]; ok {
		return canonical
	}
	return s
}

// Key lowercases, strips diacritics and collapses whitespace.
func Key(s string) string {
	if s == "" {
		return ""
	}
	s = stripDiacritics(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return collapseWhitespace(s)
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing (combining accents)
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
