// Package topic canonicalizes free-text queries into stable topic keys so
// that different phrasings of the same underlying need ("notes for os",
// "os notes") collapse into one demand bucket.
package topic

import (
	"sort"
	"strings"
)

// stopwords dropped during normalization: connective words that carry no
// topical signal.
var stopwords = map[string]struct{}{
	"on": {}, "for": {}, "in": {}, "the": {}, "a": {},
	"an": {}, "and": {}, "of": {}, "to": {},
}

// Normalize maps a raw query to its canonical topic key: lowercase, strip
// everything but letters/digits/whitespace, drop stopwords, sort the
// remaining tokens, join with single spaces. Pure and idempotent. The
// empty string is a legal key (query was all stopwords or punctuation).
func Normalize(query string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(query) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if _, skip := stopwords[w]; !skip {
			kept = append(kept, w)
		}
	}
	sort.Strings(kept)

	return strings.Join(kept, " ")
}
