package numberunit

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// sortKey orders surface forms inside an alternation: longest first, then by
// lower-cased text. "kilometer" is tried before "meter".
type sortKey struct {
	negLen int
	lower  string
}

func keyOf(s string) sortKey {
	return sortKey{negLen: -utf8.RuneCountInString(s), lower: strings.ToLower(s)}
}

func (a sortKey) compare(b sortKey) int {
	if c := cmp.Compare(a.negLen, b.negLen); c != 0 {
		return c
	}
	return cmp.Compare(a.lower, b.lower)
}

func sortSurfaceForms(forms []string) {
	slices.SortStableFunc(forms, func(a, b string) int { return keyOf(a).compare(keyOf(b)) })
}
