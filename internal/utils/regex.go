package utils

import (
	"time"

	"github.com/dlclark/regexp2"
)

// Span is a rune-indexed regex match.
type Span struct {
	Index  int
	Length int
	Value  string
}

// End returns the rune offset right after the match.
func (s Span) End() int { return s.Index + s.Length }

// Compile builds a case-insensitive pattern with an optional match timeout.
func Compile(pattern string, timeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return re, nil
}

// FindAll returns every non-empty match of re in text. A timeout stops the scan
// and returns what was found so far.
func FindAll(re *regexp2.Regexp, text []rune) []Span {
	if re == nil || len(text) == 0 {
		return nil
	}
	var out []Span
	m, err := re.FindRunesMatch(text)
	for err == nil && m != nil {
		if m.Length > 0 {
			out = append(out, Span{Index: m.Index, Length: m.Length, Value: m.String()})
		}
		m, err = re.FindNextMatch(m)
	}
	return out
}

// Last returns the last match of re in text.
func Last(re *regexp2.Regexp, text []rune) (Span, bool) {
	all := FindAll(re, text)
	if len(all) == 0 {
		return Span{}, false
	}
	return all[len(all)-1], true
}

// Escape quotes a literal so it can be embedded in an alternation.
func Escape(s string) string {
	return regexp2.Escape(s)
}
