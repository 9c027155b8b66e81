package number

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"numunit-service/internal/utils"
)

// Extractor finds digit and spelled-out numerals.
type Extractor struct {
	opts   Options
	digits *regexp2.Regexp
	lex    *lexicon
}

// NewExtractor compiles the numeral patterns for a locale.
func NewExtractor(opts Options) (*Extractor, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	digits, err := utils.Compile(digitPattern(opts), opts.MatchTimeout)
	if err != nil {
		return nil, fmt.Errorf("number: compile digit pattern: %w", err)
	}
	lex, err := compileLexicon(opts)
	if err != nil {
		return nil, err
	}
	return &Extractor{opts: opts, digits: digits, lex: lex}, nil
}

// digitPattern matches "1,234.56", "-3", "3/4" with the locale separators. A
// numeral glued to a letter, digit or separator on its left is not taken.
func digitPattern(o Options) string {
	d := utils.Escape(o.DecimalSeparator)
	var b strings.Builder
	b.WriteString(`(?<![\p{L}0-9`)
	b.WriteString(classEscape(o.DecimalSeparator))
	b.WriteString(classEscape(o.GroupSeparator))
	b.WriteString(`])(?:(?<=^|\s)-)?(?:`)
	if o.GroupSeparator != "" {
		b.WriteString(`[0-9]{1,3}(?:` + utils.Escape(o.GroupSeparator) + `[0-9]{3})+(?![0-9])|`)
	}
	b.WriteString(`[0-9]+)(?:` + d + `[0-9]+)?(?:/[0-9]+)?`)
	return b.String()
}

func classEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', ']', '[', '^', '-':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Extract returns numerals ordered by start.
func (e *Extractor) Extract(text string) []Result {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	var out []Result
	for _, m := range utils.FindAll(e.digits, runes) {
		kind := Integer
		switch {
		case strings.Contains(m.Value, "/"):
			kind = Fraction
		case strings.Contains(m.Value, e.opts.DecimalSeparator):
			kind = Double
		}
		out = append(out, Result{Start: m.Index, Length: m.Length, Text: m.Value, Kind: kind})
	}
	for _, m := range utils.FindAll(e.lex.phrase, runes) {
		phrase := runes[m.Index:m.End()]
		for _, n := range e.lex.split(phrase) {
			out = append(out, Result{
				Start:  m.Index + n.start,
				Length: n.end - n.start,
				Text:   string(phrase[n.start:n.end]),
				Kind:   Integer,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
