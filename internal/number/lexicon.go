package number

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dlclark/regexp2"

	"numunit-service/internal/utils"
)

// lexicon holds the compiled spelled-out vocabulary of a locale.
type lexicon struct {
	words       map[string]float64
	multipliers map[string]float64
	connectors  map[string]bool
	phrase      *regexp2.Regexp // a run of number words
	token       *regexp2.Regexp // one word or connector inside a run
}

type token struct {
	start, end int
	value      float64
	multiplier bool
	connector  bool
}

func compileLexicon(o Options) (*lexicon, error) {
	lx := &lexicon{
		words:       lowerKeys(o.Words),
		multipliers: lowerKeys(o.Multipliers),
		connectors:  map[string]bool{},
	}
	for _, c := range o.Connectors {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			lx.connectors[c] = true
		}
	}
	vocab := make([]string, 0, len(lx.words)+len(lx.multipliers))
	for w := range lx.words {
		vocab = append(vocab, w)
	}
	for w := range lx.multipliers {
		if _, dup := lx.words[w]; !dup {
			vocab = append(vocab, w)
		}
	}
	if len(vocab) == 0 {
		return lx, nil
	}
	alt := alternation(vocab)
	sep := `(?:\s*-\s*|\s+)`
	tok := `(?<![\p{L}])(?:` + alt + `)(?![\p{L}])`
	if len(lx.connectors) > 0 {
		conn := alternation(keys(lx.connectors))
		sep = `(?:\s*-\s*|\s+(?:` + conn + `)\s+|\s+)`
		tok += `|(?<![\p{L}])(?:` + conn + `)(?![\p{L}])`
	}
	var err error
	phrase := `(?<![\p{L}\-])(?:` + alt + `)(?:` + sep + `(?:` + alt + `))*(?![\p{L}])`
	if lx.phrase, err = utils.Compile(phrase, o.MatchTimeout); err != nil {
		return nil, fmt.Errorf("number: compile word pattern: %w", err)
	}
	if lx.token, err = utils.Compile(tok, o.MatchTimeout); err != nil {
		return nil, fmt.Errorf("number: compile token pattern: %w", err)
	}
	return lx, nil
}

// alternation orders entries longest first so "quatre-vingt-dix" wins over "quatre".
func alternation(list []string) string {
	sorted := slices.Clone(list)
	slices.SortFunc(sorted, func(a, b string) int {
		if c := cmp.Compare(len([]rune(b)), len([]rune(a))); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for i, s := range sorted {
		sorted[i] = utils.Escape(s)
	}
	return strings.Join(sorted, "|")
}

func (lx *lexicon) tokens(text []rune) []token {
	spans := utils.FindAll(lx.token, text)
	out := make([]token, 0, len(spans))
	for _, s := range spans {
		w := strings.ToLower(s.Value)
		t := token{start: s.Index, end: s.End()}
		switch {
		case lx.connectors[w]:
			t.connector = true
		default:
			if v, ok := lx.words[w]; ok {
				t.value = v
			} else if m, ok := lx.multipliers[w]; ok {
				t.value, t.multiplier = m, true
			} else {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// numeral is one spelled-out number cut out of a phrase.
type numeral struct {
	start, end int
	value      float64
}

// split cuts a run of number words into numerals. "five twenty" is two
// numerals; "one hundred and five" is one. A connector or an adjacent word is
// accepted only when it continues a smaller order of magnitude.
func (lx *lexicon) split(text []rune) []numeral {
	var (
		out     []numeral
		cur     *numeral
		total   float64
		current float64
		prev    float64
		words   int
		onlyMul = true
	)
	flush := func() {
		// a lone "hundred" or "mille" is not a number by itself
		if cur != nil && !(words == 1 && onlyMul) {
			cur.value = total + current
			out = append(out, *cur)
		}
		cur, total, current, prev, words, onlyMul = nil, 0, 0, 0, 0, true
	}
	for _, t := range lx.tokens(text) {
		if t.connector {
			continue
		}
		if cur != nil && !continues(prev, t) {
			flush()
		}
		if cur == nil {
			cur = &numeral{start: t.start}
		}
		if t.multiplier {
			if current == 0 {
				current = 1
			}
			if t.value == 100 {
				current *= 100
			} else {
				total += current * t.value
				current = 0
			}
		} else {
			current += t.value
			onlyMul = false
		}
		prev = t.value
		cur.end = t.end
		words++
	}
	flush()
	return out
}

func continues(prev float64, t token) bool {
	if t.multiplier {
		return true
	}
	return t.value < prev && magnitude(t.value) < magnitude(prev)
}

func magnitude(v float64) int {
	if v < 1 {
		return 0
	}
	return int(math.Floor(math.Log10(v))) + 1
}

// value evaluates the first numeral of text.
func (lx *lexicon) value(text string) (float64, bool) {
	ns := lx.split([]rune(text))
	if len(ns) == 0 {
		return 0, false
	}
	return ns[0].value, true
}

func lowerKeys(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
