package numberunit

import (
	"slices"
	"strings"
	"unicode"

	"numunit-service/internal/number"
	"numunit-service/internal/utils"
)

// MergedExtractor groups adjacent currency spans joined by the compound
// connector ("3 dollars and 50 cents") into one span whose Children are the
// members. Other kinds pass through the inner extractor unchanged.
type MergedExtractor struct {
	inner *UnitExtractor
}

func NewMergedExtractor(inner *UnitExtractor) *MergedExtractor {
	return &MergedExtractor{inner: inner}
}

func (e *MergedExtractor) Extract(text string) []ExtractResult {
	if e.inner.cfg.kind != Currency {
		return e.inner.Extract(text)
	}
	return e.mergeCompound(text)
}

func (e *MergedExtractor) mergeCompound(text string) []ExtractResult {
	src := []rune(text)
	ers := e.mergePureNumbers(src, e.inner.Extract(text))
	if len(ers) == 0 {
		return nil
	}

	groups := make([]int, len(ers))
	for i := 0; i+1 < len(ers); i++ {
		a, b := ers[i], ers[i+1]
		switch {
		case a.Type != b.Type && a.Type != TypeNumber && b.Type != TypeNumber:
			groups[i+1] = groups[i] + 1
		case a.Type != TypeNumber && a.Number != nil && a.Number.Kind != number.Integer:
			// "3.5 dollars and 20 cents" stays apart
			groups[i+1] = groups[i] + 1
		case e.joins(src[a.End():b.Start]):
			groups[i+1] = groups[i]
		default:
			groups[i+1] = groups[i] + 1
		}
	}

	var out []ExtractResult
	for i, er := range ers {
		if i == 0 || groups[i] != groups[i-1] {
			out = append(out, er)
			continue
		}
		g := &out[len(out)-1]
		if !g.Compound() {
			first := *g
			g.Children = []ExtractResult{first}
			g.Number = nil
		}
		g.Children = append(g.Children, er)
		g.Length = er.End() - g.Start
		g.Text = string(src[g.Start:er.End()])
		g.Type = Currency.TypeName()
	}
	return slices.DeleteFunc(out, func(er ExtractResult) bool { return er.Type == TypeNumber })
}

// joins reports whether the gap between two spans is empty or is exactly the
// compound connector.
func (e *MergedExtractor) joins(gap []rune) bool {
	mid := strings.ToLower(strings.TrimSpace(string(gap)))
	if mid == "" {
		return true
	}
	m, ok := utils.Last(e.inner.cfg.compound, []rune(mid))
	return ok && m.Index == 0 && m.Length == len([]rune(mid))
}

// mergePureNumbers adds bare numerals that continue a currency span, like the
// "50" in "3 dollars and 50". A numeral followed by a word is left out: it
// carries its own unit ("2 meters").
func (e *MergedExtractor) mergePureNumbers(src []rune, ers []ExtractResult) []ExtractResult {
	var extra []ExtractResult
	j := 0
	for _, n := range e.inner.nums.Extract(string(src)) {
		behind := false
		for j < len(ers) && ers[j].End() < n.Start {
			j++
			behind = true
		}
		if !behind || followedByWord(src, n.End()) {
			continue
		}
		if !e.joins(src[ers[j-1].End():n.Start]) {
			continue
		}
		if slices.ContainsFunc(ers, func(er ExtractResult) bool { return er.Start <= n.Start && n.Start <= er.End() }) {
			continue
		}
		extra = append(extra, ExtractResult{
			Start:  n.Start,
			Length: n.Length,
			Text:   n.Text,
			Type:   TypeNumber,
			Number: localNumber(n, n.Start),
		})
	}
	if len(extra) == 0 {
		return ers
	}
	out := append(slices.Clone(ers), extra...)
	slices.SortStableFunc(out, func(a, b ExtractResult) int { return a.Start - b.Start })
	return out
}

func followedByWord(src []rune, end int) bool {
	i := skipSpace(src, end)
	return i < len(src) && unicode.IsLetter(src[i])
}
