package numberunit

import (
	"slices"
	"strings"
	"unicode"

	"numunit-service/internal/number"
	"numunit-service/internal/utils"
)

// UnitExtractor finds numbers with an adjacent unit and standalone units.
type UnitExtractor struct {
	cfg  *UnitConfiguration
	nums NumberExtractor
}

func NewUnitExtractor(cfg *UnitConfiguration, nums NumberExtractor) *UnitExtractor {
	return &UnitExtractor{cfg: cfg, nums: nums}
}

// Config returns the configuration the extractor was built with.
func (e *UnitExtractor) Config() *UnitConfiguration { return e.cfg }

type prefixMatch struct {
	offset int // runes between the prefix start and the number start
	text   string
}

// Extract returns non-overlapping unit spans ordered by start.
func (e *UnitExtractor) Extract(text string) []ExtractResult {
	if text == "" {
		return nil
	}
	src := []rune(text)
	nums := e.nums.Extract(text)
	typ := e.cfg.kind.TypeName()
	guard := newTimeGuard(e.cfg, src)

	prefixes := e.prefixes(src, nums)
	var out []ExtractResult
	for _, n := range nums {
		pre, hasPre := prefixes[n.Start]
		if n.End() < len(src) {
			if end := e.suffixEnd(src[n.End():]); end > 0 {
				er := ExtractResult{Start: n.Start, Length: n.Length + end, Type: typ}
				if hasPre {
					er.Start -= pre.offset
					er.Length += pre.offset
				}
				er.Text = string(src[er.Start:er.End()])
				er.Number = localNumber(n, er.Start)
				if e.cfg.kind == Dimension && guard.covers(er.Start, er.Length) {
					continue
				}
				out = append(out, er)
				continue
			}
		}
		if hasPre {
			start := n.Start - pre.offset
			if e.cfg.kind == Dimension && guard.covers(start, n.End()-start) {
				continue
			}
			out = append(out, ExtractResult{
				Start:  start,
				Length: n.Length + pre.offset,
				Text:   string(src[start:n.End()]),
				Type:   typ,
				Number: localNumber(n, start),
			})
		}
	}

	// standalone units may only use runes no attached match took
	mask := make([]bool, len(src))
	for _, er := range out {
		for i := er.Start; i < er.End(); i++ {
			mask[i] = true
		}
	}
	for _, m := range utils.FindAll(e.cfg.standalone, src) {
		if slices.Contains(mask[m.Index:m.End()], true) || guard.covers(m.Index, m.Length) {
			continue
		}
		for i := m.Index; i < m.End(); i++ {
			mask[i] = true
		}
		out = append(out, ExtractResult{Start: m.Index, Length: m.Length, Text: m.Value, Type: typ})
	}
	return resolveOverlaps(out)
}

// prefixes finds, for each number, the leftmost unit prefix ending right
// before it ("$" in "$30", "us $ 30").
func (e *UnitExtractor) prefixes(src []rune, nums []number.Result) map[int]prefixMatch {
	out := map[int]prefixMatch{}
	if e.cfg.maxPrefixLen == 0 {
		return out
	}
	for _, n := range nums {
		window := min(e.cfg.maxPrefixLen, n.Start)
		if window == 0 {
			continue
		}
		left := src[n.Start-window : n.Start]
		best := -1
		for _, re := range e.cfg.prefixes {
			for _, m := range utils.FindAll(re, left) {
				if strings.TrimSpace(string(left[m.Index:])) != m.Value {
					continue
				}
				if best < 0 || m.Index <= best {
					best = m.Index
				}
			}
		}
		if best >= 0 {
			out[n.Start] = prefixMatch{offset: len(left) - best, text: string(left[best:])}
		}
	}
	return out
}

// suffixEnd returns how many runes after a number belong to its unit, 0 when no
// unit follows. Only blanks and the connector token may separate the two.
func (e *UnitExtractor) suffixEnd(right []rune) int {
	right = right[:min(len(right), e.suffixWindow(right))]
	best := 0
	for _, re := range e.cfg.suffixes {
		for _, m := range utils.FindAll(re, right) {
			if m.End() <= best {
				continue
			}
			mid := strings.TrimSpace(string(right[:m.Index]))
			if mid == "" || (e.cfg.connector != "" && strings.EqualFold(mid, e.cfg.connector)) {
				best = m.End()
			}
		}
	}
	return best
}

// suffixWindow bounds the search: leading blanks, an optional connector and
// the longest surface form, plus one rune for the boundary lookahead.
func (e *UnitExtractor) suffixWindow(right []rune) int {
	i := skipSpace(right, 0)
	if c := []rune(e.cfg.connector); len(c) > 0 && i+len(c) <= len(right) &&
		strings.EqualFold(string(right[i:i+len(c)]), e.cfg.connector) {
		i = skipSpace(right, i+len(c))
	}
	return i + e.cfg.maxSuffixLen + 1
}

func skipSpace(r []rune, i int) int {
	for i < len(r) && unicode.IsSpace(r[i]) {
		i++
	}
	return i
}

func localNumber(n number.Result, spanStart int) *number.Result {
	local := n
	local.Start -= spanStart
	return &local
}

// resolveOverlaps keeps the longest of overlapping spans; on equal length the
// earlier one, then the one carrying a number.
func resolveOverlaps(in []ExtractResult) []ExtractResult {
	if len(in) < 2 {
		return in
	}
	slices.SortStableFunc(in, func(a, b ExtractResult) int {
		switch {
		case a.Start != b.Start:
			return a.Start - b.Start
		case a.Length != b.Length:
			return b.Length - a.Length
		case (a.Number != nil) != (b.Number != nil):
			if a.Number != nil {
				return -1
			}
			return 1
		}
		return 0
	})
	out := in[:0:0]
	for _, er := range in {
		if n := len(out); n > 0 && er.Start < out[n-1].End() {
			if er.Length > out[n-1].Length {
				out[n-1] = er
			}
			continue
		}
		out = append(out, er)
	}
	return out
}

// timeGuard holds the clock-time spans ("2:00 pm") of one input.
type timeGuard struct {
	spans []utils.Span
}

func newTimeGuard(cfg *UnitConfiguration, src []rune) timeGuard {
	return timeGuard{spans: utils.FindAll(cfg.timeGuard, src)}
}

func (g timeGuard) covers(start, length int) bool {
	for _, s := range g.spans {
		if start >= s.Index && start+length <= s.End() {
			return true
		}
	}
	return false
}
