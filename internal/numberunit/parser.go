package numberunit

import (
	"strings"
	"unicode"

	"numunit-service/internal/number"
)

// UnitParser resolves the unit of an extracted span to its canonical name.
type UnitParser struct {
	cfg  *UnitConfiguration
	nums NumberParser
}

func NewUnitParser(cfg *UnitConfiguration, nums NumberParser) *UnitParser {
	return &UnitParser{cfg: cfg, nums: nums}
}

// Parse never fails: an unresolved unit leaves Value nil.
func (p *UnitParser) Parse(er ExtractResult) ParseResult {
	ret := ParseResult{ExtractResult: er}
	if er.Type == TypeNumber {
		if er.Number != nil {
			if v, ok := p.nums.Parse(*er.Number); ok {
				ret.Value = &Value{Number: v.Text}
				ret.Resolution = v.Text
				ret.amount, ret.hasAmount = v.Number, true
			}
		}
		return ret
	}

	key, ok := p.unitKey(er)
	if !ok {
		return ret
	}
	unit, ok := p.cfg.Unit(key)
	if !ok {
		return ret
	}
	val := &Value{Unit: unit}
	if er.Number != nil {
		if v, ok := p.nums.Parse(*er.Number); ok {
			val.Number = v.Text
			ret.amount, ret.hasAmount = v.Number, true
		}
	}
	ret.Value = val
	ret.Resolution = strings.TrimSpace(val.Number + " " + unit)
	return ret
}

// unitKey cuts the span into the text around its numeral and returns the last
// piece, without a leading connector token ("de dólares" -> "dólares").
func (p *UnitParser) unitKey(er ExtractResult) (string, bool) {
	text := []rune(er.Text)
	numStart, numEnd := -1, -1
	if er.Number != nil {
		numStart, numEnd = er.Number.Start, er.Number.End()
	}
	var keys []string
	add := func(k string) {
		k = strings.TrimSpace(k)
		if k == "" {
			return
		}
		for _, existing := range keys {
			if strings.Contains(existing, k) {
				return
			}
		}
		keys = append(keys, k)
	}
	var buf strings.Builder
	for i := 0; i < len(text); i++ {
		if i == numStart {
			add(buf.String())
			buf.Reset()
			i = numEnd - 1
			continue
		}
		buf.WriteRune(text[i])
	}
	add(buf.String())
	if len(keys) == 0 {
		return "", false
	}
	return p.stripConnector(keys[len(keys)-1]), true
}

func (p *UnitParser) stripConnector(key string) string {
	c := p.cfg.connector
	if c == "" {
		return key
	}
	r := []rune(key)
	n := len([]rune(c))
	if len(r) > n && strings.EqualFold(string(r[:n]), c) && unicode.IsSpace(r[n]) {
		return strings.TrimSpace(string(r[n:]))
	}
	return key
}

// parseNumber is used by the currency parser for bare numerals.
func (p *UnitParser) parseNumber(n *number.Result) (number.Value, bool) {
	if n == nil {
		return number.Value{}, false
	}
	return p.nums.Parse(*n)
}
