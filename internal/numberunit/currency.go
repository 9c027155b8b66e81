package numberunit

import (
	"slices"
	"strings"

	"numunit-service/internal/utils"
)

// CurrencyParser adds ISO codes and folds fractional sub-units of a compound
// ("3 dollars and 50 cents" -> 3.5 Dollar USD).
type CurrencyParser struct {
	*UnitParser
}

func NewCurrencyParser(cfg *UnitConfiguration, nums NumberParser) *CurrencyParser {
	return &CurrencyParser{UnitParser: NewUnitParser(cfg, nums)}
}

func (p *CurrencyParser) Parse(er ExtractResult) ParseResult {
	if !er.Compound() {
		ret := p.UnitParser.Parse(er)
		if ret.Value != nil && ret.Value.Unit != "" {
			if code, ok := p.cfg.ISOCode(ret.Value.Unit); ok && !isPlaceholderISO(code) {
				ret.Value.ISOCurrency = code
			}
		}
		return ret
	}
	ret := ParseResult{ExtractResult: er, Parts: p.parseCompound(er)}
	if len(ret.Parts) > 0 {
		first := ret.Parts[0]
		ret.Value, ret.Resolution = first.Value, first.Resolution
		ret.amount, ret.hasAmount = first.amount, first.hasAmount
	}
	return ret
}

// group accumulates one closed compound value.
type group struct {
	start, end int
	total      float64
	hasTotal   bool
	unit       string
	iso        string
	fractions  []string
}

// parseCompound walks the children left to right. The first currency child
// opens a group; bare numerals add hundredths; a fractional sub-unit of the
// group's currency adds its share; anything else closes the group and is
// looked at again as the start of the next one.
func (p *CurrencyParser) parseCompound(er ExtractResult) []ParseResult {
	src := []rune(er.Text)
	var (
		out []ParseResult
		cur *group
	)
	closeGroup := func() {
		if cur == nil {
			return
		}
		val := &Value{Unit: cur.unit}
		if cur.hasTotal {
			val.Number = utils.FormatFloat(cur.total)
		}
		if !isPlaceholderISO(cur.iso) {
			val.ISOCurrency = cur.iso
		}
		start, end := cur.start-er.Start, cur.end-er.Start
		out = append(out, ParseResult{
			ExtractResult: ExtractResult{
				Start:  cur.start,
				Length: cur.end - cur.start,
				Text:   string(src[start:end]),
				Type:   Currency.TypeName(),
			},
			Value:      val,
			Resolution: strings.TrimSpace(val.Number + " " + cur.unit),
			amount:     cur.total,
			hasAmount:  cur.hasTotal,
		})
		cur = nil
	}

	for i := 0; i < len(er.Children); i++ {
		child := er.Children[i]
		if cur == nil {
			if child.Type != Currency.TypeName() {
				continue
			}
			res := p.UnitParser.Parse(child)
			if res.Value == nil {
				continue
			}
			cur = &group{start: child.Start, end: child.End(), unit: res.Value.Unit}
			cur.total, cur.hasTotal = res.amount, res.hasAmount
			cur.iso, _ = p.cfg.ISOCode(cur.unit)
			if cur.iso == "" {
				closeGroup()
				continue
			}
			cur.fractions = strings.Split(p.cfg.fractionMapping[cur.iso], "|")
			continue
		}

		if child.Type == TypeNumber {
			if v, ok := p.parseNumber(child.Number); ok {
				cur.total += v.Number / 100
				cur.hasTotal = true
				cur.end = child.End()
			}
			continue
		}

		res := p.UnitParser.Parse(child)
		var unit string
		if res.Value != nil {
			unit = res.Value.Unit
		}
		code := p.cfg.fractionalCodes[unit]
		ratio := p.cfg.fractionalRatios[unit]
		if code != "" && ratio != 0 && res.hasAmount && slices.Contains(cur.fractions, code) {
			cur.total += res.amount / ratio
			cur.hasTotal = true
			cur.end = child.End()
			continue
		}
		// not a sub-unit of this currency: close and restart on the same child
		closeGroup()
		i--
	}
	closeGroup()
	return out
}
