// Package numberunit recognizes quantities with units ("25 years old", "$30",
// "3 dollars and 50 cents") in free text and resolves them to a number and a
// canonical unit. Everything locale specific comes from a UnitConfiguration.
//
// All offsets are rune offsets into the input text.
package numberunit

import (
	"fmt"
	"strings"

	"numunit-service/internal/number"
)

// Kind is the unit family a configuration recognizes.
type Kind int

const (
	Currency Kind = iota
	Dimension
	Temperature
	Age
)

// Kinds lists every unit kind in registration order.
var Kinds = []Kind{Currency, Dimension, Temperature, Age}

// TypeNumber tags a bare numeral pulled into a currency compound.
const TypeNumber = "builtin.num"

func (k Kind) String() string {
	switch k {
	case Currency:
		return "currency"
	case Dimension:
		return "dimension"
	case Temperature:
		return "temperature"
	case Age:
		return "age"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// TypeName is the extract result type, e.g. "builtin.unit.currency".
func (k Kind) TypeName() string { return "builtin.unit." + k.String() }

// ParseKind accepts "currency", "Currency" or "builtin.unit.currency".
func ParseKind(s string) (Kind, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "builtin.unit.")
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseKinds parses comma separated kind lists ("currency, age"); blanks are skipped.
func ParseKinds(lists ...string) ([]Kind, error) {
	var kinds []Kind
	for _, list := range lists {
		for _, name := range strings.Split(list, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			k, err := ParseKind(name)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

// ExtractResult is a located span before its unit is resolved.
type ExtractResult struct {
	Start  int
	Length int
	Text   string
	Type   string
	// Number is the numeral inside the span, with Start relative to the span.
	// It is nil for a unit found without a number.
	Number *number.Result
	// Children holds the members of a merged compound, in source order.
	Children []ExtractResult
}

// End returns the rune offset right after the span.
func (r ExtractResult) End() int { return r.Start + r.Length }

// Compound reports whether r is a merged group.
func (r ExtractResult) Compound() bool { return len(r.Children) > 0 }

// Value is a resolved quantity.
type Value struct {
	// Number is the decimal text of the amount; empty for a unit without a number.
	Number string `json:"number"`
	Unit   string `json:"unit,omitempty"`
	// ISOCurrency is set for currencies with a real ISO 4217 code.
	ISOCurrency string `json:"isoCurrency,omitempty"`
}

// ParseResult is an ExtractResult with its resolved value. Value is nil when
// no unit could be resolved.
type ParseResult struct {
	ExtractResult
	Value      *Value
	Resolution string
	// Parts holds one result per closed group when a currency compound is
	// parsed. It is empty otherwise.
	Parts []ParseResult

	amount    float64
	hasAmount bool
}

// Amount returns the numeric value behind Value.Number.
func (p ParseResult) Amount() (float64, bool) { return p.amount, p.hasAmount }

// NumberExtractor finds numerals.
type NumberExtractor interface {
	Extract(text string) []number.Result
}

// NumberParser converts numerals found by a NumberExtractor.
type NumberParser interface {
	Parse(r number.Result) (number.Value, bool)
}

// Extractor finds unit spans in text.
type Extractor interface {
	Extract(text string) []ExtractResult
}

// Parser resolves an extracted span.
type Parser interface {
	Parse(r ExtractResult) ParseResult
}
