// Package number finds numerals in text and converts them to values. It is
// driven by per-locale tables: digit separators, spelled-out words and
// multipliers.
package number

import (
	"errors"
	"time"
)

// Kind classifies a numeral.
type Kind int

const (
	Integer Kind = iota
	Double
	Fraction
)

func (k Kind) String() string {
	switch k {
	case Double:
		return "double"
	case Fraction:
		return "fraction"
	default:
		return "integer"
	}
}

// Result is a numeral found in text. Start and Length are rune offsets.
type Result struct {
	Start  int
	Length int
	Text   string
	Kind   Kind
}

// End returns the rune offset right after the numeral.
func (r Result) End() int { return r.Start + r.Length }

// Value is a parsed numeral.
type Value struct {
	Number float64
	// Text is the canonical decimal rendering of Number ("3.5", "1234").
	Text string
}

// Options describes how a locale writes numbers.
type Options struct {
	DecimalSeparator string
	GroupSeparator   string
	// Connectors join spelled-out parts ("and" in "one hundred and five").
	Connectors  []string
	Words       map[string]float64
	Multipliers map[string]float64
	// MatchTimeout bounds every regex match; zero means no limit.
	MatchTimeout time.Duration
}

var (
	ErrNoDecimalSeparator = errors.New("number: decimal separator is required")
	ErrSameSeparators     = errors.New("number: decimal and group separators must differ")
)

func (o Options) validate() error {
	if o.DecimalSeparator == "" {
		return ErrNoDecimalSeparator
	}
	if o.DecimalSeparator == o.GroupSeparator {
		return ErrSameSeparators
	}
	return nil
}
