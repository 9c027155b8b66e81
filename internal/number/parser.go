package number

import (
	"strings"
	"unicode"

	"numunit-service/internal/utils"
)

// Parser turns numerals found by an Extractor of the same locale into values.
type Parser struct {
	opts Options
	lex  *lexicon
}

func NewParser(opts Options) (*Parser, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	lex, err := compileLexicon(opts)
	if err != nil {
		return nil, err
	}
	return &Parser{opts: opts, lex: lex}, nil
}

// Parse converts a numeral. It reports false when the text is not a numeral.
func (p *Parser) Parse(r Result) (Value, bool) {
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return Value{}, false
	}
	var (
		f  float64
		ok bool
	)
	if strings.ContainsFunc(text, unicode.IsDigit) {
		f, ok = utils.ParseFloatLocale(text, p.opts.GroupSeparator, p.opts.DecimalSeparator)
	} else {
		f, ok = p.lex.value(text)
	}
	if !ok {
		return Value{}, false
	}
	return Value{Number: f, Text: utils.FormatFloat(f)}, true
}
