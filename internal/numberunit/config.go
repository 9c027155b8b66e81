package numberunit

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"numunit-service/internal/utils"
)

// SurfaceForms binds a canonical unit to its pipe-delimited surface forms,
// e.g. {"Dollar", "dollars|dollar|$"}.
type SurfaceForms struct {
	Unit  string
	Forms string
}

// Tables is the raw locale data a UnitConfiguration is built from.
type Tables struct {
	// BuildPrefix and BuildSuffix wrap every alternation and enforce token
	// boundaries, e.g. `(?<=(\s|^))` and `(?=(\s|\W|$))`.
	BuildPrefix string
	BuildSuffix string
	// ConnectorToken may sit between a number and its unit ("30 de dólares").
	ConnectorToken string
	// CompoundConnector joins two quantities into one ("and").
	CompoundConnector string
	// AmbiguousTimeGuard matches clock times such as "2:00 pm".
	AmbiguousTimeGuard string

	Prefixes  []SurfaceForms
	Suffixes  []SurfaceForms
	Ambiguous []string

	// Currency only.
	ISOCodes         map[string]string  // canonical unit -> ISO code
	FractionalCodes  map[string]string  // canonical unit -> fraction code ("Cent" -> "CENT")
	FractionMapping  map[string]string  // ISO code -> "CENT|..." fraction codes allowed
	FractionalRatios map[string]float64 // canonical unit -> units per main unit

	MatchTimeout time.Duration
}

// UnitConfiguration is the compiled, immutable form of Tables for one locale
// and unit kind. It is safe for concurrent use.
type UnitConfiguration struct {
	locale    string
	kind      Kind
	connector string

	prefixes     []*regexp2.Regexp
	suffixes     []*regexp2.Regexp
	maxPrefixLen int
	maxSuffixLen int
	standalone   *regexp2.Regexp
	compound     *regexp2.Regexp
	timeGuard    *regexp2.Regexp

	units            map[string]string
	isoCodes         map[string]string
	fractionalCodes  map[string]string
	fractionMapping  map[string]string
	fractionalRatios map[string]float64
}

// Build compiles t. It is the only fallible step of the engine; it fails when a
// template or surface form cannot be compiled.
func Build(locale string, kind Kind, t Tables) (*UnitConfiguration, error) {
	c := &UnitConfiguration{
		locale:           strings.ToLower(locale),
		kind:             kind,
		connector:        strings.TrimSpace(t.ConnectorToken),
		units:            map[string]string{},
		isoCodes:         copyMap(t.ISOCodes),
		fractionalCodes:  copyMap(t.FractionalCodes),
		fractionMapping:  copyMap(t.FractionMapping),
		fractionalRatios: copyMap(t.FractionalRatios),
	}
	fail := func(unit, pattern string, err error) error {
		return &ConfigError{Locale: c.locale, Kind: kind, Unit: unit, Pattern: pattern, Err: err}
	}
	if len(t.Prefixes) == 0 && len(t.Suffixes) == 0 {
		return nil, fail("", "", ErrNoSurfaceForms)
	}
	compile := func(unit, pattern string) (*regexp2.Regexp, error) {
		re, err := utils.Compile(pattern, t.MatchTimeout)
		if err != nil {
			return nil, fail(unit, pattern, err)
		}
		return re, nil
	}
	wrap := func(forms []string) string {
		quoted := make([]string, len(forms))
		for i, f := range forms {
			quoted[i] = utils.Escape(f)
		}
		return t.BuildPrefix + "(" + strings.Join(quoted, "|") + ")" + t.BuildSuffix
	}

	var err error
	for _, sf := range t.Prefixes {
		forms := splitForms(sf.Forms)
		if len(forms) == 0 {
			continue
		}
		re, err := compile(sf.Unit, wrap(forms))
		if err != nil {
			return nil, err
		}
		c.prefixes = append(c.prefixes, re)
		for _, f := range forms {
			c.maxPrefixLen = max(c.maxPrefixLen, utf8.RuneCountInString(f))
		}
	}
	if len(c.prefixes) > 0 {
		// room for the blank between prefix and number
		c.maxPrefixLen += 2
	}
	for _, sf := range t.Suffixes {
		forms := splitForms(sf.Forms)
		if len(forms) == 0 {
			continue
		}
		re, err := compile(sf.Unit, wrap(forms))
		if err != nil {
			return nil, err
		}
		c.suffixes = append(c.suffixes, re)
		for _, f := range forms {
			c.maxSuffixLen = max(c.maxSuffixLen, utf8.RuneCountInString(f))
		}
	}

	if forms := standaloneForms(t); len(forms) > 0 {
		if c.standalone, err = compile("", wrap(forms)); err != nil {
			return nil, err
		}
	}
	if t.CompoundConnector != "" {
		if c.compound, err = compile("", t.CompoundConnector); err != nil {
			return nil, err
		}
	}
	if t.AmbiguousTimeGuard != "" {
		if c.timeGuard, err = compile("", t.AmbiguousTimeGuard); err != nil {
			return nil, err
		}
	}

	// suffixes bind first, then prefixes; the first binding of a form wins
	for _, sf := range append(append([]SurfaceForms{}, t.Suffixes...), t.Prefixes...) {
		if strings.TrimSpace(sf.Unit) == "" {
			continue
		}
		for _, f := range splitForms(sf.Forms) {
			if _, ok := c.units[f]; !ok {
				c.units[f] = sf.Unit
			}
		}
	}
	return c, nil
}

// MustBuild is Build for static tables; it panics on error.
func MustBuild(locale string, kind Kind, t Tables) *UnitConfiguration {
	c, err := Build(locale, kind, t)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *UnitConfiguration) Locale() string { return c.locale }
func (c *UnitConfiguration) Kind() Kind     { return c.kind }

// HasPrefixes reports whether any unit is written before its number.
func (c *UnitConfiguration) HasPrefixes() bool { return c.maxPrefixLen > 0 }

// Unit resolves a surface form: exact case first, then lower case.
func (c *UnitConfiguration) Unit(form string) (string, bool) {
	if u, ok := c.units[form]; ok {
		return u, true
	}
	u, ok := c.units[strings.ToLower(form)]
	return u, ok
}

// ISOCode returns the ISO code of a canonical currency, including internal
// "_"-prefixed placeholders.
func (c *UnitConfiguration) ISOCode(unit string) (string, bool) {
	code, ok := c.isoCodes[unit]
	return code, ok && code != ""
}

// splitForms trims the pipe-delimited forms and drops blanks and duplicates.
func splitForms(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, "|") {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// standaloneForms is every prefix and suffix form, minus ambiguous words and
// hyphen-led forms ("-year-old"), ordered for the alternation.
func standaloneForms(t Tables) []string {
	ambiguous := map[string]bool{}
	for _, a := range t.Ambiguous {
		ambiguous[strings.TrimSpace(a)] = true
	}
	seen := map[string]bool{}
	var out []string
	for _, sf := range append(append([]SurfaceForms{}, t.Prefixes...), t.Suffixes...) {
		for _, f := range splitForms(sf.Forms) {
			if strings.HasPrefix(f, "-") || ambiguous[f] || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	sortSurfaceForms(out)
	return out
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// isPlaceholderISO reports internal codes such as "__D" that are not ISO 4217.
func isPlaceholderISO(code string) bool {
	return code == "" || strings.HasPrefix(code, "_")
}
