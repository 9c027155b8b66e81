package resources

import (
	"fmt"
	"strings"
)

// Kinds lists the unit kinds a locale file may define, in registration order.
var Kinds = []string{"currency", "dimension", "temperature", "age"}

// Numbers describes how a locale writes numerals.
type Numbers struct {
	DecimalSeparator string             `yaml:"decimal_separator"`
	GroupSeparator   string             `yaml:"group_separator"`
	Connectors       []string           `yaml:"connectors"`
	Words            map[string]float64 `yaml:"words"`
	Multipliers      map[string]float64 `yaml:"multipliers"`
}

// Units holds the surface forms of one unit kind.
type Units struct {
	Prefixes  Table    `yaml:"prefixes"`
	Suffixes  Table    `yaml:"suffixes"`
	Ambiguous []string `yaml:"ambiguous"`
}

// Locale is one culture file.
type Locale struct {
	Code              string           `yaml:"locale"`
	Name              string           `yaml:"name"`
	BuildPrefix       string           `yaml:"build_prefix"`
	BuildSuffix       string           `yaml:"build_suffix"`
	ConnectorToken    string           `yaml:"connector_token"`
	CompoundConnector string           `yaml:"compound_connector"`
	Numbers           Numbers          `yaml:"numbers"`
	CurrencyISOCodes  Table            `yaml:"currency_iso_codes"`
	FractionalCodes   Table            `yaml:"fractional_unit_codes"`
	Units             map[string]Units `yaml:"units"`
}

// Base holds the locale independent tables.
type Base struct {
	AmbiguousTimeGuard       string             `yaml:"ambiguous_time_guard"`
	CurrencyFractionMapping  Table              `yaml:"currency_fraction_mapping"`
	CurrencyFractionalRatios map[string]float64 `yaml:"currency_fractional_ratios"`
}

// Language returns the base language subtag: "es" for "es-es".
func (l *Locale) Language() string {
	lang, _, _ := strings.Cut(l.Code, "-")
	return lang
}

// UnitKinds returns the kinds defined by the locale, in registration order.
func (l *Locale) UnitKinds() []string {
	var out []string
	for _, k := range Kinds {
		if u, ok := l.Units[k]; ok && (len(u.Prefixes) > 0 || len(u.Suffixes) > 0) {
			out = append(out, k)
		}
	}
	return out
}

// UnitTables returns the surface forms of kind.
func (l *Locale) UnitTables(kind string) (Units, error) {
	u, ok := l.Units[kind]
	if !ok || (len(u.Prefixes) == 0 && len(u.Suffixes) == 0) {
		return Units{}, fmt.Errorf("%w: %s/%s", ErrMissingTable, l.Code, kind)
	}
	return u, nil
}

func (l *Locale) validate() error {
	var missing []string
	if l.Code == "" {
		missing = append(missing, "locale")
	}
	if l.BuildPrefix == "" {
		missing = append(missing, "build_prefix")
	}
	if l.BuildSuffix == "" {
		missing = append(missing, "build_suffix")
	}
	if l.CompoundConnector == "" {
		missing = append(missing, "compound_connector")
	}
	if l.Numbers.DecimalSeparator == "" {
		missing = append(missing, "numbers.decimal_separator")
	}
	if len(l.UnitKinds()) == 0 {
		missing = append(missing, "units")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidLocale, strings.Join(missing, ", "))
	}
	return nil
}
