package numberunit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"numunit-service/internal/number"
	"numunit-service/internal/numberunit"
	"numunit-service/internal/resources"
)

func forms(t resources.Table) []numberunit.SurfaceForms {
	out := make([]numberunit.SurfaceForms, 0, len(t))
	for _, e := range t {
		out = append(out, numberunit.SurfaceForms{Unit: e.Key, Forms: e.Value})
	}
	return out
}

func localeTables(t *testing.T, code string, kind numberunit.Kind) (numberunit.Tables, resources.Units, *resources.Locale) {
	t.Helper()
	cat, err := resources.Embedded()
	require.NoError(t, err)
	loc, err := cat.Locale(code)
	require.NoError(t, err)
	units, err := loc.UnitTables(kind.String())
	require.NoError(t, err)
	return numberunit.Tables{
		BuildPrefix:        loc.BuildPrefix,
		BuildSuffix:        loc.BuildSuffix,
		ConnectorToken:     loc.ConnectorToken,
		CompoundConnector:  loc.CompoundConnector,
		AmbiguousTimeGuard: cat.Base.AmbiguousTimeGuard,
		Prefixes:           forms(units.Prefixes),
		Suffixes:           forms(units.Suffixes),
		Ambiguous:          units.Ambiguous,
		ISOCodes:           loc.CurrencyISOCodes.Map(),
		FractionalCodes:    loc.FractionalCodes.Map(),
		FractionMapping:    cat.Base.CurrencyFractionMapping.Map(),
		FractionalRatios:   cat.Base.CurrencyFractionalRatios,
	}, units, loc
}

type engine struct {
	cfg       *numberunit.UnitConfiguration
	extractor *numberunit.MergedExtractor
	parser    numberunit.Parser
}

func newEngine(t *testing.T, code string, kind numberunit.Kind) engine {
	t.Helper()
	return newEngineWith(t, code, kind, nil)
}

// newEngineWith lets a test edit the locale tables before Build.
func newEngineWith(t *testing.T, code string, kind numberunit.Kind, edit func(*numberunit.Tables)) engine {
	t.Helper()
	tables, _, loc := localeTables(t, code, kind)
	if edit != nil {
		edit(&tables)
	}
	cfg, err := numberunit.Build(loc.Code, kind, tables)
	require.NoError(t, err)

	opts := number.Options{
		DecimalSeparator: loc.Numbers.DecimalSeparator,
		GroupSeparator:   loc.Numbers.GroupSeparator,
		Connectors:       loc.Numbers.Connectors,
		Words:            loc.Numbers.Words,
		Multipliers:      loc.Numbers.Multipliers,
	}
	nx, err := number.NewExtractor(opts)
	require.NoError(t, err)
	np, err := number.NewParser(opts)
	require.NoError(t, err)

	var parser numberunit.Parser = numberunit.NewUnitParser(cfg, np)
	if kind == numberunit.Currency {
		parser = numberunit.NewCurrencyParser(cfg, np)
	}
	return engine{
		cfg:       cfg,
		extractor: numberunit.NewMergedExtractor(numberunit.NewUnitExtractor(cfg, nx)),
		parser:    parser,
	}
}

func (e engine) pair() numberunit.Pair {
	return numberunit.Pair{Extractor: e.extractor, Parser: e.parser}
}

func (e engine) model() *numberunit.Model {
	return numberunit.NewModel(e.cfg.Kind().String(), e.pair())
}

func surfaceForms(s string) []string {
	var out []string
	for _, f := range strings.Split(s, "|") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
