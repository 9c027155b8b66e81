package recognizer

import (
	"fmt"
	"time"

	"numunit-service/internal/number"
	"numunit-service/internal/numberunit"
	"numunit-service/internal/resources"
)

// localePairs holds the compiled extractor/parser pair of every kind of one locale.
type localePairs struct {
	locale *resources.Locale
	pairs  map[numberunit.Kind]numberunit.Pair
}

func buildLocale(cat *resources.Catalog, loc *resources.Locale, timeout time.Duration) (*localePairs, error) {
	opts := number.Options{
		DecimalSeparator: loc.Numbers.DecimalSeparator,
		GroupSeparator:   loc.Numbers.GroupSeparator,
		Connectors:       loc.Numbers.Connectors,
		Words:            loc.Numbers.Words,
		Multipliers:      loc.Numbers.Multipliers,
		MatchTimeout:     timeout,
	}
	nx, err := number.NewExtractor(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc.Code, err)
	}
	np, err := number.NewParser(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc.Code, err)
	}

	lp := &localePairs{locale: loc, pairs: map[numberunit.Kind]numberunit.Pair{}}
	for _, name := range loc.UnitKinds() {
		kind, err := numberunit.ParseKind(name)
		if err != nil {
			return nil, err
		}
		units, err := loc.UnitTables(name)
		if err != nil {
			return nil, err
		}
		cfg, err := numberunit.Build(loc.Code, kind, tablesFor(cat, loc, units, timeout))
		if err != nil {
			return nil, err
		}
		var parser numberunit.Parser = numberunit.NewUnitParser(cfg, np)
		if kind == numberunit.Currency {
			parser = numberunit.NewCurrencyParser(cfg, np)
		}
		lp.pairs[kind] = numberunit.Pair{
			Extractor: numberunit.NewMergedExtractor(numberunit.NewUnitExtractor(cfg, nx)),
			Parser:    parser,
		}
	}
	return lp, nil
}

func tablesFor(cat *resources.Catalog, loc *resources.Locale, units resources.Units, timeout time.Duration) numberunit.Tables {
	return numberunit.Tables{
		BuildPrefix:        loc.BuildPrefix,
		BuildSuffix:        loc.BuildSuffix,
		ConnectorToken:     loc.ConnectorToken,
		CompoundConnector:  loc.CompoundConnector,
		AmbiguousTimeGuard: cat.Base.AmbiguousTimeGuard,
		Prefixes:           surfaceForms(units.Prefixes),
		Suffixes:           surfaceForms(units.Suffixes),
		Ambiguous:          units.Ambiguous,
		ISOCodes:           loc.CurrencyISOCodes.Map(),
		FractionalCodes:    loc.FractionalCodes.Map(),
		FractionMapping:    cat.Base.CurrencyFractionMapping.Map(),
		FractionalRatios:   cat.Base.CurrencyFractionalRatios,
		MatchTimeout:       timeout,
	}
}

func surfaceForms(t resources.Table) []numberunit.SurfaceForms {
	out := make([]numberunit.SurfaceForms, 0, len(t))
	for _, e := range t {
		out = append(out, numberunit.SurfaceForms{Unit: e.Key, Forms: e.Value})
	}
	return out
}
