// Package recognizer builds one number-with-unit model per culture and unit
// kind at startup and serves recognition requests against them.
package recognizer

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"numunit-service/internal/numberunit"
	"numunit-service/internal/resources"
)

const englishCulture = "en-us"

type Options struct {
	DefaultCulture string
	// Cultures to build; empty means every locale in the catalog.
	Cultures []string
	// EnglishFallback registers the English pair after the culture's own pair.
	EnglishFallback bool
	// FallbackToDefault serves unknown cultures with DefaultCulture instead of
	// failing with ErrUnknownCulture.
	FallbackToDefault bool
	MatchTimeout      time.Duration
	// MaxTextLength is in runes; zero means unlimited.
	MaxTextLength int
}

// Culture describes a served culture.
type Culture struct {
	Code  string   `json:"code"`
	Name  string   `json:"name"`
	Kinds []string `json:"kinds"`
}

// Result is the outcome of one recognition request.
type Result struct {
	Culture  string                   `json:"culture"`
	Entities []numberunit.ModelResult `json:"results"`
}

// Recognizer is immutable after New and safe for concurrent use.
type Recognizer struct {
	opts     Options
	logger   zerolog.Logger
	models   map[string]map[numberunit.Kind]*numberunit.Model
	cultures []Culture
	codes    []string

	// supported is the matcher's tag order: default first
	supported []string
	matcher   language.Matcher
}

// New compiles every requested culture. Any table that fails to compile fails
// the whole registry.
func New(cat *resources.Catalog, opts Options, logger zerolog.Logger) (*Recognizer, error) {
	codes := opts.Cultures
	if len(codes) == 0 {
		codes = cat.Codes()
	}
	if len(codes) == 0 {
		return nil, ErrNoCultures
	}
	if opts.DefaultCulture == "" {
		opts.DefaultCulture = englishCulture
	}

	r := &Recognizer{opts: opts, logger: logger, models: map[string]map[numberunit.Kind]*numberunit.Model{}}
	built := map[string]*localePairs{}
	load := func(code string) (*localePairs, error) {
		loc, err := cat.Locale(code)
		if err != nil {
			return nil, err
		}
		if lp, ok := built[loc.Code]; ok {
			return lp, nil
		}
		start := time.Now()
		lp, err := buildLocale(cat, loc, opts.MatchTimeout)
		if err != nil {
			return nil, err
		}
		built[loc.Code] = lp
		logger.Info().
			Str("culture", loc.Code).
			Int("kinds", len(lp.pairs)).
			Dur("elapsed", time.Since(start)).
			Msg("culture compiled")
		return lp, nil
	}

	for _, code := range codes {
		lp, err := load(code)
		if err != nil {
			return nil, err
		}
		var fallback *localePairs
		if opts.EnglishFallback && lp.locale.Language() != "en" {
			if fallback, err = load(englishCulture); err != nil {
				return nil, fmt.Errorf("english fallback: %w", err)
			}
		}
		models := map[numberunit.Kind]*numberunit.Model{}
		var kinds []string
		for _, kind := range numberunit.Kinds {
			own, ok := lp.pairs[kind]
			if !ok {
				continue
			}
			pairs := []numberunit.Pair{own}
			if fallback != nil {
				if en, ok := fallback.pairs[kind]; ok {
					pairs = append(pairs, en)
				}
			}
			models[kind] = numberunit.NewModel(kind.String(), pairs...)
			kinds = append(kinds, kind.String())
		}
		if _, dup := r.models[lp.locale.Code]; dup {
			continue
		}
		r.models[lp.locale.Code] = models
		r.codes = append(r.codes, lp.locale.Code)
		r.cultures = append(r.cultures, Culture{Code: lp.locale.Code, Name: lp.locale.Name, Kinds: kinds})
	}

	def, ok := r.lookup(opts.DefaultCulture)
	if !ok {
		return nil, fmt.Errorf("%w: default %q is not built", ErrUnknownCulture, opts.DefaultCulture)
	}
	r.opts.DefaultCulture = def

	// the matcher falls back to its first tag, so the default goes first
	r.supported = []string{def}
	for _, c := range r.codes {
		if c != def {
			r.supported = append(r.supported, c)
		}
	}
	tags := make([]language.Tag, len(r.supported))
	for i, c := range r.supported {
		tags[i] = language.Make(c)
	}
	r.matcher = language.NewMatcher(tags)
	return r, nil
}

// Cultures lists the served cultures in build order.
func (r *Recognizer) Cultures() []Culture { return slices.Clone(r.cultures) }

// Codes lists the served culture codes in build order.
func (r *Recognizer) Codes() []string { return slices.Clone(r.codes) }

// DefaultCulture returns the culture used when none matches.
func (r *Recognizer) DefaultCulture() string { return r.opts.DefaultCulture }

func (r *Recognizer) lookup(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := r.models[code]; ok {
		return code, true
	}
	return "", false
}

// Resolve maps a culture name to a served culture: exact code first, then the
// closest language match ("es-MX" -> "es-es", "pt" -> "pt-br").
func (r *Recognizer) Resolve(culture string) (string, bool) {
	if c, ok := r.lookup(culture); ok {
		return c, true
	}
	tag, err := language.Parse(strings.TrimSpace(culture))
	if err != nil {
		return "", false
	}
	return r.match(tag)
}

// Negotiate picks a culture from an Accept-Language header.
func (r *Recognizer) Negotiate(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return r.opts.DefaultCulture
	}
	if c, ok := r.match(tags...); ok {
		return c
	}
	return r.opts.DefaultCulture
}

func (r *Recognizer) match(tags ...language.Tag) (string, bool) {
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return r.supported[idx], true
}

// culture resolves a requested culture, applying the default fallback.
func (r *Recognizer) culture(requested string) (string, error) {
	if strings.TrimSpace(requested) == "" {
		return r.opts.DefaultCulture, nil
	}
	if c, ok := r.Resolve(requested); ok {
		return c, nil
	}
	if !r.opts.FallbackToDefault {
		return "", fmt.Errorf("%w: %q", ErrUnknownCulture, requested)
	}
	r.logger.Warn().
		Str("requested", requested).
		Str("culture", r.opts.DefaultCulture).
		Msg("unknown culture, using default")
	return r.opts.DefaultCulture, nil
}

// CultureFor resolves a requested culture the way Recognize does: empty means
// the default, unknown fails unless FallbackToDefault is set.
func (r *Recognizer) CultureFor(requested string) (string, error) { return r.culture(requested) }

// Model returns the model of a culture and kind.
func (r *Recognizer) Model(culture string, kind numberunit.Kind) (*numberunit.Model, error) {
	c, err := r.culture(culture)
	if err != nil {
		return nil, err
	}
	m, ok := r.models[c][kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s model", numberunit.ErrUnknownKind, c, kind)
	}
	return m, nil
}

// Recognize runs the models of the requested kinds (all when none given) and
// returns their results ordered by position.
func (r *Recognizer) Recognize(ctx context.Context, text, culture string, kinds ...numberunit.Kind) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyText
	}
	if r.opts.MaxTextLength > 0 && utf8.RuneCountInString(text) > r.opts.MaxTextLength {
		return Result{}, fmt.Errorf("%w: limit is %d characters", ErrTextTooLong, r.opts.MaxTextLength)
	}
	c, err := r.culture(culture)
	if err != nil {
		return Result{}, err
	}
	if len(kinds) == 0 {
		kinds = numberunit.Kinds
	}
	res := Result{Culture: c, Entities: []numberunit.ModelResult{}}
	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		m, ok := r.models[c][kind]
		if !ok {
			continue
		}
		res.Entities = append(res.Entities, m.Parse(text)...)
	}
	slices.SortStableFunc(res.Entities, func(a, b numberunit.ModelResult) int { return a.Start - b.Start })
	return res, nil
}

func (r *Recognizer) recognizeKind(text, culture string, kind numberunit.Kind) []numberunit.ModelResult {
	m, err := r.Model(culture, kind)
	if err != nil {
		return nil
	}
	return m.Parse(text)
}

// RecognizeCurrency finds amounts of money ("$30", "3 dollars and 50 cents").
func (r *Recognizer) RecognizeCurrency(text, culture string) []numberunit.ModelResult {
	return r.recognizeKind(text, culture, numberunit.Currency)
}

// RecognizeDimension finds lengths, weights, areas, volumes, speeds and data sizes.
func (r *Recognizer) RecognizeDimension(text, culture string) []numberunit.ModelResult {
	return r.recognizeKind(text, culture, numberunit.Dimension)
}

func (r *Recognizer) RecognizeTemperature(text, culture string) []numberunit.ModelResult {
	return r.recognizeKind(text, culture, numberunit.Temperature)
}

func (r *Recognizer) RecognizeAge(text, culture string) []numberunit.ModelResult {
	return r.recognizeKind(text, culture, numberunit.Age)
}
