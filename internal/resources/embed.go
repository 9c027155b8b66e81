// Package resources loads the per-locale number-with-unit tables.
package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog is the set of loaded locales plus the shared base tables.
type Catalog struct {
	Base    Base
	locales map[string]*Locale
	codes   []string
}

var embedded = sync.OnceValues(func() (*Catalog, error) {
	return LoadFS(dataFS, "data")
})

// Embedded returns the catalog compiled into the binary. It is parsed once.
func Embedded() (*Catalog, error) {
	return embedded()
}

// LoadFS reads base.yaml and every other *.yaml file in dir as a locale.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("resources: read %s: %w", dir, err)
	}
	c := &Catalog{locales: map[string]*Locale{}}
	var (
		errs    []error
		hasBase bool
	)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		b, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		if e.Name() == "base.yaml" {
			if err := yaml.Unmarshal(b, &c.Base); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			}
			hasBase = true
			continue
		}
		var l Locale
		if err := yaml.Unmarshal(b, &l); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		if err := l.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		l.Code = strings.ToLower(l.Code)
		c.locales[l.Code] = &l
		c.codes = append(c.codes, l.Code)
	}
	if !hasBase {
		errs = append(errs, ErrNoBase)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	slices.Sort(c.codes)
	return c, nil
}

// Codes returns the locale codes, sorted.
func (c *Catalog) Codes() []string {
	return slices.Clone(c.codes)
}

// Locale returns the tables for code ("en-us"). A bare language ("en") matches
// the first locale with that language.
func (c *Catalog) Locale(code string) (*Locale, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if l, ok := c.locales[code]; ok {
		return l, nil
	}
	for _, k := range c.codes {
		if l := c.locales[k]; l.Language() == code {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, code)
}
