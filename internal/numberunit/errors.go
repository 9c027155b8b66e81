package numberunit

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPattern = errors.New("numberunit: invalid pattern")
	ErrNoSurfaceForms = errors.New("numberunit: no surface forms")
	ErrUnknownKind    = errors.New("numberunit: unknown unit kind")
)

// ConfigError reports a table entry or template that does not compile.
type ConfigError struct {
	Locale  string
	Kind    Kind
	Unit    string // canonical unit, empty for templates
	Pattern string
	Err     error
}

func (e *ConfigError) Error() string {
	where := e.Locale + "/" + e.Kind.String()
	if e.Unit != "" {
		where += fmt.Sprintf(" unit %q", e.Unit)
	}
	if e.Pattern == "" {
		return fmt.Sprintf("numberunit: %s: %v", where, e.Err)
	}
	return fmt.Sprintf("numberunit: %s: pattern %q: %v", where, e.Pattern, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	if errors.Is(e.Err, ErrNoSurfaceForms) {
		return []error{e.Err}
	}
	return []error{ErrInvalidPattern, e.Err}
}
