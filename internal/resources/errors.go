package resources

import "errors"

var (
	ErrUnknownLocale = errors.New("resources: unknown locale")
	ErrMissingTable  = errors.New("resources: missing unit table")
	ErrInvalidLocale = errors.New("resources: invalid locale file")
	ErrNoBase        = errors.New("resources: base.yaml not found")
)
