package recognizer

import "errors"

var (
	ErrUnknownCulture = errors.New("recognizer: unknown culture")
	ErrEmptyText      = errors.New("recognizer: empty text")
	ErrTextTooLong    = errors.New("recognizer: text too long")
	ErrNoCultures     = errors.New("recognizer: no cultures to build")
)
