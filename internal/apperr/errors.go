package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrSourceUnavailable = errors.New("bibliography source unavailable")
	ErrRenderFailed      = errors.New("template render failed")
)
