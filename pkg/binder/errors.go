package binder

import "errors"

var (
	ErrFailedToParseJSON    = errors.New("failed to parse JSON body")
	ErrMissingContentType   = errors.New("missing content type")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
