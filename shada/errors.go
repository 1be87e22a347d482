package shada

import "errors"

var (
	ErrNoDatabase    = errors.New("no history database configured")
	ErrUnknownDriver = errors.New("unknown history driver")
	ErrNoSession     = errors.New("no saved session")
)
