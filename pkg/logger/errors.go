package logger

import "errors"

// Sentinel errors for this package.
var (
	ErrUnknownLevel = errors.New("unknown log level")
)
