package config

import "errors"

// Sentinel kinds for configuration errors. Callers classify with
// errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
