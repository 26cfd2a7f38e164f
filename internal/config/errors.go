package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrBaseNameEmpty      = errors.New("base_name cannot be empty")
	ErrWidthOutOfRange    = errors.New("width out of range")
	ErrInvalidKind        = errors.New("kind must be file or folder")
	ErrInvalidLockTimeout = errors.New("lock_timeout must be a positive duration")
	ErrInvalidMaxAttempts = errors.New("max_attempts must be positive")
)
