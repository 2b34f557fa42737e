package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrMissingBaseURL   = goerr.New("backend base URL is required")
	ErrMissingAPIKey    = goerr.New("Gemini API key is required")
	ErrMissingModel     = goerr.New("Gemini model is required")
	ErrInvalidTTL       = goerr.New("cache TTL must be positive")
	ErrInvalidLogLevel  = goerr.New("invalid log level")
	ErrInvalidLogFormat = goerr.New("invalid log format")
)
