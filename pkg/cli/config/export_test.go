package config

import "time"

// NewBackendForTest creates a Backend config for testing purposes
func NewBackendForTest(baseURL string, teamTTL, eventsTTL time.Duration) *Backend {
	return &Backend{
		baseURL:      baseURL,
		fetchTimeout: 10 * time.Second,
		teamTTL:      teamTTL,
		eventsTTL:    eventsTTL,
		maxAttempts:  3,
		initialDelay: time.Second,
	}
}

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(apiKey, model string) *Gemini {
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		timeout: 30 * time.Second,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
