package types

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// ErrorKind classifies a failure for the result envelope. Every failure
// that crosses a component boundary maps to exactly one kind.
type ErrorKind string

const (
	ErrKindNone              ErrorKind = ""
	ErrKindInvalidInput      ErrorKind = "invalid_input"
	ErrKindUpstream          ErrorKind = "upstream_unavailable"
	ErrKindGenerationConfig  ErrorKind = "generation_config"
	ErrKindGenerationEmpty   ErrorKind = "generation_empty"
	ErrKindGenerationTimeout ErrorKind = "generation_timeout"
	ErrKindGenerationNetwork ErrorKind = "generation_network"
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	return string(k)
}

// IsValid checks if the error kind is valid
func (k ErrorKind) IsValid() bool {
	switch k {
	case ErrKindNone,
		ErrKindInvalidInput,
		ErrKindUpstream,
		ErrKindGenerationConfig,
		ErrKindGenerationEmpty,
		ErrKindGenerationTimeout,
		ErrKindGenerationNetwork:
		return true
	default:
		return false
	}
}

// Sentinel errors for the failure taxonomy
var (
	ErrInvalidInput        = goerr.New("input is empty")
	ErrUpstreamUnavailable = goerr.New("upstream data source unavailable")
	ErrGenerationConfig    = goerr.New("generation API rejected the request")
	ErrGenerationEmpty     = goerr.New("generation API returned no usable text")
	ErrGenerationTimeout   = goerr.New("generation API timed out")
	ErrGenerationNetwork   = goerr.New("generation API unreachable")
)

// KindOf maps an error to its ErrorKind. Unclassified errors fall
// through to the network kind so the mapping stays total.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrKindNone
	case errors.Is(err, ErrInvalidInput):
		return ErrKindInvalidInput
	case errors.Is(err, ErrUpstreamUnavailable):
		return ErrKindUpstream
	case errors.Is(err, ErrGenerationConfig):
		return ErrKindGenerationConfig
	case errors.Is(err, ErrGenerationEmpty):
		return ErrKindGenerationEmpty
	case errors.Is(err, ErrGenerationTimeout), errors.Is(err, context.DeadlineExceeded):
		return ErrKindGenerationTimeout
	default:
		return ErrKindGenerationNetwork
	}
}
