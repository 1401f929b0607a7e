// Package pipeline implements the DSP effects chain: RMS normalization,
// biquad filtering, spectral noise gating, lookahead gating and limiting,
// gain, and fade-in, sequenced by a single driver in a fixed stage order.
package pipeline

import "errors"

// Sentinel errors classifying pipeline failures by kind. Every error
// returned by this package wraps exactly one of these with %w so callers
// can classify with errors.Is. The root voicecore package re-exports
// these under its own names.
var (
	ErrInvalidFormat = errors.New("voicecore: invalid format")
	ErrInvalidConfig = errors.New("voicecore: invalid configuration")
	ErrIoError       = errors.New("voicecore: io error")
	ErrCodecError    = errors.New("voicecore: codec error")
	ErrInternalError = errors.New("voicecore: internal error")
)
