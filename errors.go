package voicecore

import "github.com/hushcast/voicecore/pipeline"

// Sentinel error kinds classifying every failure this module returns.
// Every returned error wraps exactly one of these with %w; callers
// classify with errors.Is.
var (
	ErrInvalidFormat = pipeline.ErrInvalidFormat
	ErrInvalidConfig = pipeline.ErrInvalidConfig
	ErrIoError       = pipeline.ErrIoError
	ErrCodecError    = pipeline.ErrCodecError
	ErrInternalError = pipeline.ErrInternalError
)
