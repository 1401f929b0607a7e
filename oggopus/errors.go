package oggopus

import "github.com/hushcast/voicecore/pipeline"

// Sentinel error kinds, re-exported from pipeline (the shared home for
// voicecore's error classification) so errors.Is works across packages
// without importing two distinct instances of the same sentinel.
var (
	ErrInvalidFormat = pipeline.ErrInvalidFormat
	ErrInvalidConfig = pipeline.ErrInvalidConfig
	ErrIoError       = pipeline.ErrIoError
	ErrCodecError    = pipeline.ErrCodecError
	ErrInternalError = pipeline.ErrInternalError
)
