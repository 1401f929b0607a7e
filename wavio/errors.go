package wavio

import "github.com/hushcast/voicecore/pipeline"

// Sentinel error kinds, re-exported from pipeline so errors.Is works
// across packages against the same underlying instances.
var (
	ErrInvalidFormat = pipeline.ErrInvalidFormat
	ErrIoError       = pipeline.ErrIoError
)
