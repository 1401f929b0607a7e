package voicecore

import "github.com/hushcast/voicecore/pipeline"

// PCMBuffer is an ordered sequence of interleaved samples with an
// associated sample rate and channel count (1 or 2).
type PCMBuffer = pipeline.PCMBuffer

// Config is the Processor Configuration: every DSP tunable,
// independently adjustable, read by value at the start of Process.
type Config = pipeline.Config

// OpusConfig holds the Opus front-end's runtime-adjustable tunables.
type OpusConfig = pipeline.OpusConfig

// DefaultConfig returns a Config populated with the documented defaults
// and default enable flags.
func DefaultConfig() Config {
	return pipeline.DefaultConfig()
}
