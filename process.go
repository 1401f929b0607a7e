package voicecore

import "github.com/hushcast/voicecore/pipeline"

// Process runs the DSP chain over input per cfg's enable flags and
// returns a new buffer of the same length, sample rate, and channel
// layout as input. See pipeline.Process for the full stage contract.
func Process(input PCMBuffer, cfg Config) (PCMBuffer, error) {
	return pipeline.Process(input, cfg)
}
