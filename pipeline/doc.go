// Package pipeline implements the DSP effects chain applied to voice
// recordings before Opus encoding: normalization, filtering, spectral
// denoising, dynamics processing, and a final fade-in.
//
// # Architecture Overview
//
// The chain is strictly linear, no feedback between stages:
//
//	PCM In → RMS Normalize → Filters → Spectral Gate → Amplitude Gate
//	       → Gain → Limiter → Fade-In → PCM Out
//
// Each stage is gated by its own enable flag in Config, and every stage
// operates on each channel independently; stereo-to-mono folding is the
// Opus front-end's responsibility, not this package's.
//
// # Core Components
//
// ## Process
//
// The driver entry point sequences every stage in the order above:
//
//	cfg := pipeline.DefaultConfig()
//	output, err := pipeline.Process(input, cfg)
//
// ## FFT / IFFT
//
// A self-contained power-of-two Cooley-Tukey real FFT with a
// precomputed Hamming window, used internally by the spectral gate but
// independently testable:
//
//	spectrum, err := pipeline.RealSpectrum(block, pipeline.HammingWindow(len(block)))
//
// # Thread Safety
//
// Process allocates fresh state for every call and mutates no package
// level variables; concurrent calls with independent buffers and Config
// values are safe. A single Config value must not be mutated by another
// goroutine while a call using it is in flight.
//
// # Dependencies
//
//   - github.com/sirupsen/logrus: structured logging
//   - github.com/go-playground/validator/v10: Config field validation
package pipeline
