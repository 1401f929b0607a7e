package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Process runs the DSP chain over input in the fixed stage order (RMS
// normalization, filters, spectral gate, amplitude gate, gain, limiter,
// fade-in), honoring each stage's enable flag, and returns a new buffer
// of the same length, sample rate, and channel layout as input.
//
// Each channel is processed independently through every stage; the
// stereo-to-mono fold happens only at the Opus front-end, not here.
//
// cfg is read by value at entry and never observed again mid-call,
// matching the no-suspension, deterministic-output contract.
func Process(input PCMBuffer, cfg Config) (PCMBuffer, error) {
	logrus.WithFields(logrus.Fields{
		"function":    "Process",
		"samples":     len(input.Samples),
		"sample_rate": input.SampleRate,
		"channels":    input.Channels,
	}).Info("Starting pipeline processing")

	if input.Channels != 1 && input.Channels != 2 {
		logrus.WithFields(logrus.Fields{
			"function": "Process",
			"channels": input.Channels,
		}).Error("Unsupported channel count")
		return PCMBuffer{}, fmt.Errorf("%w: unsupported channel count %d", ErrInvalidFormat, input.Channels)
	}

	if err := cfg.Validate(); err != nil {
		return PCMBuffer{}, err
	}

	if len(input.Samples) == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "Process",
		}).Debug("Empty input buffer, returning empty output")
		return input.clone(), nil
	}

	// Time-constant and frequency calculations use the buffer's actual
	// sample rate; cfg.SampleRate is the configured/expected rate used
	// for validation and as a Config default, not necessarily identical
	// to every buffer Process is called with.
	sampleRate := float64(input.SampleRate)
	output := input.clone()

	for ch := 0; ch < input.Channels; ch++ {
		samples := input.Channel(ch)

		if cfg.RMSEnabled {
			samples = applyRMSNormalize(samples, cfg.RMSTargetDB)
		}

		if cfg.FiltersEnabled {
			samples = applyFilters(samples, cfg.HighpassFreq, cfg.LowpassFreq, sampleRate)
		}

		if cfg.SpectralGateEnabled {
			samples = applySpectralGate(samples, cfg.ThresholdDB)
		}

		if cfg.AmplitudeGateEnabled {
			samples = applyAmplitudeGate(samples, cfg.AmplitudeThresholdDB,
				cfg.AmplitudeAttackMs, cfg.AmplitudeReleaseMs, cfg.AmplitudeLookaheadMs, sampleRate)
		}

		if cfg.GainBoostEnabled {
			samples = applyGain(samples, cfg.GainDB)
		}

		if cfg.LimiterEnabled {
			samples = applyLimiter(samples, cfg.LimiterThresholdDB,
				cfg.LimiterReleaseMs, cfg.LimiterLookaheadMs, sampleRate)
		}

		samples = applyFadeIn(samples, cfg.FadeMs, sampleRate)

		if err := output.setChannel(ch, samples); err != nil {
			return PCMBuffer{}, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Process",
		"samples":  len(output.Samples),
	}).Info("Pipeline processing completed")

	return output, nil
}
