package pipeline

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var configValidator = validator.New()

// OpusConfig holds the tunables of the Opus front-end that remain
// configurable at runtime: everything else (frame size, bandwidth) is
// fixed by the component design and not exposed here.
type OpusConfig struct {
	// BitrateBps is the target Opus bitrate in bits per second.
	BitrateBps int `validate:"gte=6000,lte=510000"`

	// FrameSizeMs is fixed at 20ms; kept as a field for observability,
	// not intended to be mutated.
	FrameSizeMs int `validate:"gte=20,lte=20"`

	// Complexity is fixed at 10 (highest quality/CPU tradeoff) per the
	// component design.
	Complexity int `validate:"gte=0,lte=10"`

	// VBR is always true for the core preset.
	VBR bool
}

// DefaultOpusConfig returns the Opus front-end defaults: 12kbps VBR,
// complexity 10, 20ms frames.
func DefaultOpusConfig() OpusConfig {
	return OpusConfig{
		BitrateBps:  12000,
		FrameSizeMs: 20,
		Complexity:  10,
		VBR:         true,
	}
}

// Config is the Processor Configuration: every tunable of the DSP chain,
// independently adjustable, read by value at the start of Process.
type Config struct {
	SampleRate int `validate:"required,gt=0"`

	RMSTargetDB float64 `validate:"gte=-60,lte=0"`

	ThresholdDB float64 `validate:"gte=-50,lte=24"`

	HighpassFreq float64 `validate:"gte=20,lte=1000"`
	LowpassFreq  float64 `validate:"gte=1000,lte=20000"`

	AmplitudeThresholdDB  float64 `validate:"gte=-60,lte=0"`
	AmplitudeAttackMs     float64 `validate:"gte=0.1,lte=100"`
	AmplitudeReleaseMs    float64 `validate:"gte=1,lte=1000"`
	AmplitudeLookaheadMs  float64 `validate:"gte=0,lte=20"`

	GainDB float64 `validate:"gte=0,lte=24"`

	LimiterThresholdDB float64 `validate:"gte=-12,lte=0"`
	LimiterReleaseMs    float64 `validate:"gte=10,lte=500"`
	LimiterLookaheadMs  float64 `validate:"gte=1,lte=20"`

	FadeMs float64 `validate:"gte=0,lte=50"`

	RMSEnabled           bool
	FiltersEnabled       bool
	SpectralGateEnabled  bool
	AmplitudeGateEnabled bool
	GainBoostEnabled     bool
	LimiterEnabled       bool

	Opus OpusConfig
}

// DefaultConfig returns a Configuration populated with the documented
// defaults and default enable flags.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,

		RMSTargetDB: -20,

		ThresholdDB: 5,

		HighpassFreq: 75,
		LowpassFreq:  20000,

		AmplitudeThresholdDB: -20,
		AmplitudeAttackMs:    10,
		AmplitudeReleaseMs:   100,
		AmplitudeLookaheadMs: 5,

		GainDB: 6,

		LimiterThresholdDB: -1,
		LimiterReleaseMs:   50,
		LimiterLookaheadMs: 5,

		FadeMs: 3,

		RMSEnabled:           true,
		FiltersEnabled:       true,
		SpectralGateEnabled:  true,
		AmplitudeGateEnabled: true,
		GainBoostEnabled:     false,
		LimiterEnabled:       true,

		Opus: DefaultOpusConfig(),
	}
}

// Validate checks every tunable against its documented range and the
// cross-field invariant highpass_freq < lowpass_freq < sample_rate/2.
// It returns an error wrapping ErrInvalidConfig on the first violation.
func (c Config) Validate() error {
	logrus.WithFields(logrus.Fields{
		"function":    "Config.Validate",
		"sample_rate": c.SampleRate,
	}).Debug("Validating pipeline configuration")

	if err := configValidator.Struct(c); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Config.Validate",
			"error":    err.Error(),
		}).Warn("Configuration field validation failed")
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := configValidator.Struct(c.Opus); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Config.Validate",
			"error":    err.Error(),
		}).Warn("Opus configuration field validation failed")
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	nyquist := float64(c.SampleRate) / 2
	if !(c.HighpassFreq < c.LowpassFreq && c.LowpassFreq < nyquist) {
		logrus.WithFields(logrus.Fields{
			"function":      "Config.Validate",
			"highpass_freq": c.HighpassFreq,
			"lowpass_freq":  c.LowpassFreq,
			"nyquist":       nyquist,
		}).Warn("Filter frequency ordering invariant violated")
		return fmt.Errorf("%w: highpass_freq (%.1f) must be < lowpass_freq (%.1f) must be < nyquist (%.1f)",
			ErrInvalidConfig, c.HighpassFreq, c.LowpassFreq, nyquist)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Config.Validate",
	}).Debug("Configuration validation succeeded")

	return nil
}

// SetOpusBitrate updates the Opus front-end's target bitrate, validating
// it against the documented range before accepting it.
func (c *Config) SetOpusBitrate(bps int) error {
	logrus.WithFields(logrus.Fields{
		"function": "Config.SetOpusBitrate",
		"bitrate":  bps,
	}).Info("Setting Opus bitrate")

	if bps < 6000 || bps > 510000 {
		logrus.WithFields(logrus.Fields{
			"function": "Config.SetOpusBitrate",
			"bitrate":  bps,
		}).Warn("Requested Opus bitrate out of range")
		return fmt.Errorf("%w: bitrate %d out of range [6000,510000]", ErrInvalidConfig, bps)
	}

	c.Opus.BitrateBps = bps
	return nil
}

// GetOpusBitrate returns the Opus front-end's current target bitrate.
func (c Config) GetOpusBitrate() int {
	return c.Opus.BitrateBps
}
