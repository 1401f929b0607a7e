package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"rms target too low", func(c *Config) { c.RMSTargetDB = -100 }},
		{"highpass too high", func(c *Config) { c.HighpassFreq = 5000 }},
		{"gain too high", func(c *Config) { c.GainDB = 100 }},
		{"limiter threshold too high", func(c *Config) { c.LimiterThresholdDB = 10 }},
		{"negative sample rate", func(c *Config) { c.SampleRate = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_Validate_RejectsHighpassNotBelowLowpass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HighpassFreq = 1000
	cfg.LowpassFreq = 1000

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_SetOpusBitrate(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetOpusBitrate(24000))
	assert.Equal(t, 24000, cfg.GetOpusBitrate())

	err := cfg.SetOpusBitrate(1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
