package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAmplitudeGate_MutesBelowThreshold(t *testing.T) {
	sampleRate := 48000.0
	n := 48000
	channel := make([]float64, n)
	for i := range channel {
		channel[i] = 0.0001 // well below any reasonable threshold
	}

	out := applyAmplitudeGate(channel, -20, 10, 100, 5, sampleRate)

	// After release settles, the gate should have closed.
	assert.Less(t, absf(out[n-1]), absf(channel[n-1]))
}

func TestApplyAmplitudeGate_PassesAboveThreshold(t *testing.T) {
	sampleRate := 48000.0
	n := 48000
	channel := make([]float64, n)
	for i := range channel {
		channel[i] = 0.5
	}

	out := applyAmplitudeGate(channel, -20, 10, 100, 5, sampleRate)

	// Steady-state loud signal should pass near unchanged once the gate
	// has opened and settled.
	assert.InDelta(t, channel[n-1], out[n-1], 0.01)
}

func TestApplyAmplitudeGate_PreservesLength(t *testing.T) {
	channel := make([]float64, 1234)
	out := applyAmplitudeGate(channel, -20, 10, 100, 5, 48000)
	assert.Len(t, out, len(channel))
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
