package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyFadeIn_RampsFromZero(t *testing.T) {
	n := 1000
	channel := make([]float64, n)
	for i := range channel {
		channel[i] = 1.0
	}

	out := applyFadeIn(channel, 10, 48000) // 480 samples at 48kHz

	assert.Equal(t, float64(0), out[0])
	assert.Greater(t, out[1], out[0])
	assert.InDelta(t, channel[999], out[999], 1e-9)
}

func TestApplyFadeIn_ZeroDurationIsIdentity(t *testing.T) {
	channel := []float64{1, 2, 3, 4}
	out := applyFadeIn(channel, 0, 48000)

	for i := range channel {
		assert.Equal(t, channel[i], out[i])
	}
}

func TestFadeCurveSmoothstep_BoundaryValues(t *testing.T) {
	assert.Equal(t, float64(0), fadeCurveSmoothstep(0))
	assert.Equal(t, float64(1), fadeCurveSmoothstep(1))
}
