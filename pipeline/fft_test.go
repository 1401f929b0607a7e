package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFT_RoundTrip(t *testing.T) {
	n := 64
	original := make([]complex128, n)
	for i := range original {
		original[i] = complex(math.Sin(2*math.Pi*float64(i)/float64(n)), 0)
	}

	data := make([]complex128, n)
	copy(data, original)

	require.NoError(t, FFT(data))
	require.NoError(t, IFFT(data))

	for i := range data {
		assert.InDelta(t, real(original[i]), real(data[i]), 1e-9)
		assert.InDelta(t, imag(original[i]), imag(data[i]), 1e-9)
	}
}

func TestFFT_NotPowerOfTwo(t *testing.T) {
	data := make([]complex128, 100)
	err := FFT(data)
	assert.ErrorIs(t, err, ErrInternalError)
}

func TestFFT_DCComponent(t *testing.T) {
	n := 16
	data := make([]complex128, n)
	for i := range data {
		data[i] = complex(1, 0)
	}

	require.NoError(t, FFT(data))

	assert.InDelta(t, float64(n), real(data[0]), 1e-9)
	for i := 1; i < n; i++ {
		assert.InDelta(t, 0, real(data[i]), 1e-9)
		assert.InDelta(t, 0, imag(data[i]), 1e-9)
	}
}

func TestHammingWindow(t *testing.T) {
	w := HammingWindow(8)
	require.Len(t, w, 8)

	assert.InDelta(t, 0.08, w[0], 1e-6)
	assert.InDelta(t, 1.0, w[len(w)/2], 0.05)
}

func TestRealSpectrum_MatchesWindowedFFT(t *testing.T) {
	n := 32
	block := make([]float64, n)
	for i := range block {
		block[i] = math.Sin(2 * math.Pi * 3 * float64(i) / float64(n))
	}
	window := HammingWindow(n)

	spectrum, err := RealSpectrum(block, window)
	require.NoError(t, err)
	assert.Len(t, spectrum, n)

	// Bin 3 should carry most of the energy for a pure sinusoid at that
	// frequency, windowing notwithstanding.
	var peakBin int
	var peakMag float64
	for i := 0; i <= n/2; i++ {
		mag := cmplxAbs(spectrum[i])
		if mag > peakMag {
			peakMag = mag
			peakBin = i
		}
	}
	assert.Equal(t, 3, peakBin)
}
