package pipeline

import (
	"math"

	"github.com/sirupsen/logrus"
)

// spectralBlockSize is the STFT block length N (component design §4.4).
const spectralBlockSize = 1024

// spectralHopSize is the STFT hop H = N/4, i.e. 75% overlap.
const spectralHopSize = spectralBlockSize / 4

// applySpectralGate runs the windowed-FFT per-bin magnitude gate over a
// channel using overlap-add synthesis. Bins whose magnitude in dB falls
// below thresholdDB are zeroed; the rest pass through unchanged.
//
// The analysis window is Hamming; the synthesis window reuses the same
// Hamming table. Reconstruction is weighted overlap-add: alongside the
// windowed IFFT output, window[i]^2 is accumulated per output sample, and
// the summed signal is divided by that accumulated weight at the end, so
// unity gain does not depend on the window/hop pair satisfying a
// constant-overlap-add identity. The signal is zero-padded by one block
// at each end so every input sample is covered by the same number of
// synthesis windows, then trimmed back to the original length.
func applySpectralGate(channel []float64, thresholdDB float64) []float64 {
	n := spectralBlockSize
	hop := spectralHopSize

	logrus.WithFields(logrus.Fields{
		"function":     "applySpectralGate",
		"samples":      len(channel),
		"threshold_db": thresholdDB,
		"block_size":   n,
		"hop_size":     hop,
	}).Debug("Applying spectral noise gate")

	window := HammingWindow(n)

	padded := make([]float64, len(channel)+2*n)
	copy(padded[n:], channel)

	out := make([]float64, len(padded))
	weightSum := make([]float64, len(padded))

	for start := 0; start+n <= len(padded); start += hop {
		block := padded[start : start+n]

		spectrum, err := RealSpectrum(block, window)
		if err != nil {
			// Block length and window length are both fixed to n by
			// construction; this cannot fail in practice.
			logrus.WithFields(logrus.Fields{
				"function": "applySpectralGate",
				"error":    err.Error(),
			}).Error("Spectral analysis failed unexpectedly")
			continue
		}

		gateSpectrum(spectrum, thresholdDB)

		if err := IFFT(spectrum); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "applySpectralGate",
				"error":    err.Error(),
			}).Error("Spectral synthesis failed unexpectedly")
			continue
		}

		for i := 0; i < n; i++ {
			sample := real(spectrum[i]) * window[i]
			out[start+i] += sample
			weightSum[start+i] += window[i] * window[i]
		}
	}

	for i := range out {
		if weightSum[i] > 1e-12 {
			out[i] /= weightSum[i]
		}
	}

	return out[n : n+len(channel)]
}

// gateSpectrum zeroes bins whose magnitude in dB relative to 1.0
// (20*log10 of the unnormalized FFT bin magnitude) is below thresholdDB,
// operating on the one-sided bins [0, n/2] and mirroring the decision
// onto their conjugate-symmetric counterparts so the result of IFFT
// stays real-valued.
func gateSpectrum(spectrum []complex128, thresholdDB float64) {
	n := len(spectrum)
	half := n / 2

	for bin := 0; bin <= half; bin++ {
		mag := cmplxAbs(spectrum[bin])
		magDB := dbfsFromLinear(mag)

		if magDB < thresholdDB {
			spectrum[bin] = 0
			if mirror := n - bin; bin != 0 && mirror < n {
				spectrum[mirror] = 0
			}
		}
	}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
