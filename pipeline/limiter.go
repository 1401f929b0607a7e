package pipeline

import (
	"math"

	"github.com/sirupsen/logrus"
)

// applyLimiter is a lookahead peak limiter: the gain applied to sample i
// is driven by the peak over [i, i+lookahead], so a rising transient is
// already clamped by the time it reaches the output — zero attack, no
// output delay needed. Gain recovers upward toward unity at the release
// rate once the window no longer contains a peak above threshold.
//
// Near the end of the buffer the window is truncated to the samples that
// actually exist (windowEnd clamped to n-1) rather than reusing a stale
// gain value for the tail: every output sample's gain is computed from
// its own window, so the threshold bound holds uniformly, including for
// a transient inside the final lookahead samples.
func applyLimiter(channel []float64, thresholdDB, releaseMs, lookaheadMs, sampleRate float64) []float64 {
	threshold := linearFromDB(thresholdDB)
	lookahead := int(math.Round(lookaheadMs * sampleRate / 1000))
	if lookahead < 0 {
		lookahead = 0
	}
	alphaRelease := math.Exp(-1 / (releaseMs * sampleRate / 1000))

	logrus.WithFields(logrus.Fields{
		"function":     "applyLimiter",
		"samples":      len(channel),
		"threshold_db": thresholdDB,
		"lookahead":    lookahead,
	}).Debug("Applying lookahead peak limiter")

	n := len(channel)
	out := make([]float64, n)
	gain := 1.0

	for i := 0; i < n; i++ {
		windowEnd := i + lookahead
		if windowEnd >= n {
			windowEnd = n - 1
		}

		peak := 0.0
		for j := i; j <= windowEnd; j++ {
			if abs := math.Abs(channel[j]); abs > peak {
				peak = abs
			}
		}

		target := 1.0
		if peak > threshold {
			target = threshold / peak
		}

		if target < gain {
			gain = target
		} else {
			gain = alphaRelease*gain + (1-alphaRelease)*target
		}

		out[i] = gain * channel[i]
	}

	return out
}
