package pipeline

import (
	"math"

	"github.com/sirupsen/logrus"
)

// applyAmplitudeGate is a lookahead noise gate: the gain at sample n is
// driven by the envelope observed at n+L, so the gate opens before a
// rising transient actually arrives at the output.
func applyAmplitudeGate(channel []float64, thresholdDB, attackMs, releaseMs, lookaheadMs, sampleRate float64) []float64 {
	lookahead := int(math.Round(lookaheadMs * sampleRate / 1000))
	alphaAttack := math.Exp(-1 / (attackMs * sampleRate / 1000))
	alphaRelease := math.Exp(-1 / (releaseMs * sampleRate / 1000))
	threshold := linearFromDB(thresholdDB)

	logrus.WithFields(logrus.Fields{
		"function":     "applyAmplitudeGate",
		"samples":      len(channel),
		"threshold_db": thresholdDB,
		"lookahead":    lookahead,
	}).Debug("Applying lookahead amplitude gate")

	n := len(channel)
	envelope := make([]float64, n)
	var env float64
	for i := 0; i < n; i++ {
		abs := math.Abs(channel[i])
		if abs > env {
			env = alphaAttack*env + (1-alphaAttack)*abs
		} else {
			env = alphaRelease*env + (1-alphaRelease)*abs
		}
		envelope[i] = env
	}

	gain := make([]float64, n)
	var prevGain float64 = 1
	for i := 0; i < n; i++ {
		lookIdx := i + lookahead
		var e float64
		if lookIdx < n {
			e = envelope[lookIdx]
		} else if n > 0 {
			e = envelope[n-1]
		}

		var target float64
		if e >= threshold {
			target = 1
		} else {
			target = 0
		}

		if target > prevGain {
			prevGain = alphaAttack*prevGain + (1-alphaAttack)*target
		} else {
			prevGain = alphaRelease*prevGain + (1-alphaRelease)*target
		}
		gain[i] = prevGain
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = channel[i] * gain[i]
	}
	return out
}
