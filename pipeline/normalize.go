package pipeline

import (
	"math"

	"github.com/sirupsen/logrus"
)

// silentRMSThreshold is the RMS floor below which normalization is
// treated as a no-op (the signal has no meaningful loudness to scale).
const silentRMSThreshold = 1e-9

// rms computes sqrt(mean(x^2)) over a channel.
func rms(channel []float64) float64 {
	if len(channel) == 0 {
		return 0
	}
	var sumSq float64
	for _, x := range channel {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(channel)))
}

// dbfsFromLinear converts a linear amplitude to dBFS (20*log10(v)).
func dbfsFromLinear(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

// linearFromDB converts a dB value to a linear amplitude ratio.
func linearFromDB(db float64) float64 {
	return math.Pow(10, db/20)
}

// softClip is a monotonic, odd, C1 non-linearity, identity for |v| <= 1
// and a shifted tanh for |v| > 1. The |v| > 1 branch is tanh(|v|-1)
// shifted up by 1 rather than tanh(|v|) directly: at the knee |v|=1
// this matches both the value (1) and slope (1) of the identity branch,
// so the curve is continuous and C1 across the seam instead of jumping
// down to tanh(1)~=0.7616. The downstream limiter stage is what
// ultimately enforces the hard amplitude bound; this stage only needs
// to round off the corner where normalization gain pushes a sample
// past unity.
func softClip(v float64) float64 {
	if math.Abs(v) <= 1 {
		return v
	}
	return math.Copysign(1+math.Tanh(math.Abs(v)-1), v)
}

// applyRMSNormalize scales a channel so its RMS matches targetDB,
// applying softClip to any sample the gain pushes past +/-1. Silent
// input (RMS below silentRMSThreshold) is a no-op.
func applyRMSNormalize(channel []float64, targetDB float64) []float64 {
	current := rms(channel)

	logrus.WithFields(logrus.Fields{
		"function":      "applyRMSNormalize",
		"samples":       len(channel),
		"current_rms":   current,
		"target_db":     targetDB,
	}).Debug("Normalizing channel RMS")

	if current < silentRMSThreshold {
		logrus.WithFields(logrus.Fields{
			"function": "applyRMSNormalize",
		}).Debug("Input below silence threshold, skipping normalization")
		out := make([]float64, len(channel))
		copy(out, channel)
		return out
	}

	currentDB := dbfsFromLinear(current)
	gain := linearFromDB(targetDB - currentDB)

	out := make([]float64, len(channel))
	for i, x := range channel {
		out[i] = softClip(gain * x)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "applyRMSNormalize",
		"current_db": currentDB,
		"gain":       gain,
	}).Debug("RMS normalization applied")

	return out
}
