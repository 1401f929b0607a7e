package pipeline

import "github.com/sirupsen/logrus"

// applyGain is a static linear gain multiply; it performs no limiting
// of its own, since the downstream limiter owns peak safety.
func applyGain(channel []float64, gainDB float64) []float64 {
	gain := linearFromDB(gainDB)

	logrus.WithFields(logrus.Fields{
		"function": "applyGain",
		"samples":  len(channel),
		"gain_db":  gainDB,
	}).Debug("Applying static gain")

	out := make([]float64, len(channel))
	for i, x := range channel {
		out[i] = x * gain
	}
	return out
}
