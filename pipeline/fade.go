package pipeline

import "github.com/sirupsen/logrus"

// applyFadeIn ramps the first fadeMs of a channel from 0 to 1 linearly,
// leaving the remainder unchanged, to suppress click artifacts at the
// start of output introduced by earlier non-linear stages.
func applyFadeIn(channel []float64, fadeMs, sampleRate float64) []float64 {
	fadeSamples := int(fadeMs * sampleRate / 1000)

	logrus.WithFields(logrus.Fields{
		"function":     "applyFadeIn",
		"samples":      len(channel),
		"fade_ms":      fadeMs,
		"fade_samples": fadeSamples,
	}).Debug("Applying fade-in")

	out := make([]float64, len(channel))
	copy(out, channel)

	if fadeSamples <= 0 {
		return out
	}
	if fadeSamples > len(out) {
		fadeSamples = len(out)
	}

	for i := 0; i < fadeSamples; i++ {
		g := float64(i) / float64(fadeSamples)
		out[i] *= g
	}
	return out
}

// fadeCurveSmoothstep is the smoothstep (3g^2 - 2g^3) ramp used by the
// original implementation's "linear" fade despite the name. Kept as an
// unexported alternative for anyone wanting to reproduce that exact
// curve; the default path uses applyFadeIn's true linear ramp.
func fadeCurveSmoothstep(g float64) float64 {
	return g * g * (3 - 2*g)
}
