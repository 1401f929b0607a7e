package pipeline

import (
	"math"

	"github.com/sirupsen/logrus"
)

// biquad is a single RBJ cookbook second-order IIR section, applied
// sample by sample with its own state. State is zero-initialized and
// owned for the lifetime of one Process call; nothing is shared across
// channels or calls.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

// newHighpassBiquad builds an RBJ high-pass biquad at the given cutoff
// frequency and Q, per the RBJ cookbook formulas.
func newHighpassBiquad(freq, sampleRate, q float64) biquad {
	w0 := 2 * math.Pi * freq / sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2 * q)

	b0 := (1 + cosW0) / 2
	b1 := -(1 + cosW0)
	b2 := (1 + cosW0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosW0
	a2 := 1 - alpha

	return biquad{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}
}

// newLowpassBiquad builds an RBJ low-pass biquad at the given cutoff
// frequency and Q, per the RBJ cookbook formulas.
func newLowpassBiquad(freq, sampleRate, q float64) biquad {
	w0 := 2 * math.Pi * freq / sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2 * q)

	b0 := (1 - cosW0) / 2
	b1 := 1 - cosW0
	b2 := (1 - cosW0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosW0
	a2 := 1 - alpha

	return biquad{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}
}

// process runs one sample through the section, updating state in place.
func (bq *biquad) process(x float64) float64 {
	y := bq.b0*x + bq.b1*bq.x1 + bq.b2*bq.x2 - bq.a1*bq.y1 - bq.a2*bq.y2
	bq.x2 = bq.x1
	bq.x1 = x
	bq.y2 = bq.y1
	bq.y1 = y
	return y
}

// filterQ is the fixed Q used for both sections, per the component
// design (Q ~= 0.707, i.e. Butterworth/maximally-flat response).
const filterQ = 0.70710678

// applyFilters runs the high-pass then low-pass biquad pair over one
// channel in series, sample by sample, with fresh state. It is called
// independently per channel so stereo input keeps per-channel state.
func applyFilters(channel []float64, highpassFreq, lowpassFreq, sampleRate float64) []float64 {
	logrus.WithFields(logrus.Fields{
		"function":      "applyFilters",
		"samples":       len(channel),
		"highpass_freq": highpassFreq,
		"lowpass_freq":  lowpassFreq,
	}).Debug("Applying high-pass/low-pass biquad pair")

	hp := newHighpassBiquad(highpassFreq, sampleRate, filterQ)
	lp := newLowpassBiquad(lowpassFreq, sampleRate, filterQ)

	out := make([]float64, len(channel))
	for i, x := range channel {
		y := hp.process(x)
		y = lp.process(y)
		out[i] = y
	}
	return out
}
