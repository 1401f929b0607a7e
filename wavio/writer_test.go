package wavio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hushcast/voicecore/pipeline"
)

func TestWrite_ProducesValidRIFFHeader(t *testing.T) {
	buf := pipeline.PCMBuffer{
		Samples:    []float32{0, 0, 0, 0},
		SampleRate: 16000,
		Channels:   2,
	}

	var out bytes.Buffer
	require.NoError(t, Write(&out, buf))

	data := out.Bytes()
	require.GreaterOrEqual(t, len(data), 44)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "fmt ", string(data[12:16]))
	assert.Equal(t, "data", string(data[36:40]))
}

func TestWrite_RejectsUnsupportedChannelCount(t *testing.T) {
	buf := pipeline.PCMBuffer{Samples: []float32{0}, SampleRate: 48000, Channels: 4}
	var out bytes.Buffer
	err := Write(&out, buf)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestWrite_ClampsOutOfRangeSamples(t *testing.T) {
	buf := pipeline.PCMBuffer{
		Samples:    []float32{2.0, -2.0},
		SampleRate: 48000,
		Channels:   1,
	}
	var out bytes.Buffer
	require.NoError(t, Write(&out, buf))

	got, err := Read(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Samples[0], 0.001)
	assert.InDelta(t, -1.0, got.Samples[1], 0.001)
}
