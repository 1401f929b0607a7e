package wavio

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hushcast/voicecore/pipeline"
)

func TestRead_RoundTripWithWrite(t *testing.T) {
	original := pipeline.PCMBuffer{
		Samples:    []float32{0, 0.5, -0.5, 0.25, -1, 1},
		SampleRate: 44100,
		Channels:   1,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, original))

	got, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.SampleRate, got.SampleRate)
	assert.Equal(t, original.Channels, got.Channels)
	require.Len(t, got.Samples, len(original.Samples))
	for i := range original.Samples {
		assert.InDelta(t, original.Samples[i], got.Samples[i], 1.0/32768)
	}
}

func TestRead_RejectsNonRIFF(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a wav file at all")))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRead_RejectsUnsupportedSampleRate(t *testing.T) {
	header := buildFmtHeader(4000, 1, formatPCM, 16, 0)
	_, err := Read(bytes.NewReader(header))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRead_RejectsUnsupportedChannelCount(t *testing.T) {
	header := buildFmtHeader(48000, 3, formatPCM, 16, 0)
	_, err := Read(bytes.NewReader(header))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRead_RejectsUnsupportedBitDepth(t *testing.T) {
	header := buildFmtHeader(48000, 1, formatPCM, 8, 0)
	_, err := Read(bytes.NewReader(header))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRead_AcceptsIEEEFloat32(t *testing.T) {
	samples := []float32{0.1, -0.2, 0.3}
	dataBytes := make([]byte, len(samples)*4)
	for i, s := range samples {
		putFloat32LE(dataBytes[i*4:], s)
	}
	raw := buildFmtHeader(48000, 1, formatIEEEFloat, 32, len(dataBytes))
	raw = append(raw, dataBytes...)

	got, err := Read(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, got.Samples, len(samples))
	for i := range samples {
		assert.InDelta(t, samples[i], got.Samples[i], 1e-6)
	}
}

// buildFmtHeader assembles a minimal RIFF/WAVE stream with an empty (or
// caller-supplied-length) data chunk for format-validation tests.
func buildFmtHeader(sampleRate, channels int, audioFormat, bitsPerSample, dataLen int) []byte {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	writeUint32LE(&buf, 0)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeUint32LE(&buf, 16)
	writeUint16LE(&buf, uint16(audioFormat))
	writeUint16LE(&buf, uint16(channels))
	writeUint32LE(&buf, uint32(sampleRate))
	byteRate := sampleRate * channels * bitsPerSample / 8
	writeUint32LE(&buf, uint32(byteRate))
	blockAlign := channels * bitsPerSample / 8
	writeUint16LE(&buf, uint16(blockAlign))
	writeUint16LE(&buf, uint16(bitsPerSample))

	buf.WriteString("data")
	writeUint32LE(&buf, uint32(dataLen))

	return buf.Bytes()
}

func writeUint32LE(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	buf.Write(b[:])
}

func writeUint16LE(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	buf.Write(b[:])
}

func putFloat32LE(dst []byte, v float32) {
	bits := math.Float32bits(v)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}
