package wavio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/hushcast/voicecore/pipeline"
)

const (
	formatPCM       = 1
	formatIEEEFloat = 3

	minSupportedSampleRate = 8000
)

// fmtChunk holds the parsed "fmt " chunk fields needed to decode the
// "data" chunk that follows.
type fmtChunk struct {
	audioFormat   uint16
	channels      uint16
	sampleRate    uint32
	bitsPerSample uint16
}

// Read parses a RIFF/WAVE stream into a PCMBuffer. Only PCM 16-bit and
// IEEE float 32-bit encodings are supported, mono or stereo, at any
// sample rate >= 8000Hz; anything else fails with ErrInvalidFormat.
func Read(r io.Reader) (pipeline.PCMBuffer, error) {
	logrus.WithFields(logrus.Fields{
		"function": "Read",
	}).Debug("Reading WAV stream")

	var riffHeader [12]byte
	if _, err := io.ReadFull(r, riffHeader[:]); err != nil {
		return pipeline.PCMBuffer{}, fmt.Errorf("%w: failed to read RIFF header: %v", ErrIoError, err)
	}
	if string(riffHeader[0:4]) != "RIFF" || string(riffHeader[8:12]) != "WAVE" {
		logrus.WithFields(logrus.Fields{
			"function": "Read",
		}).Warn("Input is not a RIFF/WAVE stream")
		return pipeline.PCMBuffer{}, fmt.Errorf("%w: not a RIFF/WAVE stream", ErrInvalidFormat)
	}

	var format *fmtChunk
	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r, chunkHeader[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return pipeline.PCMBuffer{}, fmt.Errorf("%w: failed to read chunk header: %v", ErrIoError, err)
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			f, err := readFmtChunk(r, chunkSize)
			if err != nil {
				return pipeline.PCMBuffer{}, err
			}
			format = f

		case "data":
			if format == nil {
				return pipeline.PCMBuffer{}, fmt.Errorf("%w: data chunk before fmt chunk", ErrInvalidFormat)
			}
			if err := validateFormat(*format); err != nil {
				return pipeline.PCMBuffer{}, err
			}

			raw := make([]byte, chunkSize)
			if _, err := io.ReadFull(r, raw); err != nil {
				return pipeline.PCMBuffer{}, fmt.Errorf("%w: failed to read data chunk: %v", ErrIoError, err)
			}

			samples, err := decodeSamples(raw, *format)
			if err != nil {
				return pipeline.PCMBuffer{}, err
			}

			logrus.WithFields(logrus.Fields{
				"function":    "Read",
				"sample_rate": format.sampleRate,
				"channels":    format.channels,
				"samples":     len(samples),
			}).Info("WAV stream parsed successfully")

			return pipeline.PCMBuffer{
				Samples:    samples,
				SampleRate: int(format.sampleRate),
				Channels:   int(format.channels),
			}, nil

		default:
			if err := skipChunk(r, chunkSize); err != nil {
				return pipeline.PCMBuffer{}, fmt.Errorf("%w: failed to skip chunk %q: %v", ErrIoError, chunkID, err)
			}
		}
	}

	return pipeline.PCMBuffer{}, fmt.Errorf("%w: no data chunk found", ErrInvalidFormat)
}

func readFmtChunk(r io.Reader, chunkSize uint32) (*fmtChunk, error) {
	if chunkSize < 16 {
		return nil, fmt.Errorf("%w: fmt chunk too small (%d bytes)", ErrInvalidFormat, chunkSize)
	}

	buf := make([]byte, chunkSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: failed to read fmt chunk: %v", ErrIoError, err)
	}

	return &fmtChunk{
		audioFormat:   binary.LittleEndian.Uint16(buf[0:2]),
		channels:      binary.LittleEndian.Uint16(buf[2:4]),
		sampleRate:    binary.LittleEndian.Uint32(buf[4:8]),
		bitsPerSample: binary.LittleEndian.Uint16(buf[14:16]),
	}, nil
}

func skipChunk(r io.Reader, chunkSize uint32) error {
	// WAV chunks are word-aligned; an odd-sized chunk is followed by a
	// padding byte.
	toSkip := int64(chunkSize)
	if chunkSize%2 == 1 {
		toSkip++
	}
	_, err := io.CopyN(io.Discard, r, toSkip)
	return err
}

func validateFormat(f fmtChunk) error {
	if f.channels != 1 && f.channels != 2 {
		return fmt.Errorf("%w: unsupported channel count %d", ErrInvalidFormat, f.channels)
	}
	if f.sampleRate < minSupportedSampleRate {
		return fmt.Errorf("%w: sample rate %d below minimum %d", ErrInvalidFormat, f.sampleRate, minSupportedSampleRate)
	}

	switch {
	case f.audioFormat == formatPCM && f.bitsPerSample == 16:
		return nil
	case f.audioFormat == formatIEEEFloat && f.bitsPerSample == 32:
		return nil
	default:
		return fmt.Errorf("%w: unsupported encoding (format=%d, bits=%d)",
			ErrInvalidFormat, f.audioFormat, f.bitsPerSample)
	}
}

func decodeSamples(raw []byte, f fmtChunk) ([]float32, error) {
	switch {
	case f.audioFormat == formatPCM && f.bitsPerSample == 16:
		return decodePCM16(raw)
	case f.audioFormat == formatIEEEFloat && f.bitsPerSample == 32:
		return decodeFloat32(raw)
	default:
		return nil, fmt.Errorf("%w: unsupported encoding", ErrInvalidFormat)
	}
}

func decodePCM16(raw []byte) ([]float32, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w: PCM16 data size %d not a multiple of 2", ErrInvalidFormat, len(raw))
	}
	out := make([]float32, len(raw)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
		out[i] = float32(v) / 32768.0
	}
	return out, nil
}

func decodeFloat32(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: float32 data size %d not a multiple of 4", ErrInvalidFormat, len(raw))
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		out[i] = math.Float32frombits(bits)
	}
	return out, nil
}
