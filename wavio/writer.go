package wavio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/hushcast/voicecore/pipeline"
)

// Write serializes a PCMBuffer as a standard 16-bit PCM RIFF/WAVE
// stream. 16-bit PCM is used regardless of the buffer's float32 nominal
// range, since it is the most interoperable of the two input encodings
// this package accepts.
func Write(w io.Writer, buf pipeline.PCMBuffer) error {
	logrus.WithFields(logrus.Fields{
		"function":    "Write",
		"samples":     len(buf.Samples),
		"sample_rate": buf.SampleRate,
		"channels":    buf.Channels,
	}).Debug("Writing WAV stream")

	if buf.Channels != 1 && buf.Channels != 2 {
		return fmt.Errorf("%w: unsupported channel count %d", ErrInvalidFormat, buf.Channels)
	}

	dataSize := uint32(len(buf.Samples) * 2)
	header := make([]byte, 44)
	writeWAVHeader(header, dataSize, buf.SampleRate, buf.Channels)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w: failed to write WAV header: %v", ErrIoError, err)
	}

	data := make([]byte, dataSize)
	for i, s := range buf.Samples {
		scaled := float64(s) * 32768.0
		if scaled > 32767 {
			scaled = 32767
		} else if scaled < -32768 {
			scaled = -32768
		}
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(math.RoundToEven(scaled))))
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: failed to write WAV data: %v", ErrIoError, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Write",
		"data_size": dataSize,
	}).Info("WAV stream written successfully")

	return nil
}

func writeWAVHeader(dst []byte, dataSize uint32, sampleRate, channels int) {
	copy(dst[0:4], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:8], 36+dataSize)
	copy(dst[8:12], "WAVE")
	copy(dst[12:16], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:20], 16)
	binary.LittleEndian.PutUint16(dst[20:22], formatPCM)
	binary.LittleEndian.PutUint16(dst[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(dst[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(dst[28:32], uint32(sampleRate*channels*2))
	binary.LittleEndian.PutUint16(dst[32:34], uint16(channels*2))
	binary.LittleEndian.PutUint16(dst[34:36], 16)
	copy(dst[36:40], "data")
	binary.LittleEndian.PutUint32(dst[40:44], dataSize)
}
