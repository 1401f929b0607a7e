package oggopus

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/thesyncim/gopus"

	"github.com/hushcast/voicecore/pipeline"
)

// frameSizeSamples is the fixed 20ms frame at 48kHz per the component
// design (component 10 step 3).
const frameSizeSamples = 960

// targetSampleRate is the Opus front-end's fixed working rate.
const targetSampleRate = 48000

// opusPreSkip is the pre-skip value written into OpusHead, per spec's
// recommended value rather than the underlying encoder's own default.
const opusPreSkip = 3840

// Encode runs the full Opus front-end over a single-channel sample
// stream at inputSampleRate: resample to 48kHz, frame into 20ms blocks,
// encode each frame with the configured bitrate and complexity, and
// package the result as a single-stream Ogg Opus bitstream written to w.
// cfg.VBR is not passed to the encoder; rate control stays at the
// encoder's own default mode.
//
// Mono folding (taking channel 0 of a stereo buffer) is the caller's
// responsibility before calling Encode; this function only ever sees a
// single channel.
func Encode(w io.Writer, samples []float64, inputSampleRate int, cfg pipeline.OpusConfig) error {
	logrus.WithFields(logrus.Fields{
		"function":          "Encode",
		"input_samples":     len(samples),
		"input_sample_rate": inputSampleRate,
		"bitrate":            cfg.BitrateBps,
	}).Info("Starting Opus front-end encode")

	resampler, err := NewResampler(ResamplerConfig{
		InputRate:  inputSampleRate,
		OutputRate: targetSampleRate,
	})
	if err != nil {
		return err
	}
	resampled := resampler.Resample(samples)

	enc, err := gopus.NewEncoder(targetSampleRate, 1, gopus.ApplicationVoIP)
	if err != nil {
		return fmt.Errorf("%w: failed to create Opus encoder: %v", ErrCodecError, err)
	}
	if err := enc.SetBitrate(cfg.BitrateBps); err != nil {
		return fmt.Errorf("%w: failed to set bitrate: %v", ErrCodecError, err)
	}
	if err := enc.SetComplexity(cfg.Complexity); err != nil {
		return fmt.Errorf("%w: failed to set complexity: %v", ErrCodecError, err)
	}

	writer, err := newPageMuxWriter(w, targetSampleRate, opusPreSkip)
	if err != nil {
		return fmt.Errorf("%w: failed to open Ogg Opus stream: %v", ErrCodecError, err)
	}

	packetBuf := make([]byte, 4000)
	frameCount := 0

	for offset := 0; offset < len(resampled); offset += frameSizeSamples {
		frame := make([]float32, frameSizeSamples)
		end := offset + frameSizeSamples
		if end > len(resampled) {
			end = len(resampled)
		}
		for i := offset; i < end; i++ {
			frame[i-offset] = float32(resampled[i])
		}
		// Remaining elements of frame stay zero: zero-pad the final
		// short frame per the component design.

		n, err := enc.Encode(frame, packetBuf)
		if err != nil {
			return fmt.Errorf("%w: Opus encode failed on frame %d: %v", ErrCodecError, frameCount, err)
		}

		if err := writer.WritePacket(packetBuf[:n], frameSizeSamples); err != nil {
			return fmt.Errorf("%w: Ogg packet write failed on frame %d: %v", ErrCodecError, frameCount, err)
		}
		frameCount++
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: failed to finalize Ogg Opus stream: %v", ErrCodecError, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Encode",
		"frame_count":  frameCount,
		"granule_pos":  writer.GranulePos(),
		"page_count":   writer.PageCount(),
	}).Info("Opus front-end encode completed")

	return nil
}
