package voicecore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/hushcast/voicecore/oggopus"
	"github.com/hushcast/voicecore/pipeline"
	"github.com/hushcast/voicecore/wavio"
)

// EncodeToOpus reads a WAV file, runs it through the Opus front-end
// (mono fold, resample to 48kHz, 20ms framing, VBR encode, Ogg
// packaging), and writes the result to outputOpusPath.
//
// On any failure no partial file is left at outputOpusPath: the stream
// is written to a temp file in the destination directory first and
// renamed into place only once encoding succeeds, so a failed call
// never leaves a truncated "valid-looking" file behind.
func EncodeToOpus(inputWAVPath, outputOpusPath string, bitrate int) error {
	logrus.WithFields(logrus.Fields{
		"function": "EncodeToOpus",
		"input":    inputWAVPath,
		"output":   outputOpusPath,
		"bitrate":  bitrate,
	}).Info("Starting WAV to Ogg Opus encode")

	in, err := os.Open(inputWAVPath)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "EncodeToOpus",
			"error":    err.Error(),
		}).Error("Failed to open input WAV file")
		return fmt.Errorf("%w: failed to open %q: %v", ErrIoError, inputWAVPath, err)
	}
	defer in.Close()

	buf, err := wavio.Read(in)
	if err != nil {
		return err
	}

	opusCfg := pipeline.DefaultOpusConfig()
	if err := validateBitrate(bitrate); err != nil {
		return err
	}
	opusCfg.BitrateBps = bitrate

	mono := monoFold(buf)

	outDir := filepath.Dir(outputOpusPath)
	tmp, err := os.CreateTemp(outDir, ".voicecore-opus-*.tmp")
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "EncodeToOpus",
			"error":    err.Error(),
		}).Error("Failed to create temp output file")
		return fmt.Errorf("%w: failed to create temp file in %q: %v", ErrIoError, outDir, err)
	}
	tmpPath := tmp.Name()

	encodeErr := oggopus.Encode(tmp, mono, buf.SampleRate, opusCfg)
	closeErr := tmp.Close()

	if encodeErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		if encodeErr != nil {
			return encodeErr
		}
		return fmt.Errorf("%w: failed to close temp output file: %v", ErrIoError, closeErr)
	}

	if err := os.Rename(tmpPath, outputOpusPath); err != nil {
		os.Remove(tmpPath)
		logrus.WithFields(logrus.Fields{
			"function": "EncodeToOpus",
			"error":    err.Error(),
		}).Error("Failed to rename temp output file into place")
		return fmt.Errorf("%w: failed to finalize %q: %v", ErrIoError, outputOpusPath, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "EncodeToOpus",
		"output":   outputOpusPath,
	}).Info("WAV to Ogg Opus encode completed")

	return nil
}

func validateBitrate(bitrate int) error {
	if bitrate < 6000 || bitrate > 510000 {
		return fmt.Errorf("%w: bitrate %d out of range [6000,510000]", ErrInvalidConfig, bitrate)
	}
	return nil
}

// monoFold takes channel 0 of a PCM buffer; for already-mono input it
// is a no-op copy.
func monoFold(buf pipeline.PCMBuffer) []float64 {
	return buf.Channel(0)
}
