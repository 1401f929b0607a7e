package oggopus

import (
	"encoding/binary"
	"fmt"
	"io"

	pionopus "github.com/pion/opus"
	"github.com/sirupsen/logrus"
	"github.com/thesyncim/gopus/container/ogg"
)

// decodeOutputBytes holds exactly one 20ms/960-sample mono int16 frame,
// matching the fixed frame size this package's Encode always produces.
const decodeOutputBytes = frameSizeSamples * 2

// readAllPackets walks every Ogg page in r and returns the Opus audio
// packets in stream order, skipping the OpusHead/OpusTags header pages.
//
// This reads pages directly with ogg.ParsePage and Page.Packets()
// rather than going through ogg.Reader.ReadPacket: that method only
// ever returns the first packet off a page and queues the rest in a
// package-level variable it never drains on later calls, so any page
// carrying more than one packet silently loses all but its first.
// Encode now batches many packets per page (pageMuxWriter), so that
// path would drop almost the entire stream. Page.Packets() itself has
// no such bug.
func readAllPackets(r io.Reader) ([][]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var packets [][]byte
	offset := 0
	sawHead, sawTags := false, false
	for offset < len(data) {
		page, consumed, err := ogg.ParsePage(data[offset:])
		if err != nil {
			return nil, err
		}
		offset += consumed

		switch {
		case !sawHead:
			framed := page.Packets()
			if len(framed) == 0 {
				return nil, ogg.ErrInvalidHeader
			}
			if _, err := ogg.ParseOpusHead(framed[0]); err != nil {
				return nil, err
			}
			sawHead = true
		case !sawTags:
			sawTags = true
		default:
			packets = append(packets, page.Packets()...)
		}

		if page.IsEOS() {
			break
		}
	}
	return packets, nil
}

// Decode reads an Ogg Opus stream written by Encode and decodes every
// audio packet back to mono float64 samples at 48kHz, using pion/opus
// rather than this package's own encoder so round-trip tests never
// validate the encoder against itself.
func Decode(r io.Reader) ([]float64, error) {
	logrus.WithFields(logrus.Fields{
		"function": "Decode",
	}).Info("Decoding Ogg Opus stream for verification")

	packets, err := readAllPackets(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Ogg Opus stream: %v", ErrCodecError, err)
	}

	decoder := pionopus.NewDecoder()
	output := make([]byte, decodeOutputBytes)

	var samples []float64
	for _, packet := range packets {
		if len(packet) == 0 {
			continue
		}

		_, _, err := decoder.Decode(packet, output)
		if err != nil {
			return nil, fmt.Errorf("%w: Opus decode failed: %v", ErrCodecError, err)
		}

		for i := 0; i+1 < len(output); i += 2 {
			v := int16(binary.LittleEndian.Uint16(output[i : i+2]))
			samples = append(samples, float64(v)/32768.0)
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Decode",
		"samples":  len(samples),
	}).Info("Ogg Opus decode completed")

	return samples, nil
}
