// Package voicecore implements the voice audio cleaning and compression
// core: a fixed DSP effects chain tuned for intelligibility and small
// file size, plus an Opus encoding front-end, for voice recordings
// destined for bandwidth-constrained channels.
//
// # Architecture Overview
//
//	PCM In → pipeline.Process → processed PCM → oggopus.Encode → Ogg Opus Out
//
// Device capture, playback, WAV/Ogg container ownership outside of
// EncodeToOpus's own file-based entry point, error-reporting UX, and
// CLI parsing are external collaborators, not part of this module.
//
// # Core Components
//
//	cfg := voicecore.DefaultConfig()
//	output, err := voicecore.Process(input, cfg)
//	err = voicecore.EncodeToOpus("in.wav", "out.opus", 12000)
//
// # Thread Safety
//
// Process and EncodeToOpus are synchronous and single-threaded; neither
// starts goroutines of its own. Concurrent calls with independent
// buffers and Config values are safe; a single Config value must not be
// mutated by another goroutine while a call using it is in flight.
//
// # Dependencies
//
//   - github.com/sirupsen/logrus: structured logging
//   - github.com/go-playground/validator/v10: Config validation
//   - github.com/thesyncim/gopus and its container/ogg subpackage: Opus
//     encoding and Ogg packaging
//   - github.com/pion/opus: independent decode path for round-trip tests
package voicecore
