// Package oggopus provides the Opus encoder front-end: mono fold (the
// caller's responsibility), resample to 48kHz, 20ms framing, VBR Opus
// encoding, and Ogg Opus container packaging.
//
// # Dependencies
//
//   - github.com/thesyncim/gopus: pure Go SILK/CELT/Hybrid Opus encoder
//   - github.com/thesyncim/gopus/container/ogg: Ogg page/segment framing
//   - github.com/pion/opus: independent decoder, used only by tests to
//     verify a round trip without validating the encoder against itself
package oggopus
