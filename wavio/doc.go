// Package wavio implements just enough RIFF/WAVE decode/encode to
// satisfy EncodeToOpus's file-based entry point: PCM 16-bit or 32-bit
// float, mono or stereo, any sample rate >= 8000Hz. It is intentionally
// minimal and not a general multimedia container library.
package wavio
