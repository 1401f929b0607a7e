package oggopus

import (
	"io"
	"math/rand"
	"time"

	"github.com/thesyncim/gopus/container/ogg"
)

// maxSegmentsPerPage is the hard ceiling RFC 7845 imposes on a page's
// segment table: the table's own length is stored in a single byte.
const maxSegmentsPerPage = 255

// maxPacketsPerPage additionally bounds how many packets this package
// batches into one page, independent of the segment-table ceiling
// above. For typical Opus packet sizes this cap is the one reached
// first: most packets take a single segment byte, so 200 packets use
// only 200 of the 255 segment-table entries.
const maxPacketsPerPage = 200

// pageMuxWriter batches many Opus packets into each Ogg page, instead of
// container/ogg.Writer's one-packet-per-page approach. One page per
// packet is fine for low-latency streaming (the library's own doc
// comment calls it "the simple approach per RFC 7845 recommendation"),
// but at the 20ms/960-sample framing and low bitrates this module
// targets, the fixed 27-byte header plus one-or-more segment-table
// bytes per page would cost more than the audio payload itself over a
// long recording. Batching keeps that fixed cost amortized across many
// packets per page the way a real file-oriented Ogg Opus encoder does.
type pageMuxWriter struct {
	w           io.Writer
	serial      uint32
	pageSeq     uint32
	granulePos  uint64
	headersDone bool
	closed      bool

	pendingPayload  []byte
	pendingSegments []byte
	pendingPackets  int
}

// newPageMuxWriter writes the OpusHead (BOS) and OpusTags pages for a
// mono stream and returns a writer ready to accept audio packets.
func newPageMuxWriter(w io.Writer, sampleRate uint32, preSkip uint16) (*pageMuxWriter, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pw := &pageMuxWriter{w: w, serial: rng.Uint32()}

	head := ogg.DefaultOpusHead(sampleRate, 1)
	head.PreSkip = preSkip
	headPayload := head.Encode()
	if err := pw.writeRawPage(headPayload, ogg.BuildSegmentTable(len(headPayload)), ogg.PageFlagBOS, 0); err != nil {
		return nil, err
	}

	tags := ogg.DefaultOpusTags()
	tagsPayload := tags.Encode()
	if err := pw.writeRawPage(tagsPayload, ogg.BuildSegmentTable(len(tagsPayload)), 0, 0); err != nil {
		return nil, err
	}

	pw.headersDone = true
	return pw, nil
}

// writeRawPage encodes and writes a single page verbatim.
func (pw *pageMuxWriter) writeRawPage(payload, segments []byte, headerType byte, granulePos uint64) error {
	page := &ogg.Page{
		Version:      0,
		HeaderType:   headerType,
		GranulePos:   granulePos,
		SerialNumber: pw.serial,
		PageSequence: pw.pageSeq,
		Segments:     segments,
		Payload:      payload,
	}
	if _, err := pw.w.Write(page.Encode()); err != nil {
		return err
	}
	pw.pageSeq++
	return nil
}

// WritePacket appends an Opus packet to the page currently being
// batched, flushing that page first if the packet would overflow its
// segment table or packet-count budget.
func (pw *pageMuxWriter) WritePacket(packet []byte, samples int) error {
	if pw.closed {
		return ogg.ErrUnexpectedEOS
	}

	segTable := ogg.BuildSegmentTable(len(packet))
	if pw.pendingPackets > 0 && len(pw.pendingSegments)+len(segTable) > maxSegmentsPerPage {
		if err := pw.flush(); err != nil {
			return err
		}
	}

	pw.pendingSegments = append(pw.pendingSegments, segTable...)
	pw.pendingPayload = append(pw.pendingPayload, packet...)
	pw.pendingPackets++
	pw.granulePos += uint64(samples)

	if pw.pendingPackets >= maxPacketsPerPage {
		return pw.flush()
	}
	return nil
}

// flush writes the page currently being batched, if any packets have
// been accumulated into it.
func (pw *pageMuxWriter) flush() error {
	if pw.pendingPackets == 0 {
		return nil
	}
	if err := pw.writeRawPage(pw.pendingPayload, pw.pendingSegments, 0, pw.granulePos); err != nil {
		return err
	}
	pw.pendingPayload = nil
	pw.pendingSegments = nil
	pw.pendingPackets = 0
	return nil
}

// Close flushes any batched packets and writes the empty EOS page.
func (pw *pageMuxWriter) Close() error {
	if pw.closed {
		return nil
	}
	if err := pw.flush(); err != nil {
		return err
	}
	if err := pw.writeRawPage(nil, ogg.BuildSegmentTable(0), ogg.PageFlagEOS, pw.granulePos); err != nil {
		return err
	}
	pw.closed = true
	return nil
}

// GranulePos returns the current granule position (samples at 48kHz).
func (pw *pageMuxWriter) GranulePos() uint64 {
	return pw.granulePos
}

// PageCount returns the number of pages written so far.
func (pw *pageMuxWriter) PageCount() uint32 {
	return pw.pageSeq
}
