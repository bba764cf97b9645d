// Package frame implements the buffered, resumable extraction of
// length-delimited packets from a byte stream. The shape is
// the same append/loop/shift algorithm seen in the teacher's chunked
// zstd-frame walk (internal/assets/demo.go) and in a reference Ragnarok
// client's Process() loop: accumulate a residual buffer, peek the
// header, consult a size-class lookup, take a complete frame or stop and
// wait for more bytes.
package frame

import (
	"encoding/binary"

	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/wire"
)

// SizeClassLookup resolves a header to its size-class metadata, the same
// contract registry.Table.Lookup satisfies.
type SizeClassLookup interface {
	Lookup(header packets.Header) (packets.Descriptor, bool)
}

// Frame is one complete (header, payload) pair extracted from the
// stream. Payload excludes the header and, for variable-size packets,
// excludes the length field too.
type Frame struct {
	Header  packets.Header
	Payload []byte
}

// Reader accumulates bytes from a transport and yields complete frames.
// It holds no socket of its own; callers feed it bytes as they arrive
// (Feed) and drain frames (Next) until it reports it needs more.
type Reader struct {
	table   SizeClassLookup
	residual []byte
}

func NewReader(table SizeClassLookup) *Reader {
	return &Reader{table: table}
}

// Feed appends newly-arrived bytes to the residual buffer.
func (r *Reader) Feed(b []byte) {
	r.residual = append(r.residual, b...)
}

// Next extracts the next complete frame, if any. ok is false when the
// residual buffer holds fewer bytes than the next frame needs; callers
// should Feed more bytes and call Next again. err is non-nil only for a
// session-fatal condition (BadLength); UnknownPacket/UnknownVariant are
// not frame-reader concerns — the frame reader only needs a header's
// size class, not its handler. A header with no size class registered
// is skipped here: Next drops exactly those 2 bytes and retries.
func (r *Reader) Next() (Frame, bool, error) {
	for {
		if len(r.residual) < 2 {
			return Frame{}, false, nil
		}
		header := packets.Header(binary.LittleEndian.Uint16(r.residual[0:2]))

		desc, ok := r.table.Lookup(header)
		if !ok {
			// No size class: we cannot know how many bytes this frame
			// occupies. Skip the 2-byte header alone and let the next
			// iteration try to resynchronize, matching "UnknownPacket
			// means skip this frame" without silently desyncing forever.
			r.residual = r.residual[2:]
			continue
		}

		if desc.Size.IsVariable() {
			if len(r.residual) < 4 {
				return Frame{}, false, nil
			}
			length := int(binary.LittleEndian.Uint16(r.residual[2:4]))
			const minimum = 4
			if length < minimum {
				return Frame{}, false, &wire.ErrBadLength{Header: uint16(header), Declared: length, Minimum: minimum}
			}
			total := length
			if desc.LengthRemainingOffByOne {
				total++
			}
			if len(r.residual) < total {
				return Frame{}, false, nil
			}
			payload := r.residual[4:total]
			r.residual = r.residual[total:]
			return Frame{Header: header, Payload: payload}, true, nil
		}

		total := 2 + desc.Size.Fixed
		if len(r.residual) < total {
			return Frame{}, false, nil
		}
		payload := r.residual[2:total]
		r.residual = r.residual[total:]
		return Frame{Header: header, Payload: payload}, true, nil
	}
}

// Pending reports how many bytes are waiting in the residual buffer,
// useful for diagnostics and tests.
func (r *Reader) Pending() int {
	return len(r.residual)
}
