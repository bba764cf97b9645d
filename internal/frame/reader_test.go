package frame

import (
	"testing"

	"github.com/ernie/valkyrie-client/internal/packets"
	"github.com/ernie/valkyrie-client/internal/wire"
)

type fakeTable map[packets.Header]packets.Descriptor

func (t fakeTable) Lookup(h packets.Header) (packets.Descriptor, bool) {
	d, ok := t[h]
	return d, ok
}

func encodeFixedFrame(header packets.Header, payload []byte) []byte {
	w := wire.NewWriter()
	w.Header(uint16(header))
	w.RawBytes(payload)
	return w.Bytes()
}

func encodeVariableFrame(header packets.Header, payload []byte) []byte {
	w := wire.NewWriter()
	w.Header(uint16(header))
	lenOff := w.ReserveLength()
	w.RawBytes(payload)
	w.PatchLength(lenOff)
	return w.Bytes()
}

func TestFixedFrameWholeArrival(t *testing.T) {
	table := fakeTable{0x0001: {Header: 0x0001, Size: packets.SizeClass{Fixed: 4}}}
	r := NewReader(table)
	r.Feed(encodeFixedFrame(0x0001, []byte{1, 2, 3, 4}))

	f, ok, err := r.Next()
	if err != nil || !ok {
		t.Fatalf("expected a frame, got ok=%v err=%v", ok, err)
	}
	if f.Header != 0x0001 || string(f.Payload) != "\x01\x02\x03\x04" {
		t.Fatalf("got %+v", f)
	}
	if _, ok, _ := r.Next(); ok {
		t.Fatal("expected no second frame")
	}
}

func TestChunkedArrivalScenarioS2(t *testing.T) {
	table := fakeTable{0x0001: {Header: 0x0001, Size: packets.SizeClass{Fixed: 0}}} // variable
	whole := encodeVariableFrame(0x0001, []byte("hello world"))

	for _, chunking := range [][]int{{len(whole)}, {1, 2, len(whole) - 3}, {3, 3, 3, len(whole) - 9}} {
		r := NewReader(table)
		pos := 0
		var got []Frame
		for _, n := range chunking {
			r.Feed(whole[pos : pos+n])
			pos += n
			for {
				f, ok, err := r.Next()
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !ok {
					break
				}
				got = append(got, f)
			}
		}
		if len(got) != 1 || string(got[0].Payload) != "hello world" {
			t.Fatalf("chunking %v: got %+v", chunking, got)
		}
	}
}

func TestResidualPreservedAfterFrame(t *testing.T) {
	table := fakeTable{0x0001: {Header: 0x0001, Size: packets.SizeClass{Fixed: 2}}}
	r := NewReader(table)
	frame := encodeFixedFrame(0x0001, []byte{9, 9})
	extra := []byte{0xAA, 0xBB, 0xCC}
	r.Feed(append(frame, extra...))

	f, ok, _ := r.Next()
	if !ok || f.Header != 0x0001 {
		t.Fatalf("got ok=%v f=%+v", ok, f)
	}
	if r.Pending() != len(extra) {
		t.Fatalf("expected %d residual bytes, got %d", len(extra), r.Pending())
	}
}

func TestUnknownHeaderSkipsTwoBytes(t *testing.T) {
	table := fakeTable{}
	r := NewReader(table)
	r.Feed([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	if _, ok, err := r.Next(); ok || err != nil {
		t.Fatalf("expected no frame and no error, got ok=%v err=%v", ok, err)
	}
	if r.Pending() != 0 {
		t.Fatalf("expected unknown headers to be skipped, %d bytes remain", r.Pending())
	}
}

func TestBadLengthIsFatal(t *testing.T) {
	table := fakeTable{0x0001: {Header: 0x0001, Size: packets.SizeClass{Fixed: 0}}}
	r := NewReader(table)
	w := wire.NewWriter()
	w.Header(0x0001)
	w.U16(1) // declared length smaller than the minimum of 4
	r.Feed(w.Bytes())

	_, _, err := r.Next()
	if _, ok := err.(*wire.ErrBadLength); !ok {
		t.Fatalf("expected ErrBadLength, got %v", err)
	}
}
