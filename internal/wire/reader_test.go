package wire

import "testing"

func TestReaderFixedStringStopsAtNUL(t *testing.T) {
	buf := []byte{'h', 'i', 0, 'x', 'x', 'x'}
	r := NewReader(buf)
	s, err := r.FixedString(6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "hi" {
		t.Fatalf("got %q, want %q", s, "hi")
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected all 6 bytes consumed, %d remain", r.Remaining())
	}
}

func TestReaderFixedStringNoNUL(t *testing.T) {
	buf := []byte{'a', 'b', 'c'}
	r := NewReader(buf)
	s, err := r.FixedString(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "abc" {
		t.Fatalf("got %q, want %q", s, "abc")
	}
}

func TestReaderShortFrame(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.U16()
	if _, ok := err.(*ErrShortFrame); !ok {
		t.Fatalf("expected ErrShortFrame, got %v (%T)", err, err)
	}
}

func TestReaderRoundTripIntegers(t *testing.T) {
	w := NewWriter()
	w.U8(0xAB)
	w.U16(0x1234)
	w.U32(0xDEADBEEF)
	w.U64(0x0102030405060708)
	w.I16(-5)
	w.F32(3.5)

	r := NewReader(w.Bytes())
	if v, _ := r.U8(); v != 0xAB {
		t.Fatalf("U8 got %x", v)
	}
	if v, _ := r.U16(); v != 0x1234 {
		t.Fatalf("U16 got %x", v)
	}
	if v, _ := r.U32(); v != 0xDEADBEEF {
		t.Fatalf("U32 got %x", v)
	}
	if v, _ := r.U64(); v != 0x0102030405060708 {
		t.Fatalf("U64 got %x", v)
	}
	if v, _ := r.I16(); v != -5 {
		t.Fatalf("I16 got %d", v)
	}
	if v, _ := r.F32(); v != 3.5 {
		t.Fatalf("F32 got %v", v)
	}
}

func TestRemainingStringMinusOne(t *testing.T) {
	r := NewReader([]byte{'h', 'e', 'y', 0xFF})
	s, err := r.RemainingStringMinusOne()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "hey" {
		t.Fatalf("got %q", s)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected cursor at end, %d remain", r.Remaining())
	}
}

func TestStatValueRoundTrip(t *testing.T) {
	w := NewWriter()
	w.StatValue(12, 3)
	r := NewReader(w.Bytes())
	base, bonus, err := r.StatValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != 12 || bonus != 3 {
		t.Fatalf("got base=%d bonus=%d", base, bonus)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected all 4 slots consumed, %d remain", r.Remaining())
	}
}

func TestPacketVersionGating(t *testing.T) {
	v := PacketVersion{Major: 2022, Minor: 4}
	if !v.AtLeast(PacketVersion{Major: 2012, Minor: 3}) {
		t.Fatal("expected 2022.4 >= 2012.3")
	}
	if v.Before(PacketVersion{Major: 2012, Minor: 3}) {
		t.Fatal("did not expect 2022.4 < 2012.3")
	}
}
