package lexidx

import "testing"

func TestVarint_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 2, 127, 128, 129, 16383, 16384, 300, 65535, 65536, 1 << 20, 1 << 40}
	for _, v := range values {
		buf := EncodeVarint(nil, v)
		got, n := DecodeVarint(buf, 0)
		if got != v {
			t.Errorf("round-trip(%d) = %d", v, got)
		}
		if n != len(buf) {
			t.Errorf("DecodeVarint consumed %d bytes, encoding was %d bytes", n, len(buf))
		}
	}
}

func TestVarint_ZeroEncodesAsSingleTerminatorByte(t *testing.T) {
	buf := EncodeVarint(nil, 0)
	if len(buf) != 1 || buf[0] != 0x80 {
		t.Errorf("EncodeVarint(0) = %v, want [0x80]", buf)
	}
}

func TestVarint_SmallValueIsSingleByte(t *testing.T) {
	buf := EncodeVarint(nil, 5)
	if len(buf) != 1 || buf[0] != 0x85 {
		t.Errorf("EncodeVarint(5) = %v, want [0x85]", buf)
	}
}

func TestVarint_MultiByteValueMSBFirst(t *testing.T) {
	// 300 = 0b100101100 = high group 0b10 (2), low group 0b0101100 (44).
	// Disk order is most-significant-group first, terminator bit on the
	// last (least-significant) byte.
	buf := EncodeVarint(nil, 300)
	want := []byte{0x02, 0x80 | 44}
	if len(buf) != len(want) {
		t.Fatalf("EncodeVarint(300) = %v, want %v", buf, want)
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("EncodeVarint(300)[%d] = %#x, want %#x", i, buf[i], want[i])
		}
	}
}

func TestVarint_SequentialEncodeDecode(t *testing.T) {
	var buf []byte
	values := []uint64{0, 5, 300, 1, 128}
	for _, v := range values {
		buf = EncodeVarint(buf, v)
	}

	off := 0
	for _, want := range values {
		got, next := DecodeVarint(buf, off)
		if got != want {
			t.Errorf("sequential decode = %d, want %d", got, want)
		}
		off = next
	}
	if off != len(buf) {
		t.Errorf("decoding left %d trailing bytes", len(buf)-off)
	}
}
