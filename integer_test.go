package hpack

import "testing"

func TestAppendInteger(t *testing.T) {
	tests := []struct {
		value      uint64
		prefixBits uint8
		pattern    byte
		want       []byte
	}{
		{10, 5, 0x00, []byte{0x0a}},
		{1337, 5, 0x00, []byte{0x1f, 0x9a, 0x0a}},
		{42, 8, 0x00, []byte{0x2a}},
		{0, 7, 0x80, []byte{0x80}},
		{127, 7, 0x00, []byte{0x7f, 0x00}},
	}

	for _, tt := range tests {
		got := appendInteger(nil, tt.value, tt.prefixBits, tt.pattern)
		if !bytesEqual(got, tt.want) {
			t.Errorf("appendInteger(%d, %d, %#x) = %x, want %x", tt.value, tt.prefixBits, tt.pattern, got, tt.want)
		}
	}
}

func TestDecodeInteger(t *testing.T) {
	tests := []struct {
		data       []byte
		prefixBits uint8
		want       uint64
		wantNext   int
	}{
		{[]byte{0x0a}, 5, 10, 1},
		{[]byte{0x1f, 0x9a, 0x0a}, 5, 1337, 3},
		{[]byte{0x2a}, 8, 42, 1},
		{[]byte{0x7f, 0x00}, 7, 127, 2},
	}

	for _, tt := range tests {
		got, next, err := decodeInteger(tt.data, 0, tt.prefixBits)
		if err != nil {
			t.Fatalf("decodeInteger(%x, 0, %d): unexpected error: %v", tt.data, tt.prefixBits, err)
		}
		if got != tt.want || next != tt.wantNext {
			t.Errorf("decodeInteger(%x, 0, %d) = (%d, %d), want (%d, %d)", tt.data, tt.prefixBits, got, next, tt.want, tt.wantNext)
		}
	}
}

func TestDecodeIntegerTruncated(t *testing.T) {
	_, _, err := decodeInteger(nil, 0, 5)
	if k, ok := KindOf(err); !ok || k != ErrTruncated {
		t.Fatalf("decodeInteger(nil): got %v, want ErrTruncated", err)
	}

	_, _, err = decodeInteger([]byte{0x1f}, 0, 5)
	if k, ok := KindOf(err); !ok || k != ErrTruncated {
		t.Fatalf("decodeInteger([0x1f]): got %v, want ErrTruncated", err)
	}
}

func TestDecodeIntegerOverlong(t *testing.T) {
	// Seven continuation bytes, the first six with the continuation bit
	// set: exceeds maxContinuationBytes and must be rejected regardless
	// of the value it would decode to.
	data := []byte{0x1f, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, _, err := decodeInteger(data, 0, 5)
	if k, ok := KindOf(err); !ok || k != ErrMalformedInteger {
		t.Fatalf("decodeInteger(overlong): got %v, want ErrMalformedInteger", err)
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 62, 126, 127, 128, 1337, 1 << 20, 1<<32 - 1}
	for _, v := range values {
		for _, prefix := range []uint8{4, 5, 6, 7, 8} {
			encoded := appendInteger(nil, v, prefix, 0x00)
			got, next, err := decodeInteger(encoded, 0, prefix)
			if err != nil {
				t.Fatalf("round trip value=%d prefix=%d: %v", v, prefix, err)
			}
			if got != v {
				t.Errorf("round trip value=%d prefix=%d: got %d", v, prefix, got)
			}
			if next != len(encoded) {
				t.Errorf("round trip value=%d prefix=%d: next=%d, len=%d", v, prefix, next, len(encoded))
			}
		}
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
