package hpack

import "testing"

func TestHuffmanEncode(t *testing.T) {
	tests := []struct {
		input    string
		expected []byte
	}{
		{"", nil},
		{"www.example.com", []byte{
			0xf1, 0xe3, 0xc2, 0xe5, 0xf2, 0x3a, 0x6b, 0xa0,
			0xab, 0x90, 0xf4, 0xff,
		}},
		{"no-cache", []byte{0xa8, 0xeb, 0x10, 0x64, 0x9c, 0xbf}},
		{"custom-key", []byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xa9, 0x7d, 0x7f}},
		{"custom-value", []byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xb8, 0xe8, 0xb4, 0xbf}},
	}

	for _, tt := range tests {
		got := huffmanEncode(nil, tt.input)
		if !bytesEqual(got, tt.expected) {
			t.Errorf("huffmanEncode(%q) = %x, want %x", tt.input, got, tt.expected)
		}
	}
}

func TestHuffmanDecode(t *testing.T) {
	tests := []struct {
		input []byte
		want  string
	}{
		{nil, ""},
		{[]byte{
			0xf1, 0xe3, 0xc2, 0xe5, 0xf2, 0x3a, 0x6b, 0xa0,
			0xab, 0x90, 0xf4, 0xff,
		}, "www.example.com"},
		{[]byte{0xa8, 0xeb, 0x10, 0x64, 0x9c, 0xbf}, "no-cache"},
		{[]byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xa9, 0x7d, 0x7f}, "custom-key"},
		{[]byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xb8, 0xe8, 0xb4, 0xbf}, "custom-value"},
	}

	for _, tt := range tests {
		got, err := huffmanDecode(tt.input)
		if err != nil {
			t.Fatalf("huffmanDecode(%x): unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("huffmanDecode(%x) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestHuffmanRoundTrip(t *testing.T) {
	inputs := []string{
		"", "a", "GET", "/index.html", ":status", "200",
		"user-agent: curl/7.68.0 (x86_64)",
		"a very long header value that repeats itself, repeats itself, repeats itself",
	}
	for _, s := range inputs {
		encoded := huffmanEncode(nil, s)
		got, err := huffmanDecode(encoded)
		if err != nil {
			t.Fatalf("round trip %q: %v", s, err)
		}
		if got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestHuffmanDecodeAppendReusesBuffer(t *testing.T) {
	dst := make([]byte, 0, 64)
	encoded := huffmanEncode(nil, "no-cache")
	out, err := huffmanDecodeAppend(dst, encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "no-cache" {
		t.Fatalf("got %q, want %q", out, "no-cache")
	}
}

func TestHuffmanDecodeInvalidPadding(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		// 30 one-bits decodes the EOS symbol itself, which must never
		// appear as a real symbol in a decoded string.
		{"eos in payload", []byte{0xff, 0xff, 0xff, 0xff}},
		// '0' (5-bit code 00000) leaves 3 trailing zero bits that are
		// not a prefix of EOS's all-ones code.
		{"trailing bits not a prefix of EOS", []byte{0x00}},
	}
	for _, tt := range tests {
		_, err := huffmanDecode(tt.data)
		if k, ok := KindOf(err); !ok || k != ErrInvalidHuffmanCode {
			t.Errorf("%s: got %v, want ErrInvalidHuffmanCode", tt.name, err)
		}
	}
}

func TestHuffmanEncodedLen(t *testing.T) {
	s := "www.example.com"
	want := huffmanEncodedLen(s)
	got := len(huffmanEncode(nil, s))
	if got != want {
		t.Errorf("huffmanEncodedLen(%q) = %d, actual encoded length = %d", s, want, got)
	}
}

func TestShouldHuffmanEncode(t *testing.T) {
	if !shouldHuffmanEncode("www.example.com") {
		t.Error("www.example.com should Huffman-encode shorter")
	}
	if shouldHuffmanEncode("") {
		t.Error("empty string should not prefer Huffman encoding")
	}
}
