package hpack

import "testing"

func TestEncodeDecodeStateless(t *testing.T) {
	headers := []HeaderField{
		{":method", "GET"},
		{":path", "/"},
		{"custom-key", "custom-value"},
	}

	encoded, err := Encode(headers, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != len(headers) {
		t.Fatalf("got %d fields, want %d", len(got), len(headers))
	}
	for i := range headers {
		if got[i] != headers[i] {
			t.Errorf("field %d = %+v, want %+v", i, got[i], headers[i])
		}
	}
}

func TestEncodeDecodeStatelessCallsAreIndependent(t *testing.T) {
	// Two independent Encode calls for the same novel header must each
	// see it as a first sighting, since Encode does not share state
	// across calls.
	headers := []HeaderField{{"x-custom", "value"}}

	out1, err := Encode(headers, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out2, err := Encode(headers, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytesEqual(out1, out2) {
		t.Errorf("two independent Encode calls for the same header diverged: %x vs %x", out1, out2)
	}
}
