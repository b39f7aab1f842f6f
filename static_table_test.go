package hpack

import "testing"

func TestStaticEntry(t *testing.T) {
	tests := []struct {
		index int
		want  HeaderField
	}{
		{1, HeaderField{":authority", ""}},
		{2, HeaderField{":method", "GET"}},
		{3, HeaderField{":method", "POST"}},
		{8, HeaderField{":status", "200"}},
		{61, HeaderField{"www-authenticate", ""}},
	}

	for _, tt := range tests {
		got := staticEntry(tt.index)
		if got != tt.want {
			t.Errorf("staticEntry(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
}

func TestStaticEntryOutOfRange(t *testing.T) {
	for _, index := range []int{0, -1, 62, 1000} {
		got := staticEntry(index)
		if got != (HeaderField{}) {
			t.Errorf("staticEntry(%d) = %+v, want zero value", index, got)
		}
	}
}

func TestFindStaticIndex(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantIndex int
		wantExact bool
	}{
		{":method", "GET", 2, true},
		{":method", "POST", 3, true},
		{":method", "DELETE", 2, false},
		{":status", "200", 8, true},
		{":status", "418", 8, false},
		{"custom-header", "value", 0, false},
		{"accept-charset", "", 15, true},
		{":authority", "", 1, true},
	}

	for _, tt := range tests {
		gotIndex, gotExact := findStaticIndex(tt.name, tt.value)
		if gotIndex != tt.wantIndex || gotExact != tt.wantExact {
			t.Errorf("findStaticIndex(%q, %q) = (%d, %v), want (%d, %v)",
				tt.name, tt.value, gotIndex, gotExact, tt.wantIndex, tt.wantExact)
		}
	}
}
