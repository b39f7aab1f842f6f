package hpack

// defaultMaxDynamicTableSize is the RFC 7541 default dynamic table
// size in bytes.
const defaultMaxDynamicTableSize = 4096

// defaultMaxHeaderStringSize caps an individual decoded or encoded
// name/value string.
const defaultMaxHeaderStringSize = 8192

// defaultMaxHeaderListSize caps the cumulative decoded byte count of
// one block.
const defaultMaxHeaderListSize = 8192

// defaultProbationThreshold is the observation count at which a
// (name,value) pair is promoted into the dynamic table (spec §4.8).
const defaultProbationThreshold = 2

// sensitiveHeaderNames never have their value placed in the dynamic
// table (spec §4.8 step 3), regardless of EncodingOptions.
var sensitiveHeaderNames = map[string]struct{}{
	"authorization":       {},
	"proxy-authorization": {},
	"cookie":              {},
	"set-cookie":          {},
}

// EncodingOptions tunes the encoder's per-header strategy engine
// (spec §3 EncoderState).
type EncodingOptions struct {
	// NeverIndexValueForNames is a set of lowercase header names
	// whose values must always be emitted as never-indexed literals,
	// in addition to the built-in sensitive set. Names are matched
	// exactly against the header name, which the encoder only accepts
	// in lowercase, so an entry containing uppercase never matches.
	NeverIndexValueForNames map[string]struct{}

	// ProbationThreshold is the observation count, within this
	// encoder's lifetime (until Reset), at which a (name,value) pair
	// is promoted to a dynamic-table entry. Must be >= 1.
	ProbationThreshold int

	// MinHuffmanSavingsPercent is reserved; the current behavior
	// (spec §3) is to Huffman-encode iff it strictly shortens the
	// string, regardless of this field's value.
	MinHuffmanSavingsPercent int
}

// DefaultEncodingOptions returns the spec-mandated defaults.
func DefaultEncodingOptions() EncodingOptions {
	return EncodingOptions{
		NeverIndexValueForNames: map[string]struct{}{
			"etag":          {},
			"if-none-match": {},
			"x-request-id":  {},
			"x-trace-id":    {},
		},
		ProbationThreshold: defaultProbationThreshold,
	}
}

func (o *EncodingOptions) neverIndex(name string) bool {
	if _, ok := sensitiveHeaderNames[name]; ok {
		return true
	}
	if o.NeverIndexValueForNames == nil {
		return false
	}
	_, ok := o.NeverIndexValueForNames[name]
	return ok
}

func (o *EncodingOptions) probationThreshold() int {
	if o.ProbationThreshold < 1 {
		return defaultProbationThreshold
	}
	return o.ProbationThreshold
}
