// Package hpack implements RFC 7541 HPACK header compression for HTTP/2.
//
// An Encoder and a Decoder each maintain mirrored compression state
// across a sequence of header blocks exchanged on one connection
// direction. Create one Encoder per outgoing header stream and one
// Decoder per incoming header stream; blocks on a stream must be
// processed in transmission order.
package hpack

// HeaderField is a single name/value header pair as carried on the
// HPACK wire. Two fields are equal iff both Name and Value match
// exactly.
type HeaderField struct {
	Name  string
	Value string
}

// entryOverhead is the fixed per-entry accounting overhead from
// RFC 7541 Section 4.1.
const entryOverhead = 32

// size is the RFC 7541 Section 4.1 accounting size of the field:
// the byte length of the name plus the byte length of the value
// plus the fixed 32-byte overhead.
func (h HeaderField) size() uint64 {
	return uint64(len(h.Name)) + uint64(len(h.Value)) + entryOverhead
}
