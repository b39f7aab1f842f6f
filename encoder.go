package hpack

import "github.com/valyala/bytebufferpool"

// Encoder is the stateful HPACK encoding agent of spec §3/§6
// (EncoderState). Create one per outgoing header stream; it is not
// safe for concurrent use without external synchronization.
//
// Per-header representation choice follows the strategy engine of
// spec §4.8, grounded on the teacher's http2/hpack.go
// encodeHeaderField (full match -> indexed; sensitive name ->
// never-indexed; otherwise probation-gated incremental or
// without-indexing literal), generalized to add the sensitivity step
// and the probation counter the teacher's version does not have.
type Encoder struct {
	table           *indexTable
	huffmanEnabled  bool
	maxHeaderString int
	options         EncodingOptions
	pool            *candidatePool
}

// NewEncoder creates an encoder with the given initial dynamic table
// size and spec-mandated defaults (Huffman on, 8192-byte max header
// string, default EncodingOptions).
func NewEncoder(maxTableSize uint64) *Encoder {
	return &Encoder{
		table:           newIndexTable(maxTableSize),
		huffmanEnabled:  true,
		maxHeaderString: defaultMaxHeaderStringSize,
		options:         DefaultEncodingOptions(),
		pool:            newCandidatePool(),
	}
}

// SetHuffmanEnabled toggles Huffman string encoding.
func (e *Encoder) SetHuffmanEnabled(enabled bool) { e.huffmanEnabled = enabled }

// SetMaxHeaderStringSize caps the byte length of an individual name
// or value this encoder will accept.
func (e *Encoder) SetMaxHeaderStringSize(n int) { e.maxHeaderString = n }

// SetOptions replaces the encoder's EncodingOptions.
func (e *Encoder) SetOptions(opts EncodingOptions) { e.options = opts }

// UpdateTableSize resizes the encoder's dynamic table (spec §4.8). If
// the size changed, it returns the encoded Dynamic Table Size Update
// instruction that the caller MUST prepend to the next emitted block
// so the decoder observes the same resize.
func (e *Encoder) UpdateTableSize(newMax uint64) ([]byte, error) {
	oldMax := e.currentMaxSize()
	if err := e.table.setMaxDynamicSize(newMax); err != nil {
		return nil, err
	}
	if newMax == oldMax {
		return nil, nil
	}
	return appendInteger(nil, newMax, 5, 0x20), nil
}

func (e *Encoder) currentMaxSize() uint64 {
	return e.table.dynamic.maxSize
}

// DynamicTableSize returns the current accounted byte size of the
// encoder's dynamic table (spec §4.1).
func (e *Encoder) DynamicTableSize() uint64 {
	return e.table.dynamicTableSize()
}

// Reset clears the dynamic table and the probation candidate pool
// (spec §3 Lifecycle).
func (e *Encoder) Reset() {
	e.table.reset()
	e.pool.reset()
}

// EncodeBlock encodes an ordered sequence of header fields into one
// HPACK block. Output is buffered until the whole block succeeds
// (spec §7: "implementations SHOULD buffer per-block output so that a
// mid-block failure does not emit a truncated block to the wire");
// dynamic-table and probation-pool mutations from headers already
// processed before a failing header are not rolled back.
func (e *Encoder) EncodeBlock(headers []HeaderField) ([]byte, error) {
	return e.encodeBlock(headers, nil)
}

// Snapshot returns a (name,value) -> relative-dynamic-index map
// reflecting the encoder's dynamic table at the moment of the call,
// for use with EncodeBlockHinted (spec §4.6's performance contract).
func (e *Encoder) Snapshot() map[string]int {
	return e.table.snapshot()
}

// EncodeBlockHinted behaves like EncodeBlock, but consults hint (as
// produced by Snapshot) before falling back to the full static- and
// dynamic-table search, for callers making many lookups against one
// otherwise-unchanging dynamic table. hint is validated against live
// table state before being trusted, so a stale or partial hint never
// produces an incorrect encoding, only a slower one.
func (e *Encoder) EncodeBlockHinted(headers []HeaderField, hint map[string]int) ([]byte, error) {
	return e.encodeBlock(headers, hint)
}

func (e *Encoder) encodeBlock(headers []HeaderField, hint map[string]int) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, h := range headers {
		next, err := e.encodeHeader(buf.B, h.Name, h.Value, hint)
		if err != nil {
			return nil, err
		}
		buf.B = next
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

// encodeHeader appends the wire representation of one header field to
// dst and applies any resulting dynamic-table mutation, implementing
// the strategy engine of spec §4.8. hint, if non-nil, is a snapshot
// from Snapshot consulted before the full index search.
func (e *Encoder) encodeHeader(dst []byte, name, value string, hint map[string]int) ([]byte, error) {
	if !validateName(name) || len(name) > e.maxHeaderString {
		return dst, newErr(ErrInvalidHeader, "invalid or oversize header name")
	}
	if !validateValue(value) || len(value) > e.maxHeaderString {
		return dst, newErr(ErrInvalidHeader, "invalid or oversize header value")
	}

	// Step 2: full match.
	if index, exact := e.table.findIndexHinted(name, value, hint); exact {
		return appendInteger(dst, uint64(index), 7, 0x80), nil
	}

	// Step 3: sensitivity.
	if e.options.neverIndex(name) {
		return e.appendNeverIndexed(dst, name, value), nil
	}

	// Step 4: probation.
	count := e.pool.observe(name, value)
	if count >= e.options.probationThreshold() {
		dst = e.appendLiteralIncremental(dst, name, value)
		e.table.add(name, value)
		return dst, nil
	}
	return e.appendLiteralWithoutIndexing(dst, name, value), nil
}

func (e *Encoder) appendLiteralIncremental(dst []byte, name, value string) []byte {
	if ni := e.table.findNameIndex(name); ni > 0 {
		dst = appendInteger(dst, uint64(ni), 6, 0x40)
	} else {
		dst = append(dst, 0x40)
		dst = appendString(dst, name, e.huffmanEnabled)
	}
	return appendString(dst, value, e.huffmanEnabled)
}

func (e *Encoder) appendLiteralWithoutIndexing(dst []byte, name, value string) []byte {
	if ni := e.table.findNameIndex(name); ni > 0 {
		dst = appendInteger(dst, uint64(ni), 4, 0x00)
	} else {
		dst = append(dst, 0x00)
		dst = appendString(dst, name, e.huffmanEnabled)
	}
	return appendString(dst, value, e.huffmanEnabled)
}

func (e *Encoder) appendNeverIndexed(dst []byte, name, value string) []byte {
	if ni := e.table.findNameIndex(name); ni > 0 {
		dst = appendInteger(dst, uint64(ni), 4, 0x10)
	} else {
		dst = append(dst, 0x10)
		dst = appendString(dst, name, e.huffmanEnabled)
	}
	return appendString(dst, value, e.huffmanEnabled)
}
