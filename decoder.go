package hpack

import "github.com/valyala/bytebufferpool"

// Decoder is the stateful HPACK decoding agent of spec §3/§6
// (DecoderState). Create one per incoming header stream; blocks must
// be decoded in transmission order. Grounded on the teacher's
// http2/hpack.go Decoder/Decode, generalized with the strict
// representation-dispatch order of spec §4.9 and the list-size gate
// and table-size-update ordering check the teacher's version omits.
type Decoder struct {
	table             *indexTable
	maxTableSize      uint64
	maxHeaderListSize uint64
	scratch           *bytebufferpool.ByteBuffer

	atBlockStart bool // true at the start of a block or right after a size update
}

// NewDecoder creates a decoder with the given initial dynamic table
// size and header-list size cap. The decoder owns a single pooled
// scratch buffer for Huffman-decode output, reused across strings and
// blocks for the lifetime of the decoder.
func NewDecoder(maxTableSize, maxHeaderListSize uint64) *Decoder {
	return &Decoder{
		table:             newIndexTable(maxTableSize),
		maxTableSize:      maxTableSize,
		maxHeaderListSize: maxHeaderListSize,
		scratch:           bytebufferpool.Get(),
	}
}

// SetMaxTableSize sets the soft cap applied to dynamic table size
// updates received on the wire (an out-of-band setting, typically
// driven by an HTTP/2 SETTINGS frame).
func (d *Decoder) SetMaxTableSize(size uint64) { d.maxTableSize = size }

// Reset clears the dynamic table (spec §3 Lifecycle).
func (d *Decoder) Reset() { d.table.reset() }

// DynamicTableSize returns the current accounted byte size of the
// decoder's dynamic table (spec §4.1).
func (d *Decoder) DynamicTableSize() uint64 { return d.table.dynamicTableSize() }

// Close returns the decoder's pooled scratch buffer. A Decoder must
// not be used again after Close.
func (d *Decoder) Close() {
	if d.scratch != nil {
		bytebufferpool.Put(d.scratch)
		d.scratch = nil
	}
}

// DecodeBlock decodes one complete HPACK header block, returning the
// header fields in wire order (spec §4.9).
func (d *Decoder) DecodeBlock(block []byte) ([]HeaderField, error) {
	out := make([]HeaderField, 0, 16)
	d.atBlockStart = true

	var listSize uint64
	offset := 0

	for offset < len(block) {
		b := block[offset]

		var (
			hf       HeaderField
			hadField bool
			err      error
			wasSizeUpdate bool
		)

		switch {
		case b&0x80 == 0x80:
			hf, offset, err = d.decodeIndexed(block, offset)
			hadField = true

		case b&0xC0 == 0x40:
			hf, offset, err = d.decodeLiteral(block, offset, 6, true)
			hadField = true

		case b&0xE0 == 0x20:
			offset, err = d.decodeTableSizeUpdate(block, offset)
			wasSizeUpdate = true

		case b&0xF0 == 0x10:
			hf, offset, err = d.decodeLiteral(block, offset, 4, false)
			hadField = true

		case b&0xF0 == 0x00:
			hf, offset, err = d.decodeLiteral(block, offset, 4, false)
			hadField = true

		default:
			err = newErr(ErrProtocol, "unrecognized representation byte")
		}

		if err != nil {
			return nil, err
		}

		if wasSizeUpdate {
			d.atBlockStart = true
			continue
		}
		d.atBlockStart = false

		if hadField {
			listSize += uint64(len(hf.Name)) + uint64(len(hf.Value))
			if listSize > d.maxHeaderListSize {
				return nil, newErr(ErrHeaderListTooLarge, "cumulative header list size exceeds maximum")
			}
			out = append(out, hf)
		}
	}

	return out, nil
}

// decodeIndexed decodes an Indexed Header Field (spec §4.7/§4.9 case 1).
func (d *Decoder) decodeIndexed(block []byte, offset int) (HeaderField, int, error) {
	index, next, err := decodeInteger(block, offset, 7)
	if err != nil {
		return HeaderField{}, next, err
	}
	if index == 0 {
		return HeaderField{}, next, newErr(ErrProtocol, "index 0")
	}
	hf, ok := d.table.get(int(index))
	if !ok {
		return HeaderField{}, next, newErr(ErrProtocol, "index out of range")
	}
	return hf, next, nil
}

// decodeLiteral decodes any of the three literal representations
// (incremental, never-indexed, without-indexing): they share a shape
// that differs only in prefix width and whether the result is added
// to the dynamic table.
func (d *Decoder) decodeLiteral(block []byte, offset int, prefixBits uint8, incremental bool) (HeaderField, int, error) {
	nameIndex, next, err := decodeInteger(block, offset, prefixBits)
	if err != nil {
		return HeaderField{}, next, err
	}

	var name string
	if nameIndex == 0 {
		name, next, err = decodeString(block, next, defaultMaxHeaderStringSize, d.scratch)
		if err != nil {
			return HeaderField{}, next, err
		}
		if !validateName(name) {
			return HeaderField{}, next, newErr(ErrProtocol, "invalid literal name")
		}
	} else {
		if int(nameIndex) > d.table.maxIndex() {
			return HeaderField{}, next, newErr(ErrProtocol, "name index out of range")
		}
		hf, ok := d.table.get(int(nameIndex))
		if !ok {
			return HeaderField{}, next, newErr(ErrProtocol, "name index out of range")
		}
		name = hf.Name
	}

	value, next, err := decodeString(block, next, defaultMaxHeaderStringSize, d.scratch)
	if err != nil {
		return HeaderField{}, next, err
	}

	hf := HeaderField{Name: name, Value: value}
	if incremental {
		d.table.add(name, value)
	}
	return hf, next, nil
}

// decodeTableSizeUpdate decodes a Dynamic Table Size Update (spec
// §4.7/§4.9 case 3). It is only valid at the start of a block or
// immediately following another size update; spec §4.9 says
// implementations SHOULD enforce this ordering.
func (d *Decoder) decodeTableSizeUpdate(block []byte, offset int) (int, error) {
	if !d.atBlockStart {
		return offset, newErr(ErrProtocol, "table size update not at block start")
	}

	newSize, next, err := decodeInteger(block, offset, 5)
	if err != nil {
		return next, err
	}
	if newSize > d.maxTableSize {
		return next, newErr(ErrProtocol, "table size update exceeds maximum")
	}
	if err := d.table.setMaxDynamicSize(newSize); err != nil {
		return next, err
	}
	return next, nil
}
