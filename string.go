package hpack

import "github.com/valyala/bytebufferpool"

// HPACK string representation, RFC 7541 Section 5.2: one Huffman
// flag bit (the MSB of the leading length-prefix octet), a 7-bit
// prefix integer giving the octet length, then that many octets of
// either raw or Huffman-encoded data.

// appendString appends the wire encoding of s to dst. When huffman is
// true and encoding s with Huffman saves space, it is emitted
// Huffman-encoded with H=1; otherwise it is emitted raw with H=0.
func appendString(dst []byte, s string, huffman bool) []byte {
	if huffman && len(s) > 0 && shouldHuffmanEncode(s) {
		encLen := huffmanEncodedLen(s)
		dst = appendInteger(dst, uint64(encLen), 7, 0x80)
		return huffmanEncode(dst, s)
	}
	dst = appendInteger(dst, uint64(len(s)), 7, 0x00)
	return append(dst, s...)
}

// decodeString reads an HPACK string starting at data[offset] and
// returns the decoded value, validated per spec §4.3/§4.4 (a decoded
// value containing a control character other than tab is a protocol
// error), along with the offset just past the string. scratch, if
// non-nil, is reused as the Huffman-decode output buffer instead of
// allocating a fresh one (see Decoder in decoder.go).
func decodeString(data []byte, offset int, maxLen int, scratch *bytebufferpool.ByteBuffer) (string, int, error) {
	if offset >= len(data) {
		return "", offset, newErr(ErrTruncated, "string prefix")
	}

	huffman := data[offset]&0x80 != 0

	length, next, err := decodeInteger(data, offset, 7)
	if err != nil {
		return "", next, err
	}
	if length > uint64(maxLen) {
		return "", next, newErr(ErrInvalidHeader, "string exceeds maximum length")
	}

	end := next + int(length)
	if end > len(data) || end < next {
		return "", next, newErr(ErrTruncated, "string body")
	}
	raw := data[next:end]

	var s string
	if huffman {
		if scratch != nil {
			scratch.Reset()
			scratch.B, err = huffmanDecodeAppend(scratch.B, raw)
			if err != nil {
				return "", end, err
			}
			s = string(scratch.B)
		} else {
			s, err = huffmanDecode(raw)
			if err != nil {
				return "", end, err
			}
		}
	} else {
		s = string(raw)
	}

	if !validateValue(s) {
		return "", end, newErr(ErrProtocol, "control character in decoded string")
	}

	return s, end, nil
}
