package hpack

// Encode is the stateless convenience form of EncodeBlock (spec §6):
// it creates a fresh Encoder with default table size and options,
// encodes headers as a single block, and discards the encoder. Two
// calls to Encode do not share dynamic-table or probation-pool state;
// callers that send more than one block over the same connection
// should keep an Encoder around instead.
func Encode(headers []HeaderField, huffman bool) ([]byte, error) {
	enc := NewEncoder(defaultMaxDynamicTableSize)
	enc.SetHuffmanEnabled(huffman)
	return enc.EncodeBlock(headers)
}

// Decode is the stateless convenience form of DecodeBlock (spec §6):
// it creates a fresh Decoder with default table and header-list size
// caps, decodes one block, and discards the decoder. It cannot decode
// a block that refers to dynamic-table state built up by an earlier
// block; callers with a multi-block connection should keep a Decoder
// around instead.
func Decode(octets []byte) ([]HeaderField, error) {
	dec := NewDecoder(defaultMaxDynamicTableSize, defaultMaxHeaderListSize)
	defer dec.Close()
	return dec.DecodeBlock(octets)
}
