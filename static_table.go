package hpack

// The HPACK static table, RFC 7541 Appendix A: 61 predefined entries,
// shared process-wide, never mutated, addressed by 1-based index.
// Grounded on the teacher's http2/hpack_static.go.

// staticTableSize is the number of entries in the static table.
const staticTableSize = 61

// staticTable[0] is an unused placeholder so indices line up 1:1 with
// the RFC numbering; valid indices are 1..staticTableSize.
var staticTable = [staticTableSize + 1]HeaderField{
	{},
	{":authority", ""},
	{":method", "GET"},
	{":method", "POST"},
	{":path", "/"},
	{":path", "/index.html"},
	{":scheme", "http"},
	{":scheme", "https"},
	{":status", "200"},
	{":status", "204"},
	{":status", "206"},
	{":status", "304"},
	{":status", "400"},
	{":status", "404"},
	{":status", "500"},
	{"accept-charset", ""},
	{"accept-encoding", "gzip, deflate"},
	{"accept-language", ""},
	{"accept-ranges", ""},
	{"accept", ""},
	{"access-control-allow-origin", ""},
	{"age", ""},
	{"allow", ""},
	{"authorization", ""},
	{"cache-control", ""},
	{"content-disposition", ""},
	{"content-encoding", ""},
	{"content-language", ""},
	{"content-length", ""},
	{"content-location", ""},
	{"content-range", ""},
	{"content-type", ""},
	{"cookie", ""},
	{"date", ""},
	{"etag", ""},
	{"expect", ""},
	{"expires", ""},
	{"from", ""},
	{"host", ""},
	{"if-match", ""},
	{"if-modified-since", ""},
	{"if-none-match", ""},
	{"if-range", ""},
	{"if-unmodified-since", ""},
	{"last-modified", ""},
	{"link", ""},
	{"location", ""},
	{"max-forwards", ""},
	{"proxy-authenticate", ""},
	{"proxy-authorization", ""},
	{"range", ""},
	{"referer", ""},
	{"refresh", ""},
	{"retry-after", ""},
	{"server", ""},
	{"set-cookie", ""},
	{"strict-transport-security", ""},
	{"transfer-encoding", ""},
	{"user-agent", ""},
	{"vary", ""},
	{"via", ""},
	{"www-authenticate", ""},
}

// staticEntry returns the static table entry at the given 1-based
// index, or the zero value if index is out of range.
func staticEntry(index int) HeaderField {
	if index < 1 || index > staticTableSize {
		return HeaderField{}
	}
	return staticTable[index]
}

// staticNameIndex and staticExactIndex hold a precomputed lookup from
// name, and from name+"\x00"+value, to the smallest matching static
// index. Built once at init; static table precedence always prefers
// the lowest index, and since the table is scanned low-to-high below,
// the first occurrence recorded for a given key is already the
// lowest.
var (
	staticNameIndex  map[string]int
	staticExactIndex map[string]int
)

func init() {
	staticNameIndex = make(map[string]int, staticTableSize)
	staticExactIndex = make(map[string]int, staticTableSize)

	for i := 1; i <= staticTableSize; i++ {
		e := staticTable[i]
		if _, ok := staticNameIndex[e.Name]; !ok {
			staticNameIndex[e.Name] = i
		}
		staticExactIndex[e.Name+"\x00"+e.Value] = i
	}
}

// findStaticIndex returns the smallest static index matching both
// name and value, and whether it was an exact match; if none matches
// exactly, it returns a name-only match (or (0, false) if there is
// none). An empty value is itself a valid entry value (e.g.
// ":authority", "accept-charset") and must be looked up exactly like
// any other, mirroring dynamic_table.go's findExact.
func findStaticIndex(name, value string) (index int, exact bool) {
	if i, ok := staticExactIndex[name+"\x00"+value]; ok {
		return i, true
	}
	if i, ok := staticNameIndex[name]; ok {
		return i, false
	}
	return 0, false
}
