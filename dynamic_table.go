package hpack

import "github.com/cespare/xxhash/v2"

// The HPACK dynamic table, RFC 7541 Section 2.3: a FIFO, byte-budgeted
// store of header fields, newest at relative index 1, oldest evicted
// first. Grounded on the teacher's http2/hpack_dynamic.go ring-buffer
// shape, generalized with the incremental secondary hashmap that
// spec.md's Design Notes §9 describes ("maintain an incremental
// secondary hashmap from (name,value) to relative position that is
// updated on every add and every eviction"), keyed by xxhash.Sum64
// instead of the teacher's name+"\x00"+value string-concatenation key
// (see SPEC_FULL.md §11).

// absoluteSizeCap is the absolute implementation cap on any table
// size (spec §4.5): 2^32 - 1.
const absoluteSizeCap = 1<<32 - 1

// bucketEntry is what the secondary hashmaps store: enough to
// re-verify a candidate past a hash collision and to compute its
// current relative index from its insertion sequence number.
type bucketEntry struct {
	seq   uint64
	name  string
	value string
}

type dynamicTable struct {
	entries []HeaderField // ring buffer, linearized on resize
	seqs    []uint64      // insertion seq parallel to entries
	head    int           // ring position of the newest entry
	count   int
	size    uint64
	maxSize uint64
	nextSeq uint64

	nameBuckets  map[uint64][]bucketEntry
	exactBuckets map[uint64][]bucketEntry
}

func hashName(name string) uint64 {
	return xxhash.Sum64String(name)
}

func hashExact(name, value string) uint64 {
	h := xxhash.New()
	h.WriteString(name) //nolint:errcheck // xxhash.Digest.Write never errors
	h.Write([]byte{0})
	h.WriteString(value)
	return h.Sum64()
}

func newDynamicTable(maxSize uint64) *dynamicTable {
	capacity := int(maxSize / 64)
	if capacity < 16 {
		capacity = 16
	}
	return &dynamicTable{
		entries:      make([]HeaderField, capacity),
		seqs:         make([]uint64, capacity),
		maxSize:      maxSize,
		nameBuckets:  make(map[uint64][]bucketEntry),
		exactBuckets: make(map[uint64][]bucketEntry),
	}
}

// relIndex converts an insertion sequence number to its current
// 1-based relative index (1 = newest).
func (dt *dynamicTable) relIndex(seq uint64) int {
	return int(dt.nextSeq - seq)
}

// add inserts a new entry at relative index 1, evicting from the tail
// as needed to stay within maxSize (spec §4.5). An entry larger than
// maxSize clears the table entirely, per RFC 7541.
func (dt *dynamicTable) add(name, value string) {
	entry := HeaderField{Name: name, Value: value}
	entrySize := entry.size()

	if entrySize > dt.maxSize {
		dt.reset()
		return
	}

	for dt.size+entrySize > dt.maxSize && dt.count > 0 {
		dt.evictOldest()
	}

	if dt.count == len(dt.entries) {
		dt.grow()
	}

	seq := dt.nextSeq
	dt.nextSeq++

	dt.head = (dt.head - 1 + len(dt.entries)) % len(dt.entries)
	dt.entries[dt.head] = entry
	dt.seqs[dt.head] = seq
	dt.count++
	dt.size += entrySize

	be := bucketEntry{seq: seq, name: name, value: value}
	nh := hashName(name)
	dt.nameBuckets[nh] = append(dt.nameBuckets[nh], be)
	eh := hashExact(name, value)
	dt.exactBuckets[eh] = append(dt.exactBuckets[eh], be)
}

// get retrieves an entry by 1-based relative index (1 = newest).
func (dt *dynamicTable) get(index int) (HeaderField, bool) {
	if index < 1 || index > dt.count {
		return HeaderField{}, false
	}
	pos := (dt.head + index - 1) % len(dt.entries)
	return dt.entries[pos], true
}

// findExact returns the relative index of the newest entry whose name
// and value both match, or 0 if none.
func (dt *dynamicTable) findExact(name, value string) int {
	best := 0
	for _, be := range dt.exactBuckets[hashExact(name, value)] {
		if be.name == name && be.value == value {
			if ri := dt.relIndex(be.seq); best == 0 || ri < best {
				best = ri
			}
		}
	}
	return best
}

// findName returns the relative index of the newest entry whose name
// matches, or 0 if none.
func (dt *dynamicTable) findName(name string) int {
	best := 0
	for _, be := range dt.nameBuckets[hashName(name)] {
		if be.name == name {
			if ri := dt.relIndex(be.seq); best == 0 || ri < best {
				best = ri
			}
		}
	}
	return best
}

// verify reports whether the entry at relative index i still holds
// (name, value); used to validate a caller-supplied lookup hint
// (spec §4.6's performance contract) before trusting it.
func (dt *dynamicTable) verify(i int, name, value string) bool {
	hf, ok := dt.get(i)
	return ok && hf.Name == name && hf.Value == value
}

// snapshot returns a (name,value) -> relative-index map reflecting the
// table's current contents, for callers that will make many lookups
// against one unchanging snapshot (spec §4.6).
func (dt *dynamicTable) snapshot() map[string]int {
	m := make(map[string]int, dt.count)
	for i := 1; i <= dt.count; i++ {
		hf, _ := dt.get(i)
		key := hf.Name + "\x00" + hf.Value
		if _, ok := m[key]; !ok {
			m[key] = i
		}
	}
	return m
}

func (dt *dynamicTable) evictOldest() {
	if dt.count == 0 {
		return
	}
	tail := (dt.head + dt.count - 1) % len(dt.entries)
	entry := dt.entries[tail]
	seq := dt.seqs[tail]

	dt.size -= entry.size()
	dt.count--
	dt.entries[tail] = HeaderField{}

	dt.removeFromBucket(dt.nameBuckets, hashName(entry.Name), seq)
	dt.removeFromBucket(dt.exactBuckets, hashExact(entry.Name, entry.Value), seq)
}

func (dt *dynamicTable) removeFromBucket(buckets map[uint64][]bucketEntry, h uint64, seq uint64) {
	bucket := buckets[h]
	for i, be := range bucket {
		if be.seq == seq {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(buckets, h)
	} else {
		buckets[h] = bucket
	}
}

func (dt *dynamicTable) grow() {
	newCap := len(dt.entries) * 2
	newEntries := make([]HeaderField, newCap)
	newSeqs := make([]uint64, newCap)
	for i := 0; i < dt.count; i++ {
		pos := (dt.head + i) % len(dt.entries)
		newEntries[i] = dt.entries[pos]
		newSeqs[i] = dt.seqs[pos]
	}
	dt.entries = newEntries
	dt.seqs = newSeqs
	dt.head = 0
}

// setMaxSize changes maxSize, evicting from the tail until the
// current size fits (spec §4.5 resize).
func (dt *dynamicTable) setMaxSize(maxSize uint64) error {
	if maxSize > absoluteSizeCap {
		return newErr(ErrOverflow, "dynamic table size exceeds absolute cap")
	}
	dt.maxSize = maxSize
	for dt.size > dt.maxSize && dt.count > 0 {
		dt.evictOldest()
	}
	return nil
}

func (dt *dynamicTable) reset() {
	dt.entries = make([]HeaderField, len(dt.entries))
	dt.seqs = make([]uint64, len(dt.seqs))
	dt.head = 0
	dt.count = 0
	dt.size = 0
	dt.nameBuckets = make(map[uint64][]bucketEntry)
	dt.exactBuckets = make(map[uint64][]bucketEntry)
}
