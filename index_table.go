package hpack

// indexTable exposes the unified 1-based index space of spec §3/§4.6:
// indices 1..staticTableSize address the static table; indices
// staticTableSize+1.. address the dynamic table, newest first.

type indexTable struct {
	dynamic *dynamicTable
}

func newIndexTable(maxDynamicSize uint64) *indexTable {
	return &indexTable{dynamic: newDynamicTable(maxDynamicSize)}
}

// get resolves an absolute index to its entry.
func (it *indexTable) get(index int) (HeaderField, bool) {
	if index < 1 {
		return HeaderField{}, false
	}
	if index <= staticTableSize {
		return staticEntry(index), true
	}
	return it.dynamic.get(index - staticTableSize)
}

// maxIndex is the largest absolute index currently valid.
func (it *indexTable) maxIndex() int {
	return staticTableSize + it.dynamic.count
}

// add inserts (name, value) at the front of the dynamic table.
func (it *indexTable) add(name, value string) {
	it.dynamic.add(name, value)
}

// findIndex returns the smallest absolute index whose entry matches
// both name and value (spec §4.6): static table searched first (lower
// indices preferred), then the dynamic table newest-first.
func (it *indexTable) findIndex(name, value string) (index int, exact bool) {
	if si, ok := findStaticIndex(name, value); ok {
		return si, true
	}

	if di := it.dynamic.findExact(name, value); di > 0 {
		return staticTableSize + di, true
	}

	// No exact match anywhere; fall back to a name-only match,
	// static still preferred.
	if si, _ := findStaticIndex(name, value); si > 0 {
		return si, false
	}
	if di := it.dynamic.findName(name); di > 0 {
		return staticTableSize + di, false
	}
	return 0, false
}

// findIndexHinted behaves like findIndex but first tries a caller
// supplied (name,value) -> relative-dynamic-index snapshot (spec
// §4.6's performance contract), validating it against the live table
// before trusting it so static-first precedence and correctness are
// never compromised by a stale hint.
func (it *indexTable) findIndexHinted(name, value string, hint map[string]int) (index int, exact bool) {
	if si, ok := findStaticIndex(name, value); ok {
		return si, true
	}

	if hint != nil {
		if ri, ok := hint[name+"\x00"+value]; ok && it.dynamic.verify(ri, name, value) {
			return staticTableSize + ri, true
		}
	}

	return it.findIndex(name, value)
}

// findNameIndex returns the smallest absolute index whose entry's
// name matches, regardless of value (spec §4.6), static-first.
func (it *indexTable) findNameIndex(name string) int {
	if si, ok := staticNameIndex[name]; ok {
		return si
	}
	if di := it.dynamic.findName(name); di > 0 {
		return staticTableSize + di
	}
	return 0
}

func (it *indexTable) setMaxDynamicSize(size uint64) error {
	return it.dynamic.setMaxSize(size)
}

func (it *indexTable) dynamicTableSize() uint64 {
	return it.dynamic.size
}

func (it *indexTable) snapshot() map[string]int {
	return it.dynamic.snapshot()
}

func (it *indexTable) reset() {
	it.dynamic.reset()
}
