package hpack

import tinylfu "github.com/dgryski/go-tinylfu"

// candidatePool is the encoder's probation counter (spec §3
// EncoderState.candidate_pool): an observation count per (name,value)
// pair, used to defer dynamic-table promotion until a pair has been
// seen ProbationThreshold times (spec §4.8 step 4).
//
// Design Notes §9 flags the reference pool as unbounded and says a
// production reimplementation SHOULD cap it with LFU eviction; this
// is built directly on dgryski/go-tinylfu (see SPEC_FULL.md §11)
// instead of a bare map, the way elliotnunn-BeHierarchic's
// internal/spinner package bounds its own caches.
type candidatePool struct {
	cache *tinylfu.T[pairKey, int]
}

type pairKey struct {
	name  string
	value string
}

func pairHasher(k pairKey) uint64 {
	return hashExact(k.name, k.value)
}

// candidatePoolCapacity bounds the number of distinct (name,value)
// pairs tracked at once; beyond this, least-frequently-used pairs are
// evicted, resetting their observation count to zero on next sight.
const candidatePoolCapacity = 4096

func newCandidatePool() *candidatePool {
	return &candidatePool{
		cache: tinylfu.New[pairKey, int](candidatePoolCapacity, candidatePoolCapacity*10, pairHasher),
	}
}

// observe increments and returns the observation count for (name,
// value). The count persists across EncodeBlock calls on one Encoder
// until Reset or LFU eviction (spec §9's open question on probation scope:
// the counter is per-connection, not per-block).
func (p *candidatePool) observe(name, value string) int {
	key := pairKey{name: name, value: value}
	count := 0
	if v, ok := p.cache.Get(key); ok {
		count = v
	}
	count++
	p.cache.Add(key, count)
	return count
}

func (p *candidatePool) reset() {
	p.cache = tinylfu.New[pairKey, int](candidatePoolCapacity, candidatePoolCapacity*10, pairHasher)
}
