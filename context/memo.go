package context

import (
	"github.com/cespare/xxhash/v2"
)

// ruleID is the interned, stable identity of a rule name for the life of
// a grammar (spec.md §3 "Memoization key", §9 "rule-identity").
type ruleID uint64

// ruleInterner hashes rule names once with xxhash (cespare/xxhash/v2,
// per the DOMAIN STACK) and reuses the hash for every subsequent lookup
// against the same name within one parse.
type ruleInterner struct {
	ids map[string]ruleID
}

func newRuleInterner() *ruleInterner {
	return &ruleInterner{ids: make(map[string]ruleID)}
}

func (r *ruleInterner) intern(name string) ruleID {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := ruleID(xxhash.Sum64String(name))
	r.ids[name] = id
	return id
}

// memoKey is the memoization key: a (position, rule-identity) pair.
type memoKey struct {
	pos int
	id  ruleID
}

// memoEntry is either a successful (value, end-position) pair or the
// failure it produced; both are memoized (spec.md §3).
type memoEntry struct {
	ok    bool
	value any
	end   int
	err   error
}

// memoCache is the packrat cache owned by one ParseContext.
type memoCache struct {
	entries map[memoKey]memoEntry
}

func newMemoCache() *memoCache {
	return &memoCache{entries: make(map[memoKey]memoEntry)}
}

func (m *memoCache) get(k memoKey) (memoEntry, bool) {
	e, ok := m.entries[k]
	return e, ok
}

func (m *memoCache) put(k memoKey, e memoEntry) {
	m.entries[k] = e
}

// purgeBefore removes every entry at a position strictly less than pos,
// the effect of Cut described in spec.md §4.3: after a cut, nothing
// before it can ever be revisited, so those entries can never be hit
// again.
func (m *memoCache) purgeBefore(pos int) {
	for k := range m.entries {
		if k.pos < pos {
			delete(m.entries, k)
		}
	}
}
