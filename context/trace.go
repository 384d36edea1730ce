package context

// TraceEnter/TraceSuccess/TraceFailed log rule-invocation events through
// the configured logr.Logger (spec.md §4.4 "trace 'ENTER'", "'SUCCESS'
// or 'FAILED'"), replacing pigeon's own stdout-writing debug dump
// (vm/static_code.go dumpSnapshot) with structured logging.
func (c *Context) TraceEnter(rule string, pos int) {
	if !c.trace {
		return
	}
	c.log.V(1).Info("ENTER", "rule", rule, "pos", pos)
}

func (c *Context) TraceSuccess(rule string, start, end int) {
	if !c.trace {
		return
	}
	c.log.V(1).Info("SUCCESS", "rule", rule, "start", start, "end", end)
}

func (c *Context) TraceFailed(rule string, pos int, err error) {
	if !c.trace {
		return
	}
	c.log.V(1).Info("FAILED", "rule", rule, "pos", pos, "err", err)
}

// MemoGet/MemoPut expose the packrat cache to the Parser base (§4.4
// invoke_rule), interning rule names to stable identities via xxhash.
func (c *Context) MemoGet(rule string, pos int) (memoEntry, bool) {
	return c.memo.get(memoKey{pos: pos, id: c.interner.intern(rule)})
}

func (c *Context) MemoPut(rule string, pos int, value any, end int, err error) {
	c.memo.put(memoKey{pos: pos, id: c.interner.intern(rule)}, memoEntry{
		ok: err == nil, value: value, end: end, err: err,
	})
}

// MemoEntryValue/MemoEntryErr/MemoEntryEnd/MemoEntryOK expose memoEntry
// fields to callers outside the package without leaking the type.
func MemoEntryOK(e memoEntry) bool       { return e.ok }
func MemoEntryValue(e memoEntry) any     { return e.value }
func MemoEntryEnd(e memoEntry) int       { return e.end }
func MemoEntryErr(e memoEntry) error     { return e.err }
