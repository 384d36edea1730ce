package context

import "github.com/arriqaaq/peggen/perr"

// Body is the signature every scoped operation's callback satisfies.
type Body func() (any, error)

// Try saves position, runs body under a fresh AST/CST slot, and on
// success merges the child AST/CST into the parent; on failure it
// restores position and discards the child state (spec.md §4.3).
func (c *Context) Try(body Body) (any, error) {
	start := c.Buf.Pos()
	c.pushAST()
	c.pushCST()
	val, err := body()
	if err != nil {
		c.Buf.Goto(start)
		c.popAST()
		c.popCST()
		return nil, err
	}
	childAST := c.popAST()
	childCST := c.popCST()
	c.AST().Update(childAST)
	c.CST().Extend(childCST)
	return val, nil
}

// Option pushes a cut-flag scope and wraps body in Try. On failure: if
// cut was observed in this scope, the failure is converted to a
// CommittedError; otherwise it is swallowed (matched=false, err=nil),
// spec.md §4.3. A failure that already arrives committed (cut fired in
// some scope nested deeper than this one) is passed through untouched —
// this scope's own cut-flag is irrelevant to a commitment it didn't
// make, and only the enclosing choice is allowed to unwrap it.
func (c *Context) Option(body Body) (val any, matched bool, err error) {
	c.pushCut()
	val, bodyErr := c.Try(body)
	cutHappened := c.popCut()
	if bodyErr == nil {
		return val, true, nil
	}
	if _, already := perr.Committed(bodyErr); already {
		return nil, false, bodyErr
	}
	if cutHappened {
		return nil, false, perr.Commit(bodyErr)
	}
	return nil, false, nil
}

// UnwrapCommitted strips a CommittedError wrapper, reporting whether err
// was one. Used by Choice scopes to bound cut's effect to the
// alternation that observed it (spec.md §4.3/§7).
func UnwrapCommitted(err error) (error, bool) {
	if ce, ok := err.(*perr.CommittedError); ok {
		return ce.ParseError, true
	}
	return err, false
}

// Group pushes a fresh CST slot, runs body, and on success appends the
// collected child CST to the parent as one unit (spec.md §4.3).
func (c *Context) Group(body Body) (any, error) {
	c.pushCST()
	val, err := body()
	child := c.popCST()
	if err != nil {
		return nil, err
	}
	c.CST().Add(child.Value())
	return val, nil
}

// If runs body for its side effects on position, always restores
// position and discards the AST, and fails with a lookahead error if
// body failed (spec.md §4.3, the "&e" syntactic predicate).
func (c *Context) If(body Body) (any, error) {
	start := c.Buf.Pos()
	c.pushAST()
	_, err := body()
	c.popAST()
	c.Buf.Goto(start)
	if err != nil {
		pe := c.NewError(perr.KindLookaheadFailed, "lookahead assertion failed")
		pe.Inner = err
		return nil, pe
	}
	return nil, nil
}

// Ifnot runs body; if it succeeds, Ifnot reports a lookahead failure,
// otherwise it swallows the failure and succeeds. Position and AST are
// always restored/discarded (spec.md §4.3, the "!e" syntactic predicate).
func (c *Context) Ifnot(body Body) (any, error) {
	start := c.Buf.Pos()
	c.pushAST()
	_, err := body()
	c.popAST()
	c.Buf.Goto(start)
	if err == nil {
		return nil, c.NewError(perr.KindLookaheadFailed, "negative lookahead assertion failed")
	}
	return nil, nil
}

// Repeat runs body repeatedly under Try, collecting successful results,
// stopping at the first failure. If the failure occurred while cut had
// been observed within this repeat scope, it is converted to a
// committed failure. A failure that arrives already committed from a
// deeper scope is never downgraded back into an ordinary end-of-closure
// stop — it propagates untouched regardless of atLeastOne or how many
// results were already collected. atLeastOne enforces the
// PositiveClosure requirement of one-or-more matches (spec.md §4.3).
func (c *Context) Repeat(body Body, atLeastOne bool) ([]any, error) {
	c.pushCut()
	var results []any
	var lastErr error
	for {
		start := c.Buf.Pos()
		val, err := c.Try(body)
		if err != nil {
			lastErr = err
			break
		}
		if c.Buf.Pos() == start {
			c.popCut()
			return nil, c.NewError(perr.KindGrammarError, "closure body matched without consuming input")
		}
		results = append(results, val)
	}
	cutHappened := c.popCut()
	if _, already := perr.Committed(lastErr); already {
		return nil, lastErr
	}
	if cutHappened {
		return nil, perr.Commit(lastErr)
	}
	if atLeastOne && len(results) == 0 {
		return nil, lastErr
	}
	return results, nil
}
