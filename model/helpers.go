package model

import (
	"fmt"
	"strings"

	"github.com/arriqaaq/peggen/parser"
	"github.com/arriqaaq/peggen/perr"
)

// contextUnwrap strips a committed-failure wrapper, reporting whether err
// was one. Choice.Parse uses this to bound cut's effect to the
// alternation that observed it (spec.md §4.3/§7); everything else
// (Optional, Closure, PositiveClosure) just propagates a committed error
// unchanged so it reaches the nearest enclosing Choice.
func contextUnwrap(err error) (error, bool) {
	if ce, ok := perr.Committed(err); ok {
		return ce.ParseError, true
	}
	return err, false
}

func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}

// unmatchedToken peeks the run of non-whitespace text at the parser's
// current position without consuming it, for use as the "got" side of a
// suggestion lookup (spec.md §7's no-viable-option diagnostics). Returns
// "" at end of input or when nothing non-whitespace is there to peek.
func unmatchedToken(p *parser.Parser) string {
	buf := p.Ctx().Buf
	start := buf.Pos()
	tok, ok := buf.MatchRegexp(`\S+`)
	buf.Goto(start)
	if !ok {
		return ""
	}
	return tok
}

// firstOneLiterals collects the distinct single-token leading literals
// for diag's "expected one of ..." message (spec.md §7), derived from
// Choice's own First(1) set. It runs without a *Grammar (Choice.Parse
// has no reference to one), so RuleRef leaves resolve to a placeholder
// rather than recursing into the referenced rule's body.
func firstOneLiterals(c *Choice, _ any) []string {
	seen := map[string]bool{}
	var out []string
	for _, opt := range c.Options {
		for _, tuple := range opt.First(1, nil, map[Expr]bool{}) {
			if len(tuple) == 0 {
				continue
			}
			lit := tuple[0]
			if !seen[lit] {
				seen[lit] = true
				out = append(out, lit)
			}
		}
	}
	return out
}
