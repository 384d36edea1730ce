// Package model implements the grammar-expression tree described in
// spec.md §3/§4.5: a tagged sum of expression kinds that both
// interprets itself against a Parser (self-interpretation) and renders
// to EBNF/target-language source.
package model

import (
	"github.com/arriqaaq/peggen/parser"
	"github.com/arriqaaq/peggen/perr"
)

// Expr is the grammar-expression sum type: every variant implements
// Parse (interpreter mode) and First (first(k) computation).
type Expr interface {
	Parse(p *parser.Parser) (any, error)
	First(k int, g *Grammar, seen map[Expr]bool) [][]string
}

// Token matches a literal (spec.md §3).
type Token struct{ Literal string }

func (t *Token) Parse(p *parser.Parser) (any, error) {
	v, err := p.Token(t.Literal)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Pattern matches a regular expression (spec.md §3).
type Pattern struct{ Regex string }

func (pt *Pattern) Parse(p *parser.Parser) (any, error) {
	v, err := p.Pattern(pt.Regex)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// RuleRef refers to another rule by name (spec.md §3).
type RuleRef struct{ Name string }

func (r *RuleRef) Parse(p *parser.Parser) (any, error) {
	return p.Call(r.Name)
}

// Void matches nothing and always succeeds (spec.md §3).
type Void struct{}

func (Void) Parse(p *parser.Parser) (any, error) { return nil, nil }

// EOF asserts the end of input (spec.md §3).
type EOF struct{}

func (EOF) Parse(p *parser.Parser) (any, error) {
	if err := p.CheckEOF(); err != nil {
		return nil, err
	}
	return nil, nil
}

// Cut commits the enclosing alternation (spec.md §3/§4.3).
type Cut struct{}

func (Cut) Parse(p *parser.Parser) (any, error) {
	p.Ctx().Cut()
	return nil, nil
}

// Special carries opaque diagnostic annotation text, parsed but never
// interpreted (spec.md §3, the "?( … )?" EBNF form).
type Special struct{ Text string }

func (Special) Parse(p *parser.Parser) (any, error) { return nil, nil }

// Fail always fails; used to express an explicit, unconditional grammar
// failure (spec.md §3).
type Fail struct{}

func (Fail) Parse(p *parser.Parser) (any, error) {
	return nil, p.Ctx().NewError(perr.KindNoViableOption, "fail")
}

// Group isolates its child's CST contribution into a single unit
// (spec.md §3/§4.3).
type Group struct{ Child Expr }

func (g *Group) Parse(p *parser.Parser) (any, error) {
	return p.Ctx().Group(func() (any, error) { return g.Child.Parse(p) })
}

// Optional yields no value (not an error) when its child fails
// (spec.md §3/§4.3).
type Optional struct{ Child Expr }

func (o *Optional) Parse(p *parser.Parser) (any, error) {
	val, matched, err := p.Ctx().Option(func() (any, error) { return o.Child.Parse(p) })
	if err != nil {
		// A committed failure is not "no match" — it must keep
		// propagating until the enclosing Choice unwraps it.
		return nil, err
	}
	if !matched {
		return nil, nil
	}
	return val, nil
}

// Closure matches its child zero or more times (spec.md §3).
type Closure struct{ Child Expr }

func (c *Closure) Parse(p *parser.Parser) (any, error) {
	vals, err := p.Ctx().Repeat(func() (any, error) { return c.Child.Parse(p) }, false)
	if err != nil {
		return nil, err
	}
	return toAnySlice(vals), nil
}

// PositiveClosure matches its child one or more times (spec.md §3).
type PositiveClosure struct{ Child Expr }

func (c *PositiveClosure) Parse(p *parser.Parser) (any, error) {
	vals, err := p.Ctx().Repeat(func() (any, error) { return c.Child.Parse(p) }, true)
	if err != nil {
		return nil, err
	}
	return toAnySlice(vals), nil
}

func toAnySlice(vals []any) []any {
	if vals == nil {
		return []any{}
	}
	return vals
}

// Lookahead is the "&e" syntactic predicate (spec.md §3).
type Lookahead struct{ Child Expr }

func (l *Lookahead) Parse(p *parser.Parser) (any, error) {
	return p.Ctx().If(func() (any, error) { return l.Child.Parse(p) })
}

// LookaheadNot is the "!e" syntactic predicate (spec.md §3).
type LookaheadNot struct{ Child Expr }

func (l *LookaheadNot) Parse(p *parser.Parser) (any, error) {
	return p.Ctx().Ifnot(func() (any, error) { return l.Child.Parse(p) })
}

// Named binds its child's result to an AST key (spec.md §3). ForceList
// makes the very first add already a single-element list (the "+:"
// EBNF form).
type Named struct {
	Name      string
	Child     Expr
	ForceList bool
}

func (n *Named) Parse(p *parser.Parser) (any, error) {
	val, err := n.Child.Parse(p)
	if err != nil {
		return nil, err
	}
	p.Ctx().AST().Add(n.Name, val, n.ForceList)
	return val, nil
}

// Override binds its child's result to the "@" AST key, which makes the
// enclosing rule return that value directly instead of an AST
// (spec.md §3/§4.4).
type Override struct{ Child Expr }

func (o *Override) Parse(p *parser.Parser) (any, error) {
	val, err := o.Child.Parse(p)
	if err != nil {
		return nil, err
	}
	p.Ctx().AST().Add("@", val, false)
	return val, nil
}

// Sequence runs its items in order, filtering out nil results
// (spec.md §3/§4.5).
type Sequence struct{ Items []Expr }

func (s *Sequence) Parse(p *parser.Parser) (any, error) {
	var out []any
	for _, item := range s.Items {
		v, err := item.Parse(p)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

// Choice tries each option in order inside an Option scope; the first
// success wins. A committed failure (cut observed in the failing
// option) stops the search immediately and is unwrapped into an
// ordinary failure for whatever encloses this Choice, bounding cut's
// effect to this alternation (spec.md §3/§4.3/§4.5/§7).
type Choice struct{ Options []Expr }

func (c *Choice) Parse(p *parser.Parser) (any, error) {
	var lastErrs []error
	for _, opt := range c.Options {
		val, matched, err := p.Ctx().Option(func() (any, error) { return opt.Parse(p) })
		if err != nil {
			plain, wasCommitted := contextUnwrap(err)
			if wasCommitted {
				return nil, plain
			}
			lastErrs = append(lastErrs, err)
			continue
		}
		if matched {
			return val, nil
		}
	}
	return nil, c.noViableOption(p, lastErrs)
}

func (c *Choice) noViableOption(p *parser.Parser, errs []error) error {
	pe := p.Ctx().NewError(perr.KindNoViableOption, "no viable alternative")
	if want := firstOneLiterals(c, p); len(want) > 0 {
		pe.Message = "no viable alternative; expected one of " + joinQuoted(want)
		if tok := unmatchedToken(p); tok != "" {
			pe.Suggestions = perr.ClosestNames(tok, want, 3)
		}
	}
	return pe
}
