// Package parser implements the rule-invocation engine described in
// spec.md §4.4: memoized rule calls, the token/pattern primitives, EOF
// checking and semantic-action dispatch. It is the base every grammar
// (self-interpreting or generated) is built on.
package parser

import (
	"unicode"

	"github.com/arriqaaq/peggen/context"
	"github.com/arriqaaq/peggen/node"
	"github.com/arriqaaq/peggen/perr"
)

// RuleFunc is the body of one grammar rule: it runs primitive/scoped
// operations against p and returns the rule's raw parse result.
type RuleFunc func(p *Parser) (any, error)

// Rule pairs a rule's body with the metadata the engine needs to apply
// §4.4/§4.5's invoke_rule policy.
type Rule struct {
	Name     string
	WrapName string // non-empty: ast_name wrap (spec.md §9 open question c)
	Fn       RuleFunc
}

// Ruleset resolves rule names to their bodies. model.Grammar implements
// this; it is the seam between the parser engine and the grammar model.
type Ruleset interface {
	Lookup(name string) (*Rule, bool)
	RuleNames() []string
}

// Parser owns one Context and a Ruleset and drives rule invocation.
type Parser struct {
	ctx   *context.Context
	rules Ruleset
}

// New builds a Parser over ctx, resolving rules against rules.
func New(ctx *context.Context, rules Ruleset) *Parser {
	return &Parser{ctx: ctx, rules: rules}
}

// Ctx returns the underlying ParseContext, for grammar-model expressions
// that need scoped operations (Try/Option/Group/If/Ifnot/Repeat/Cut).
func (p *Parser) Ctx() *context.Context { return p.ctx }

// Call invokes rule name at the current position (spec.md §4.4): it
// pushes the rule-name stack, traces entry, delegates to InvokeRule, and
// on success advances the buffer to the returned end position and adds
// the produced node to the parent CST.
func (p *Parser) Call(name string) (any, error) {
	start := p.ctx.Buf.Pos()
	p.ctx.PushRule(name)
	p.ctx.TraceEnter(name, start)

	val, end, err := p.InvokeRule(name, start)
	if err != nil {
		p.ctx.TraceFailed(name, start, err)
		p.ctx.PopRule()
		p.ctx.Buf.Goto(start)
		return nil, err
	}

	p.ctx.Buf.Goto(end)
	p.ctx.CST().Add(val)
	p.ctx.TraceSuccess(name, start, end)
	p.ctx.PopRule()
	return val, nil
}

// InvokeRule implements §4.4's invoke_rule: memoization lookup/replay,
// rule-body execution, node determination (CST, @ override, ParseInfo),
// semantic dispatch and memoization of the outcome.
func (p *Parser) InvokeRule(name string, start int) (any, int, error) {
	if entry, ok := p.ctx.MemoGet(name, start); ok {
		if context.MemoEntryOK(entry) {
			return context.MemoEntryValue(entry), context.MemoEntryEnd(entry), nil
		}
		return nil, start, context.MemoEntryErr(entry)
	}

	rule, ok := p.rules.Lookup(name)
	if !ok {
		err := p.unknownRuleError(name)
		p.ctx.MemoPut(name, start, nil, start, err)
		return nil, start, err
	}

	if startsLowercase(name) {
		p.ctx.Buf.NextToken()
	}

	ast, cst, err := p.ctx.InvokeScope(func() error {
		_, err := rule.Fn(p)
		return err
	})
	if err != nil {
		p.ctx.MemoPut(name, start, nil, start, err)
		return nil, start, err
	}

	end := p.ctx.Buf.Pos()
	value := p.resolveNode(rule, ast, cst, start, end)

	if sem := p.ctx.Semantics(); sem != nil {
		if fn, ok := sem.Rule(name); ok {
			newVal, semErr := fn(value, ast)
			if semErr != nil {
				pe := p.ctx.NewError(perr.KindSemanticRejection, "semantic rule %q rejected: %v", name, semErr)
				pe.Inner = semErr
				p.ctx.MemoPut(name, start, nil, start, pe)
				return nil, start, pe
			}
			value = newVal
		}
	}

	p.ctx.MemoPut(name, start, value, end, nil)
	return value, end, nil
}

// resolveNode applies §4.4/§4.5's node-selection policy after a rule's
// body ran successfully: empty AST -> CST; "@" override present -> that
// value; optional ast_name wrap; optional ParseInfo attachment.
func (p *Parser) resolveNode(rule *Rule, ast *node.AST, cst *node.CST, start, end int) any {
	var value any
	if ast.Empty() {
		value = cst.Value()
	} else if v := ast.Get("@"); !node.IsMissing(v) {
		value = v
	} else {
		value = ast
	}

	if p.ctx.ParseInfoEnabled() {
		if a, ok := value.(*node.AST); ok {
			a.Add(node.ParseInfoKey, node.ParseInfo{
				Buffer:   p.ctx.Buf.Handle(),
				Rule:     rule.Name,
				StartPos: start,
				EndPos:   end,
			}, false)
		}
	}

	if rule.WrapName != "" {
		wrapped := node.NewAST()
		wrapped.Add(rule.WrapName, value, false)
		value = wrapped
	}

	return value
}

func startsLowercase(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)[0]
	return unicode.IsLower(r)
}

func (p *Parser) unknownRuleError(name string) *perr.ParseError {
	pe := p.ctx.NewError(perr.KindUnknownRule, "unknown rule %q", name)
	pe.Suggestions = perr.ClosestNames(name, p.rules.RuleNames(), 3)
	return pe
}

// Token matches literal lit via NextToken + Buffer.Match, failing with
// an expected-token error when it does not match (spec.md §4.4).
func (p *Parser) Token(lit string) (string, error) {
	p.ctx.Buf.NextToken()
	s, ok := p.ctx.Buf.Match(lit)
	if !ok {
		return "", p.ctx.NewError(perr.KindExpectedToken, "expected %q", lit)
	}
	p.ctx.CST().Add(s)
	return s, nil
}

// TryToken is Token without raising on failure: it reports a miss as
// ok=false instead of returning an error.
func (p *Parser) TryToken(lit string) (string, bool) {
	p.ctx.Buf.NextToken()
	s, ok := p.ctx.Buf.Match(lit)
	if ok {
		p.ctx.CST().Add(s)
	}
	return s, ok
}

// Pattern matches regex re anchored at the current position without
// skipping whitespace first (spec.md §4.4).
func (p *Parser) Pattern(re string) (string, error) {
	s, ok := p.ctx.Buf.MatchRegexp(re)
	if !ok {
		return "", p.ctx.NewError(perr.KindExpectedPattern, "expected pattern /%s/", re)
	}
	p.ctx.CST().Add(s)
	return s, nil
}

// TryPattern is Pattern without raising on failure.
func (p *Parser) TryPattern(re string) (string, bool) {
	s, ok := p.ctx.Buf.MatchRegexp(re)
	if ok {
		p.ctx.CST().Add(s)
	}
	return s, ok
}

// CheckEOF skips whitespace/comments and fails unless the buffer is at
// end (spec.md §4.4).
func (p *Parser) CheckEOF() error {
	p.ctx.Buf.NextToken()
	if !p.ctx.Buf.AtEnd() {
		return p.ctx.NewError(perr.KindExpectedPattern, "expected end of input")
	}
	return nil
}

// RuleList returns the names of every rule the parser exposes (spec.md
// §4.4 rule_list()).
func (p *Parser) RuleList() []string {
	return p.rules.RuleNames()
}
