package model

import (
	"github.com/arriqaaq/peggen/buffer"
	"github.com/arriqaaq/peggen/context"
	"github.com/arriqaaq/peggen/parser"
)

// Rule is one named production in the grammar model: a name, its body
// expression, and an optional ast_name wrap (spec.md §9 open question c).
type Rule struct {
	Name     string
	Expr     Expr
	WrapName string
}

// toParserRule adapts a model.Rule into the engine's parser.Rule, whose
// Fn simply interprets Expr against the running Parser.
func (r *Rule) toParserRule() *parser.Rule {
	return &parser.Rule{
		Name:     r.Name,
		WrapName: r.WrapName,
		Fn:       func(p *parser.Parser) (any, error) { return r.Expr.Parse(p) },
	}
}

// Grammar is the top-level grammar-model node: an ordered set of rules
// plus grammar-level directives (spec.md §3, the "@@directives" form
// supplemented from original_source/grako — see SPEC_FULL.md). It
// implements parser.Ruleset, making it the seam between the interpreted
// grammar-model tree and the rule-invocation engine.
type Grammar struct {
	Name       string
	StartRule  string
	Rules      []*Rule
	Directives map[string]string

	rulesByName map[string]*Rule
}

// NewGrammar builds a Grammar and indexes its rules by name. Called once
// after the bootstrap parser (or a hand-built grammar literal) has
// assembled the rule list.
func NewGrammar(name, start string, rules []*Rule, directives map[string]string) *Grammar {
	g := &Grammar{Name: name, StartRule: start, Rules: rules, Directives: directives}
	g.index()
	return g
}

func (g *Grammar) index() {
	g.rulesByName = make(map[string]*Rule, len(g.Rules))
	for _, r := range g.Rules {
		g.rulesByName[r.Name] = r
	}
}

// Lookup implements parser.Ruleset.
func (g *Grammar) Lookup(name string) (*parser.Rule, bool) {
	r, ok := g.rulesByName[name]
	if !ok {
		return nil, false
	}
	return r.toParserRule(), true
}

// RuleNames implements parser.Ruleset.
func (g *Grammar) RuleNames() []string {
	names := make([]string, len(g.Rules))
	for i, r := range g.Rules {
		names[i] = r.Name
	}
	return names
}

// Rule returns the named rule's model node, or nil.
func (g *Grammar) Rule(name string) *Rule { return g.rulesByName[name] }

// Parse runs the grammar's start rule (or startRule if non-empty) over
// text, applying the grammar's own @@whitespace/@@comments directives to
// the buffer before parsing (spec.md §4.6/SPEC_FULL.md directives
// section). spec.md §4.5 requires the start rule to be invoked "within a
// choice scope" so cut's effect stays bounded even with no grammar-level
// Choice above it; here that means unwrapping a *perr.CommittedError
// surfacing directly from the call (e.g. a start rule whose own
// top-level Closure/Optional observed a cut with nothing above it to
// unwrap) into the plain *perr.ParseError every caller expects.
func (g *Grammar) Parse(text, startRule string, opts ...context.Option) (any, error) {
	rule := startRule
	if rule == "" {
		rule = g.StartRule
	}
	if rule == "" && len(g.Rules) > 0 {
		rule = g.Rules[0].Name
	}

	bufOpts := g.bufferOptions()
	buf := buffer.New(text, bufOpts...)
	ctx := context.New(buf, opts...)
	p := parser.New(ctx, g)

	val, err := p.Call(rule)
	if err != nil {
		if plain, committed := context.UnwrapCommitted(err); committed {
			return nil, plain
		}
		return nil, err
	}
	return val, nil
}

// bufferOptions translates @@whitespace/@@comments/@@nameguard/@@ignorecase
// grammar directives into buffer.Option values (SPEC_FULL.md supplemented
// features, modeled on grako's Grammar.directives).
func (g *Grammar) bufferOptions() []buffer.Option {
	var opts []buffer.Option
	if v, ok := g.Directives["whitespace"]; ok {
		set := make(map[rune]bool, len(v))
		for _, r := range v {
			set[r] = true
		}
		opts = append(opts, buffer.Whitespace(set))
	}
	if v, ok := g.Directives["comments"]; ok {
		opts = append(opts, buffer.CommentRegexp(v))
	}
	if v, ok := g.Directives["nameguard"]; ok {
		opts = append(opts, buffer.Nameguard(v != "False" && v != "false"))
	}
	if v, ok := g.Directives["ignorecase"]; ok {
		opts = append(opts, buffer.IgnoreCase(v == "True" || v == "true"))
	}
	return opts
}
