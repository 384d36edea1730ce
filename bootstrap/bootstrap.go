// Package bootstrap implements the hand-written EBNF parser described in
// spec.md §4.6: it consumes the EBNF dialect grammar.go 's surface syntax
// targets and produces a *model.Grammar. Its rule methods mirror the
// grammar-model operators directly (Choice, Sequence, Closure, ...)
// rather than going through the self-interpreting engine, since it is
// what bootstraps that engine in the first place.
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/arriqaaq/peggen/buffer"
	"github.com/arriqaaq/peggen/model"
	"github.com/arriqaaq/peggen/perr"
)

// Parser holds the hand-rolled recursive-descent state over one grammar
// source text.
type Parser struct {
	buf        *buffer.Buffer
	directives map[string]string
}

// ParseGrammar parses text (the contents of a grammar file) and returns
// the resulting model.Grammar, or the first *perr.ParseError encountered.
func ParseGrammar(name, text string) (*model.Grammar, error) {
	p := &Parser{
		buf:        buffer.New(text, buffer.CommentRegexp(`(?s)\(\*.*?\*\)`)),
		directives: map[string]string{},
	}
	return p.grammar(name)
}

func (p *Parser) errf(format string, args ...any) error {
	pos := p.buf.Pos()
	line, col, _, lineText := p.buf.LineInfo(pos)
	return &perr.ParseError{
		Kind:     perr.KindGrammarError,
		Pos:      perr.Pos{Line: line, Col: col, Offset: pos},
		Message:  fmt.Sprintf(format, args...),
		LineText: lineText,
	}
}

func (p *Parser) skip() { p.buf.NextToken() }

// grammar = {directive} rule+ ;
func (p *Parser) grammar(name string) (*model.Grammar, error) {
	p.skip()
	for p.peekDirective() {
		if err := p.directive(); err != nil {
			return nil, err
		}
		p.skip()
	}

	byName := map[string]*model.Rule{}
	var order []string
	for {
		p.skip()
		if p.buf.AtEnd() {
			break
		}
		r, err := p.rule()
		if err != nil {
			return nil, err
		}
		if existing, ok := byName[r.Name]; ok {
			// duplicate rule names extend the RHS as an ordered choice
			// (spec.md §4.6).
			existing.Expr = &model.Choice{Options: []model.Expr{existing.Expr, r.Expr}}
		} else {
			byName[r.Name] = r
			order = append(order, r.Name)
		}
	}
	if len(order) == 0 {
		return nil, p.errf("grammar has no rules")
	}

	rules := make([]*model.Rule, len(order))
	for i, n := range order {
		rules[i] = byName[n]
	}
	if err := validateRefs(rules); err != nil {
		return nil, err
	}
	return model.NewGrammar(name, order[0], rules, p.directives), nil
}

func validateRefs(rules []*model.Rule) error {
	known := make(map[string]bool, len(rules))
	for _, r := range rules {
		known[r.Name] = true
	}
	var missing []string
	for _, r := range rules {
		for _, ref := range model.RuleRefsIn(r.Expr) {
			if !known[ref] {
				missing = append(missing, ref)
			}
		}
	}
	if len(missing) > 0 {
		return &perr.ParseError{
			Kind:    perr.KindUnknownRule,
			Message: fmt.Sprintf("grammar references unresolved rule(s): %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

// directive = "@@" name value ;  (SPEC_FULL.md supplemented feature,
// grounded on original_source/grako's Grammar.directives)
func (p *Parser) peekDirective() bool {
	p.skip()
	return hasPrefixAt(p.buf, "@@")
}

func (p *Parser) directive() error {
	if _, ok := p.buf.Match("@@"); !ok {
		return p.errf("expected '@@'")
	}
	p.skip()
	key, ok := p.identifier()
	if !ok {
		return p.errf("expected directive name")
	}
	p.skip()
	value := p.restOfLine()
	p.directives[strings.ToLower(key)] = strings.TrimSpace(value)
	return nil
}

func (p *Parser) restOfLine() string {
	start := p.buf.Pos()
	for !p.buf.AtEOL() {
		p.buf.Move(1)
	}
	return p.buf.Slice(start)
}

// rule = identifier "=" choice ( ";" | "." ) ;
func (p *Parser) rule() (*model.Rule, error) {
	name, ok := p.identifier()
	if !ok {
		return nil, p.errf("expected rule name")
	}
	p.skip()
	if _, ok := p.buf.Match("="); !ok {
		return nil, p.errf("expected '=' after rule name %q", name)
	}
	p.skip()
	expr, err := p.choice()
	if err != nil {
		return nil, err
	}
	p.skip()
	if _, ok := p.buf.Match(";"); !ok {
		if _, ok := p.buf.Match("."); !ok {
			return nil, p.errf("expected ';' or '.' to close rule %q", name)
		}
	}
	return &model.Rule{Name: name, Expr: expr}, nil
}

// choice = sequence { "|" sequence } ;
func (p *Parser) choice() (model.Expr, error) {
	first, err := p.sequence()
	if err != nil {
		return nil, err
	}
	opts := []model.Expr{first}
	for {
		save := p.buf.Pos()
		p.skip()
		if _, ok := p.buf.Match("|"); ok {
			p.skip()
			next, err := p.sequence()
			if err != nil {
				return nil, err
			}
			opts = append(opts, next)
			continue
		}
		p.buf.Goto(save)
		break
	}
	if len(opts) == 1 {
		return opts[0], nil
	}
	return &model.Choice{Options: opts}, nil
}

// sequence = prefix { prefix } ;
func (p *Parser) sequence() (model.Expr, error) {
	var items []model.Expr
	for {
		save := p.buf.Pos()
		p.skip()
		if p.atSequenceEnd() {
			p.buf.Goto(save)
			break
		}
		item, err := p.prefix()
		if err != nil {
			p.buf.Goto(save)
			break
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, p.errf("expected an expression")
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return &model.Sequence{Items: items}, nil
}

func (p *Parser) atSequenceEnd() bool {
	if p.buf.AtEnd() {
		return true
	}
	r, _ := p.buf.Current()
	switch r {
	case '|', ';', '.', ')', ']', '}':
		return true
	}
	return false
}

// prefix = [ "&" | "!" ] suffix ;
func (p *Parser) prefix() (model.Expr, error) {
	if _, ok := p.buf.Match("&"); ok {
		p.skip()
		child, err := p.suffix()
		if err != nil {
			return nil, err
		}
		return &model.Lookahead{Child: child}, nil
	}
	if _, ok := p.buf.Match("!"); ok {
		p.skip()
		child, err := p.suffix()
		if err != nil {
			return nil, err
		}
		return &model.LookaheadNot{Child: child}, nil
	}
	if _, ok := p.buf.Match("@"); ok {
		p.skip()
		child, err := p.suffix()
		if err != nil {
			return nil, err
		}
		return &model.Override{Child: child}, nil
	}
	return p.named()
}

// named = [ identifier ( ":" | "+:" ) ] suffix ;
func (p *Parser) named() (model.Expr, error) {
	save := p.buf.Pos()
	if name, ok := p.identifier(); ok {
		forceList := false
		matched := false
		if _, ok := p.buf.Match("+:"); ok {
			forceList, matched = true, true
		} else if _, ok := p.buf.Match(":"); ok {
			matched = true
		}
		if matched {
			p.skip()
			child, err := p.suffix()
			if err != nil {
				return nil, err
			}
			return &model.Named{Name: name, Child: child, ForceList: forceList}, nil
		}
	}
	p.buf.Goto(save)
	return p.suffix()
}

// suffix = atom [ "*" | "+" | "?" ] ;
func (p *Parser) suffix() (model.Expr, error) {
	atom, err := p.atom()
	if err != nil {
		return nil, err
	}
	switch {
	case hasPrefixAt(p.buf, "*"):
		p.buf.Match("*")
		return &model.Closure{Child: atom}, nil
	case hasPrefixAt(p.buf, "+"):
		p.buf.Match("+")
		return &model.PositiveClosure{Child: atom}, nil
	case hasPrefixAt(p.buf, "?") && !hasPrefixAt(p.buf, "?/") && !hasPrefixAt(p.buf, "?("):
		p.buf.Match("?")
		return &model.Optional{Child: atom}, nil
	}
	return atom, nil
}

func hasPrefixAt(b *buffer.Buffer, s string) bool {
	start := b.Pos()
	_, ok := b.Match(s)
	b.Goto(start)
	return ok
}

// atom = literal | pattern | special | group | closureBraces
//      | optionalBrackets | cut | eof | void | identifier ;
func (p *Parser) atom() (model.Expr, error) {
	p.skip()
	if p.buf.AtEnd() {
		return nil, p.errf("unexpected end of input")
	}
	r, _ := p.buf.Current()

	switch {
	case r == '\'' || r == '"':
		return p.literal(r)
	case hasPrefixAt(p.buf, "?("):
		return p.special()
	case hasPrefixAt(p.buf, "?/"):
		return p.pattern()
	case hasPrefixAt(p.buf, ">>"):
		p.buf.Match(">>")
		return model.Cut{}, nil
	case r == '$':
		p.buf.Match("$")
		return model.EOF{}, nil
	case hasPrefixAt(p.buf, "()"):
		p.buf.Match("()")
		return model.Void{}, nil
	case r == '(':
		return p.group()
	case r == '[':
		return p.optionalBrackets()
	case r == '{':
		return p.closureBraces()
	}

	name, ok := p.identifier()
	if !ok {
		return nil, p.errf("unexpected character %q", string(r))
	}
	return &model.RuleRef{Name: name}, nil
}

func (p *Parser) group() (model.Expr, error) {
	p.buf.Match("(")
	p.skip()
	child, err := p.choice()
	if err != nil {
		return nil, err
	}
	p.skip()
	if _, ok := p.buf.Match(")"); !ok {
		return nil, p.errf("expected ')'")
	}
	return &model.Group{Child: child}, nil
}

func (p *Parser) optionalBrackets() (model.Expr, error) {
	p.buf.Match("[")
	p.skip()
	child, err := p.choice()
	if err != nil {
		return nil, err
	}
	p.skip()
	if _, ok := p.buf.Match("]"); !ok {
		return nil, p.errf("expected ']'")
	}
	return &model.Optional{Child: child}, nil
}

// closureBraces = "{" choice "}" [ "+" | "*" ] ;
func (p *Parser) closureBraces() (model.Expr, error) {
	p.buf.Match("{")
	p.skip()
	child, err := p.choice()
	if err != nil {
		return nil, err
	}
	p.skip()
	if _, ok := p.buf.Match("}"); !ok {
		return nil, p.errf("expected '}'")
	}
	if _, ok := p.buf.Match("+"); ok {
		return &model.PositiveClosure{Child: child}, nil
	}
	// "*" is a tolerated no-op alias for plain "{e}" (spec.md §9 open
	// question b): both mean zero-or-more.
	p.buf.Match("*")
	return &model.Closure{Child: child}, nil
}

func (p *Parser) special() (model.Expr, error) {
	p.buf.Match("?(")
	start := p.buf.Pos()
	for {
		if p.buf.AtEnd() {
			return nil, p.errf("unterminated special ?( ... )?")
		}
		if hasPrefixAt(p.buf, ")?") {
			break
		}
		p.buf.Move(1)
	}
	text := p.buf.Slice(start)
	p.buf.Match(")?")
	return &model.Special{Text: text}, nil
}

func (p *Parser) pattern() (model.Expr, error) {
	p.buf.Match("?/")
	start := p.buf.Pos()
	for {
		if p.buf.AtEnd() {
			return nil, p.errf("unterminated pattern ?/ ... /?")
		}
		if hasPrefixAt(p.buf, "/?") {
			break
		}
		p.buf.Move(1)
	}
	regex := p.buf.Slice(start)
	p.buf.Match("/?")
	return &model.Pattern{Regex: regex}, nil
}

func (p *Parser) literal(quote rune) (model.Expr, error) {
	p.buf.Move(1)
	var sb strings.Builder
	for {
		r, ok := p.buf.Current()
		if !ok {
			return nil, p.errf("unterminated string literal")
		}
		if r == '\\' {
			p.buf.Move(1)
			esc, ok := p.buf.Current()
			if !ok {
				return nil, p.errf("unterminated escape in string literal")
			}
			sb.WriteRune(unescape(esc))
			p.buf.Move(1)
			continue
		}
		if r == quote {
			p.buf.Move(1)
			break
		}
		sb.WriteRune(r)
		p.buf.Move(1)
	}
	return &model.Token{Literal: sb.String()}, nil
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}

// identifier = letter { letter | digit | "_" } ;
func (p *Parser) identifier() (string, bool) {
	start := p.buf.Pos()
	r, ok := p.buf.Current()
	if !ok || !isIdentStart(r) {
		return "", false
	}
	var sb strings.Builder
	for {
		r, ok := p.buf.Current()
		if !ok || !isIdentCont(r) {
			break
		}
		sb.WriteRune(r)
		p.buf.Move(1)
	}
	if sb.Len() == 0 {
		p.buf.Goto(start)
		return "", false
	}
	return sb.String(), true
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}
