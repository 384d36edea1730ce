// Package context implements the ParseContext described in spec.md §4.3:
// position, AST/CST/cut stacks, the packrat memoization cache, trace
// hooks and the scoped backtracking operations (try, option, group, if,
// ifnot) plus the repetition helpers. Choice and optional are built on
// Option by the model package.
package context

import (
	"fmt"
	"reflect"

	"github.com/go-logr/logr"

	"github.com/arriqaaq/peggen/buffer"
	"github.com/arriqaaq/peggen/node"
	"github.com/arriqaaq/peggen/perr"
)

// SemanticFunc transforms a rule's produced value. Returning a
// non-nil error signals FailedSemantics (spec.md §4.3).
type SemanticFunc func(value any, ast *node.AST) (any, error)

// Semantics is implemented by a host-supplied object whose methods are
// dispatched by rule name after a rule successfully produces a node.
type Semantics interface {
	Rule(name string) (SemanticFunc, bool)
}

// ReflectSemantics adapts an arbitrary struct to Semantics by looking up
// an exported method named exactly like the rule (Go exports methods by
// capitalized name, so rule "expr" dispatches to method "Expr"). This is
// the idiomatic Go stand-in for grako's find_semantic_rule dynamic
// attribute lookup (spec.md §4.3/§9) — justified on stdlib reflect in
// DESIGN.md, since no library in the retrieval pack offers a better
// generic "call method by name" primitive.
type ReflectSemantics struct {
	Obj any
}

func (r ReflectSemantics) Rule(name string) (SemanticFunc, bool) {
	if r.Obj == nil || name == "" {
		return nil, false
	}
	methodName := capitalize(name)
	v := reflect.ValueOf(r.Obj)
	m := v.MethodByName(methodName)
	if !m.IsValid() {
		return nil, false
	}
	fn, ok := m.Interface().(func(any, *node.AST) (any, error))
	if !ok {
		return nil, false
	}
	return fn, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}

// Context owns one parse: the buffer, the AST/CST/cut stacks, the
// memoization cache and trace hooks.
type Context struct {
	Buf *buffer.Buffer

	astStack []*node.AST
	cstStack []*node.CST
	cutStack []bool

	ruleStack []string
	interner  *ruleInterner
	memo      *memoCache

	log       logr.Logger
	trace     bool
	parseInfo bool
	semantics Semantics
	filename  string
}

// Option configures a Context at construction.
type Option func(*Context)

func WithLogger(l logr.Logger) Option    { return func(c *Context) { c.log = l } }
func WithTrace(b bool) Option            { return func(c *Context) { c.trace = b } }
func WithParseInfo(b bool) Option        { return func(c *Context) { c.parseInfo = b } }
func WithSemantics(s Semantics) Option   { return func(c *Context) { c.semantics = s } }
func WithFilename(name string) Option    { return func(c *Context) { c.filename = name } }

// New builds a Context over buf.
func New(buf *buffer.Buffer, opts ...Option) *Context {
	c := &Context{
		Buf:      buf,
		interner: newRuleInterner(),
		memo:     newMemoCache(),
		log:      logr.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	c.pushAST()
	c.pushCST()
	return c
}

func (c *Context) pushAST() { c.astStack = append(c.astStack, node.NewAST()) }
func (c *Context) popAST() *node.AST {
	n := len(c.astStack) - 1
	a := c.astStack[n]
	c.astStack = c.astStack[:n]
	return a
}

// AST returns the current (topmost) rule's AST.
func (c *Context) AST() *node.AST { return c.astStack[len(c.astStack)-1] }

func (c *Context) pushCST() { c.cstStack = append(c.cstStack, node.NewCST()) }
func (c *Context) popCST() *node.CST {
	n := len(c.cstStack) - 1
	v := c.cstStack[n]
	c.cstStack = c.cstStack[:n]
	return v
}

// CST returns the current (topmost) rule's CST slot.
func (c *Context) CST() *node.CST { return c.cstStack[len(c.cstStack)-1] }

// InvokeScope pushes a fresh AST/CST slot for one rule invocation, runs
// body, and pops the slot back off without merging it into the parent
// (unlike Try) — the rule's own AST/CST become the raw material for
// Parser.resolveNode's node-selection policy (spec.md §4.4 invoke_rule).
func (c *Context) InvokeScope(body func() error) (*node.AST, *node.CST, error) {
	c.pushAST()
	c.pushCST()
	err := body()
	ast := c.popAST()
	cst := c.popCST()
	return ast, cst, err
}

func (c *Context) pushCut() { c.cutStack = append(c.cutStack, false) }
func (c *Context) popCut() bool {
	n := len(c.cutStack) - 1
	v := c.cutStack[n]
	c.cutStack = c.cutStack[:n]
	return v
}

// Cut sets the innermost cut-flag (spec.md §4.3).
func (c *Context) Cut() {
	if n := len(c.cutStack); n > 0 {
		c.cutStack[n-1] = true
	}
	c.memo.purgeBefore(c.Buf.Pos())
}

func (c *Context) cutObserved() bool {
	if n := len(c.cutStack); n > 0 {
		return c.cutStack[n-1]
	}
	return false
}

// PushRule/PopRule track the rule-name stack used for tracing and error
// rule attribution.
func (c *Context) PushRule(name string) { c.ruleStack = append(c.ruleStack, name) }
func (c *Context) PopRule() {
	c.ruleStack = c.ruleStack[:len(c.ruleStack)-1]
}
func (c *Context) CurrentRule() string {
	if len(c.ruleStack) == 0 {
		return ""
	}
	return c.ruleStack[len(c.ruleStack)-1]
}

// Semantics returns the configured semantics dispatcher, if any.
func (c *Context) Semantics() Semantics { return c.semantics }

// ParseInfoEnabled reports whether rule invocations should attach
// ParseInfo to their AST.
func (c *Context) ParseInfoEnabled() bool { return c.parseInfo }

// NewError builds a *perr.ParseError anchored at the current position.
func (c *Context) NewError(kind perr.Kind, msg string, args ...any) *perr.ParseError {
	pos := c.Buf.Pos()
	line, col, _, lineText := c.Buf.LineInfo(pos)
	return &perr.ParseError{
		Kind:     kind,
		Filename: c.filename,
		Pos:      perr.Pos{Line: line, Col: col, Offset: pos},
		Rule:     c.CurrentRule(),
		Message:  fmt.Sprintf(msg, args...),
		LineText: lineText,
	}
}
