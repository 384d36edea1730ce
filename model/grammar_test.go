package model

import (
	"testing"

	"github.com/arriqaaq/peggen/perr"
)

func TestGrammarParseRunsStartRule(t *testing.T) {
	rules := []*Rule{
		{Name: "greeting", Expr: &Token{Literal: "hello"}},
	}
	g := NewGrammar("greetings", "greeting", rules, nil)
	got, err := g.Parse("hello", "")
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	if got != "hello" {
		t.Fatalf("want \"hello\", got %v", got)
	}
}

func TestGrammarParseExplicitStartOverridesDefault(t *testing.T) {
	rules := []*Rule{
		{Name: "a", Expr: &Token{Literal: "a"}},
		{Name: "b", Expr: &Token{Literal: "b"}},
	}
	g := NewGrammar("g", "a", rules, nil)
	got, err := g.Parse("b", "b")
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	if got != "b" {
		t.Fatalf("want \"b\", got %v", got)
	}
}

func TestGrammarLookupAndRuleNames(t *testing.T) {
	rules := []*Rule{
		{Name: "a", Expr: &Token{Literal: "a"}},
		{Name: "b", Expr: &Token{Literal: "b"}},
	}
	g := NewGrammar("g", "a", rules, nil)
	if _, ok := g.Lookup("a"); !ok {
		t.Fatal("want rule a to resolve")
	}
	if _, ok := g.Lookup("missing"); ok {
		t.Fatal("want missing rule to not resolve")
	}
	names := g.RuleNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("want [a b] in declaration order, got %v", names)
	}
}

func TestGrammarWhitespaceDirectiveAppliesToBuffer(t *testing.T) {
	rules := []*Rule{
		{Name: "word", Expr: &RuleRef{Name: "ident"}},
		{Name: "ident", Expr: &Pattern{Regex: `[a-z]+`}},
	}
	g := NewGrammar("g", "word", rules, map[string]string{"whitespace": ","})
	// comma is the only whitespace rune; NextToken before the lowercase
	// rule "ident" should skip leading commas.
	got, err := g.Parse(",,foo", "word")
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	if got != "foo" {
		t.Fatalf("want \"foo\", got %v", got)
	}
}

func TestGrammarParseUnwrapsBareTopLevelCommit(t *testing.T) {
	// start = {('a' >> 'b')}; — a committed failure produced entirely
	// inside the Closure's own Repeat scope, with no grammar-level
	// Choice anywhere above it to unwrap it. Parse must still surface a
	// plain *perr.ParseError, per spec.md §4.5's "within a choice scope"
	// requirement, not let the *perr.CommittedError leak out.
	inner := &Sequence{Items: []Expr{&Token{Literal: "a"}, Cut{}, &Token{Literal: "b"}}}
	rules := []*Rule{
		{Name: "start", Expr: &Closure{Child: inner}},
	}
	g := NewGrammar("g", "start", rules, map[string]string{"nameguard": "false"})
	_, err := g.Parse("ac", "")
	if err == nil {
		t.Fatal("want a committed failure from inside the closure to surface as an error")
	}
	if _, stillWrapped := perr.Committed(err); stillWrapped {
		t.Fatalf("want the committed wrapper unwrapped before returning to the caller, got %T", err)
	}
	if _, ok := err.(*perr.ParseError); !ok {
		t.Fatalf("want a plain *perr.ParseError, got %T", err)
	}
}

func TestGrammarCommentsDirective(t *testing.T) {
	rules := []*Rule{
		{Name: "word", Expr: &RuleRef{Name: "ident"}},
		{Name: "ident", Expr: &Pattern{Regex: `[a-z]+`}},
	}
	g := NewGrammar("g", "word", rules, map[string]string{"comments": `#[^\n]*`})
	got, err := g.Parse("#comment\nfoo", "word")
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	if got != "foo" {
		t.Fatalf("want \"foo\", got %v", got)
	}
}
