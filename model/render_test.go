package model

import (
	"strings"
	"testing"
)

func TestStringRendersEBNF(t *testing.T) {
	cases := []struct {
		expr Expr
		want string
	}{
		{&Token{Literal: "if"}, `"if"`},
		{&Pattern{Regex: `[0-9]+`}, `?/[0-9]+/?`},
		{&RuleRef{Name: "expr"}, "expr"},
		{Void{}, "()"},
		{EOF{}, "$"},
		{Cut{}, ">>"},
		{&Optional{Child: &Token{Literal: "a"}}, `"a"?`},
		{&Closure{Child: &Token{Literal: "a"}}, `"a"*`},
		{&PositiveClosure{Child: &Token{Literal: "a"}}, `"a"+`},
		{&Lookahead{Child: &Token{Literal: "a"}}, `&"a"`},
		{&LookaheadNot{Child: &Token{Literal: "a"}}, `!"a"`},
		{&Named{Name: "x", Child: &Token{Literal: "a"}}, `x:"a"`},
		{&Named{Name: "x", Child: &Token{Literal: "a"}, ForceList: true}, `x+:"a"`},
		{&Override{Child: &Token{Literal: "a"}}, `@"a"`},
		{&Sequence{Items: []Expr{&Token{Literal: "a"}, &Token{Literal: "b"}}}, `"a" "b"`},
		{&Choice{Options: []Expr{&Token{Literal: "a"}, &Token{Literal: "b"}}}, `"a" | "b"`},
	}
	for i, tc := range cases {
		if got := String(tc.expr); got != tc.want {
			t.Errorf("%d: want %q, got %q", i, tc.want, got)
		}
	}
}

func TestWriteRule(t *testing.T) {
	r := &Rule{Name: "greeting", Expr: &Token{Literal: "hello"}}
	got := WriteRule(r)
	want := `greeting = "hello" ;`
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWriteGrammarJoinsRules(t *testing.T) {
	rules := []*Rule{
		{Name: "a", Expr: &Token{Literal: "a"}},
		{Name: "b", Expr: &Token{Literal: "b"}},
	}
	g := NewGrammar("g", "a", rules, nil)
	got := WriteGrammar(g)
	if !strings.Contains(got, `a = "a" ;`) || !strings.Contains(got, `b = "b" ;`) {
		t.Fatalf("want both rules rendered, got %q", got)
	}
}

func TestWriteDotIncludesNodesAndEdges(t *testing.T) {
	rules := []*Rule{
		{Name: "expr", Expr: &RuleRef{Name: "term"}},
		{Name: "term", Expr: &Token{Literal: "x"}},
	}
	g := NewGrammar("g", "expr", rules, nil)
	got := WriteDot(g)
	for _, want := range []string{`"expr";`, `"term";`, `"expr" -> "term";`} {
		if !strings.Contains(got, want) {
			t.Errorf("want dot output to contain %q, got %q", want, got)
		}
	}
}

func TestRuleRefsIn(t *testing.T) {
	e := &Sequence{Items: []Expr{
		&RuleRef{Name: "a"},
		&Choice{Options: []Expr{&RuleRef{Name: "b"}, &RuleRef{Name: "c"}}},
		&Optional{Child: &RuleRef{Name: "d"}},
	}}
	got := RuleRefsIn(e)
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}
