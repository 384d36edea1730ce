package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// The actual render(parse(ebnf))-reparses-equal round trip (spec.md §8)
// needs bootstrap.ParseGrammar, which would import model and cycle back
// here — it lives in bootstrap/roundtrip_test.go instead.

func TestGrammarStructuralEquality(t *testing.T) {
	rules := []*Rule{{Name: "greeting", Expr: &Token{Literal: "hello"}}}
	a := NewGrammar("g", "greeting", rules, map[string]string{"whitespace": " "})
	b := NewGrammar("g", "greeting", []*Rule{{Name: "greeting", Expr: &Token{Literal: "hello"}}}, map[string]string{"whitespace": " "})

	if diff := cmp.Diff(a, b, cmpopts.IgnoreUnexported(Grammar{})); diff != "" {
		t.Fatalf("want structurally identical grammars (-a +b):\n%s", diff)
	}
}
