package cmd

import (
	"testing"

	"github.com/arriqaaq/peggen/model"
)

func TestReservedGoWordsFlagsKeywords(t *testing.T) {
	for _, word := range []string{"for", "range", "select", "type"} {
		if !reservedGoWords[word] {
			t.Errorf("want %q flagged as a reserved Go word", word)
		}
	}
	for _, word := range []string{"expr", "factor", "term"} {
		if reservedGoWords[word] {
			t.Errorf("want %q not flagged as a reserved Go word", word)
		}
	}
}

func TestRuleTableRowHasNameFirstKAndCollision(t *testing.T) {
	rules := []*model.Rule{
		{Name: "for", Expr: &model.Token{Literal: "a"}},
		{Name: "greeting", Expr: &model.Token{Literal: "hi"}},
	}
	g := model.NewGrammar("g", "greeting", rules, nil)

	if got, want := ruleTableRow(g, "for"), []string{"for", "[a]", "yes"}; !equalRows(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	if got, want := ruleTableRow(g, "greeting"), []string{"greeting", "[hi]", ""}; !equalRows(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
