package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arriqaaq/peggen/model"
)

// TestParseGrammarFullArithmeticShape exercises a small but realistic
// multi-rule grammar end to end, the way EngFlow/gazelle_cc and OPA lean
// on testify's require for readable structural assertions instead of a
// wall of manual if/t.Errorf checks.
func TestParseGrammarFullArithmeticShape(t *testing.T) {
	src := `
expr   = term { ("+" | "-") term } ;
term   = factor { ("*" | "/") factor } ;
factor = ?/[0-9]+/? | "(" expr ")" ;
`
	g, err := bootstrapParseForTest(src)
	require.NoError(t, err)
	require.Equal(t, "expr", g.StartRule)
	require.Len(t, g.Rules, 3)

	factor := g.Rule("factor")
	require.NotNil(t, factor)
	choice, ok := factor.Expr.(*model.Choice)
	require.True(t, ok, "want factor's body to be a top-level Choice")
	require.Len(t, choice.Options, 2)

	pat, ok := choice.Options[0].(*model.Pattern)
	require.True(t, ok, "want first factor alternative to be a Pattern")
	require.Equal(t, "[0-9]+", pat.Regex)

	grouped, ok := choice.Options[1].(*model.Sequence)
	require.True(t, ok, "want second factor alternative to be a Sequence")
	require.Len(t, grouped.Items, 3)

	refs := model.RuleRefsIn(g.Rule("expr").Expr)
	require.Contains(t, refs, "term")
}

func bootstrapParseForTest(src string) (*model.Grammar, error) {
	return ParseGrammar("arith", src)
}
