package cmd

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/arriqaaq/peggen/model"
)

// reservedGoWords flags rule names that would collide with a Go keyword
// if generated as a method name, supplementing §4.4's rule_list() with a
// diagnostic column.
var reservedGoWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// defaultRulesFirstK is the lookahead depth used for the rules table's
// first(k) column; the separate firstk subcommand exposes --k for callers
// that need a different depth.
const defaultRulesFirstK = 1

func newRulesCmd() *cobra.Command {
	var grammarName string
	c := &cobra.Command{
		Use:   "rules <grammar-file>",
		Short: "Print the grammar's rule table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args[0], grammarName)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Rule", "first(" + strconv.Itoa(defaultRulesFirstK) + ")", "Reserved Word"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			for _, name := range g.RuleNames() {
				table.Append(ruleTableRow(g, name))
			}
			table.Render()
			return nil
		},
	}
	c.Flags().StringVarP(&grammarName, "name", "m", "", "grammar name (defaults to file basename)")
	return c
}

// ruleTableRow builds one row of the rules table: name, first(k) set, and
// reserved-word collision flag.
func ruleTableRow(g *model.Grammar, name string) []string {
	rule := g.Rule(name)
	sets := rule.Expr.First(defaultRulesFirstK, g, map[model.Expr]bool{})
	collision := ""
	if reservedGoWords[name] {
		collision = "yes"
	}
	return []string{name, formatFirstSets(sets), collision}
}
