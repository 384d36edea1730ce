package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/arriqaaq/peggen/model"
)

func newFirstKCmd() *cobra.Command {
	var (
		grammarName string
		k           int
	)
	c := &cobra.Command{
		Use:   "firstk <grammar-file>",
		Short: "Print each rule's computed first(k) set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args[0], grammarName)
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Rule", "first(" + strconv.Itoa(k) + ")"})
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			for _, name := range g.RuleNames() {
				rule := g.Rule(name)
				sets := rule.Expr.First(k, g, map[model.Expr]bool{})
				table.Append([]string{name, formatFirstSets(sets)})
			}
			table.Render()
			return nil
		},
	}
	c.Flags().StringVarP(&grammarName, "name", "m", "", "grammar name (defaults to file basename)")
	c.Flags().IntVar(&k, "k", 1, "lookahead depth")
	return c
}

func formatFirstSets(sets [][]string) string {
	parts := make([]string, len(sets))
	for i, t := range sets {
		parts[i] = "[" + strings.Join(t, " ") + "]"
	}
	return strings.Join(parts, ", ")
}
