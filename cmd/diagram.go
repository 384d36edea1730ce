package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arriqaaq/peggen/model"
)

func newDiagramCmd() *cobra.Command {
	var (
		grammarName string
		outFile     string
	)
	c := &cobra.Command{
		Use:   "diagram <grammar-file>",
		Short: "Emit a Graphviz DOT rendering of the grammar's rule-reference graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFile == "" {
				return fmt.Errorf("-o is required for the diagram subcommand")
			}
			g, err := loadGrammar(args[0], grammarName)
			if err != nil {
				return err
			}
			return writeOutput(outFile, model.WriteDot(g))
		},
	}
	c.Flags().StringVarP(&grammarName, "name", "m", "", "grammar name (defaults to file basename)")
	c.Flags().StringVarP(&outFile, "output", "o", "", "output path (required)")
	return c
}
