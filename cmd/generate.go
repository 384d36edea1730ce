package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arriqaaq/peggen/codegen"
)

func newGenerateCmd() *cobra.Command {
	var (
		grammarName  string
		outFile      string
		receiverName string
		withStub     bool
	)
	c := &cobra.Command{
		Use:   "generate <grammar-file>",
		Short: "Emit generated Go source for a standalone parser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args[0], grammarName)
			if err != nil {
				return err
			}
			src, err := codegen.Render(g, codegen.Options{
				PackageName:  grammarName,
				ReceiverName: receiverName,
			})
			if err != nil {
				return err
			}
			if err := writeOutput(outFile, src); err != nil {
				return err
			}
			if withStub {
				stub := codegen.RenderSemanticsStub(g, grammarName)
				return writeOutput(stubPath(outFile), stub)
			}
			return nil
		},
	}
	c.Flags().StringVarP(&grammarName, "name", "m", "", "grammar name (defaults to file basename)")
	c.Flags().StringVarP(&outFile, "output", "o", "", "output path (defaults to stdout)")
	c.Flags().StringVar(&receiverName, "receiver-name", "c", "receiver variable name (not used by the current template)")
	c.Flags().BoolVar(&withStub, "semantics-stub", false, "also emit a pass-through semantics companion file")
	return c
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func stubPath(outFile string) string {
	if outFile == "" {
		return ""
	}
	const suffix = ".go"
	if len(outFile) > len(suffix) && outFile[len(outFile)-len(suffix):] == suffix {
		return outFile[:len(outFile)-len(suffix)] + "_semantics.go"
	}
	return outFile + "_semantics.go"
}
