package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arriqaaq/peggen/context"
	"github.com/arriqaaq/peggen/node"
)

func newParseCmd() *cobra.Command {
	var (
		grammarName string
		startRule   string
		parseInfo   bool
	)
	c := &cobra.Command{
		Use:   "parse <grammar-file> <input-file>",
		Short: "Interpret a grammar directly against input and print the resulting node as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args[0], grammarName)
			if err != nil {
				return err
			}
			input, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading input file: %w", err)
			}

			opts := []context.Option{
				context.WithTrace(traceFlag),
				context.WithLogger(traceLogger()),
				context.WithParseInfo(parseInfo),
				context.WithFilename(args[1]),
			}
			result, err := g.Parse(string(input), startRule, opts...)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(jsonable(result))
		},
	}
	c.Flags().StringVarP(&grammarName, "name", "m", "", "grammar name (defaults to file basename)")
	c.Flags().StringVar(&startRule, "start", "", "start rule (defaults to the grammar's first rule)")
	c.Flags().BoolVar(&parseInfo, "parseinfo", false, "attach buffer/rule/position metadata to every AST node")
	return c
}

// jsonable converts node.AST values (which aren't directly JSON-friendly
// maps) into plain maps recursively so the full result tree round-trips
// through encoding/json (spec.md §6, "prints the resulting AST as JSON").
func jsonable(v any) any {
	switch t := v.(type) {
	case *node.AST:
		out := make(map[string]any, len(t.Keys()))
		for _, k := range t.Keys() {
			out[k] = jsonable(t.Get(k))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = jsonable(e)
		}
		return out
	default:
		return v
	}
}
