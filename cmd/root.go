// Package cmd implements the peggen CLI described in SPEC_FULL.md §6: a
// cobra command tree wrapping the bootstrap parser, the self-interpreting
// grammar model, and the codegen renderer.
package cmd

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"

	"github.com/arriqaaq/peggen/bootstrap"
	"github.com/arriqaaq/peggen/model"
)

var (
	traceFlag bool
)

// Execute runs the root command; main.go's sole job is to call this and
// set the process exit code from its result (spec.md §6: exit 0 on
// success, 1 on argument or grammar errors).
func Execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "peggen",
		Short:         "A PEG/Packrat parser generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&traceFlag, "trace", "t", false, "enable rule-trace logging")

	root.AddCommand(
		newGenerateCmd(),
		newParseCmd(),
		newRulesCmd(),
		newFirstKCmd(),
		newBinaryCmd(),
		newDiagramCmd(),
	)
	return root
}

// traceLogger returns a logr.Logger that writes to stderr when --trace is
// set, or a discarding logger otherwise (SPEC_FULL.md AMBIENT STACK:
// go-logr/logr trace hooks).
func traceLogger() logr.Logger {
	if !traceFlag {
		return logr.Discard()
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s %s\n", prefix, args)
		} else {
			fmt.Fprintln(os.Stderr, args)
		}
	}, funcr.Options{Verbosity: 1})
}

// loadGrammar reads and bootstrap-parses the grammar file at path.
func loadGrammar(path, name string) (*model.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading grammar file: %w", err)
	}
	if name == "" {
		name = baseName(path)
	}
	g, err := bootstrap.ParseGrammar(name, string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing grammar: %w", err)
	}
	return g, nil
}

func baseName(path string) string {
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			base = path[i+1:]
			break
		}
	}
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			return base[:i]
		}
	}
	return base
}
