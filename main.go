// Command peggen is a PEG/Packrat parser generator: it bootstrap-parses
// an EBNF grammar into a grammar model and either interprets it directly
// against input text or emits standalone Go source for a generated
// parser (spec.md §1/§6).
package main

import (
	"os"

	"github.com/arriqaaq/peggen/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
