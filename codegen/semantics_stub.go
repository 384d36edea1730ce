package codegen

import (
	"fmt"
	"strings"

	"github.com/arriqaaq/peggen/model"
)

// RenderSemanticsStub emits a companion Go source file with one
// pass-through method per rule, mirroring grako's generated
// `semantics.py` default no-op semantics class (SPEC_FULL.md
// SUPPLEMENTED FEATURES #5). The result satisfies context.Semantics via
// reflection (context.ReflectSemantics) once the method bodies are
// filled in by hand.
func RenderSemanticsStub(g *model.Grammar, packageName string) string {
	if packageName == "" {
		packageName = defaultPackageName(g.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by peggen generate. Edit the method bodies freely.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", packageName)
	fmt.Fprintf(&b, "import \"github.com/arriqaaq/peggen/node\"\n\n")
	fmt.Fprintf(&b, "// Semantics is a pass-through semantic-action set: one method per\n")
	fmt.Fprintf(&b, "// rule, each returning its input node unchanged. Override the ones\n")
	fmt.Fprintf(&b, "// that need real behavior.\n")
	fmt.Fprintf(&b, "type Semantics struct{}\n\n")
	for _, r := range g.Rules {
		fmt.Fprintf(&b, "func (Semantics) %s(value any, ast *node.AST) (any, error) {\n\treturn value, nil\n}\n\n", exportedName(r.Name))
	}
	return b.String()
}

func exportedName(rule string) string {
	if rule == "" {
		return rule
	}
	r := []rune(rule)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
