package model

import (
	"fmt"
	"strings"
)

// String renders expr back to the EBNF-ish surface syntax spec.md §4.6
// defines, used by WriteRule/WriteGrammar and by tests that round-trip
// bootstrap-parsed grammars.
func String(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *Token:
		fmt.Fprintf(b, "%q", v.Literal)
	case *Pattern:
		fmt.Fprintf(b, "?/%s/?", v.Regex)
	case *RuleRef:
		b.WriteString(v.Name)
	case Void:
		b.WriteString("()")
	case EOF:
		b.WriteString("$")
	case Cut:
		b.WriteString(">>")
	case Special:
		fmt.Fprintf(b, "?(%s)?", v.Text)
	case *Special:
		fmt.Fprintf(b, "?(%s)?", v.Text)
	case Fail:
		b.WriteString("!()")
	case *Group:
		b.WriteString("(")
		writeExpr(b, v.Child)
		b.WriteString(")")
	case *Optional:
		writeSuffixChild(b, v.Child)
		b.WriteString("?")
	case *Closure:
		writeSuffixChild(b, v.Child)
		b.WriteString("*")
	case *PositiveClosure:
		writeSuffixChild(b, v.Child)
		b.WriteString("+")
	case *Lookahead:
		b.WriteString("&")
		writeExpr(b, v.Child)
	case *LookaheadNot:
		b.WriteString("!")
		writeExpr(b, v.Child)
	case *Named:
		b.WriteString(v.Name)
		if v.ForceList {
			b.WriteString("+:")
		} else {
			b.WriteString(":")
		}
		writeExpr(b, v.Child)
	case *Override:
		b.WriteString("@")
		writeExpr(b, v.Child)
	case *Sequence:
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString(" ")
			}
			writeExpr(b, item)
		}
	case *Choice:
		for i, opt := range v.Options {
			if i > 0 {
				b.WriteString(" | ")
			}
			writeExpr(b, opt)
		}
	default:
		b.WriteString("?unknown?")
	}
}

// writeSuffixChild renders a postfix operator's operand, parenthesizing it
// when it's a multi-item Sequence or Choice (possible for Optional/Closure/
// PositiveClosure children built from the "[...]"/"{...}" surface forms,
// which wrap a raw choice() rather than going through suffix()'s
// single-atom atom()) so the operator reparses as binding to the whole
// child instead of just its last atom.
func writeSuffixChild(b *strings.Builder, e Expr) {
	switch e.(type) {
	case *Sequence, *Choice:
		b.WriteString("(")
		writeExpr(b, e)
		b.WriteString(")")
	default:
		writeExpr(b, e)
	}
}

// WriteRule renders one rule's "name = expr ;" form.
func WriteRule(r *Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s ;", r.Name, String(r.Expr))
	return b.String()
}

// WriteGrammar renders every rule of g in declaration order.
func WriteGrammar(g *Grammar) string {
	var b strings.Builder
	for i, r := range g.Rules {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(WriteRule(r))
	}
	return b.String()
}

// WriteDot renders a minimal Graphviz dot graph of g's rule-reference
// graph (spec.md §6 "diagram" subcommand): one node per rule, one edge
// per RuleRef found in that rule's body.
func WriteDot(g *Grammar) string {
	var b strings.Builder
	b.WriteString("digraph grammar {\n")
	for _, r := range g.Rules {
		fmt.Fprintf(&b, "  %q;\n", r.Name)
	}
	for _, r := range g.Rules {
		for _, ref := range ruleRefs(r.Expr) {
			fmt.Fprintf(&b, "  %q -> %q;\n", r.Name, ref)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// RuleRefsIn returns every rule name referenced anywhere inside e, used
// both by WriteDot and by the bootstrap parser's unresolved-reference
// validation (spec.md §4.5, "all referenced rule names must resolve").
func RuleRefsIn(e Expr) []string { return ruleRefs(e) }

func ruleRefs(e Expr) []string {
	var out []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *RuleRef:
			out = append(out, v.Name)
		case *Group:
			walk(v.Child)
		case *Optional:
			walk(v.Child)
		case *Closure:
			walk(v.Child)
		case *PositiveClosure:
			walk(v.Child)
		case *Lookahead:
			walk(v.Child)
		case *LookaheadNot:
			walk(v.Child)
		case *Named:
			walk(v.Child)
		case *Override:
			walk(v.Child)
		case *Sequence:
			for _, item := range v.Items {
				walk(item)
			}
		case *Choice:
			for _, opt := range v.Options {
				walk(opt)
			}
		}
	}
	walk(e)
	return out
}
