package cmd

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ulikunitz/xz"

	"github.com/arriqaaq/peggen/model"
)

// binaryGrammar is the gob-serializable shadow of a *model.Grammar: gob
// cannot encode an interface field (model.Rule.Expr is model.Expr)
// without every concrete type registered, so each rule's expression tree
// is flattened to binaryExpr nodes first.
type binaryGrammar struct {
	Name       string
	StartRule  string
	Directives map[string]string
	Rules      []binaryRule
}

type binaryRule struct {
	Name     string
	WrapName string
	Expr     binaryExpr
}

// binaryExpr tags the Expr variant by name so gob needs no interface
// registration at all, at the cost of one string field per node.
type binaryExpr struct {
	Kind      string
	Literal   string // Token.Literal / Pattern.Regex / RuleRef.Name / Special.Text
	Name      string // Named.Name
	ForceList bool
	Children  []binaryExpr // Group/Optional/Closure/PositiveClosure/Lookahead/LookaheadNot/Named/Override: [0]; Sequence/Choice: all
}

func toBinaryGrammar(g *model.Grammar) binaryGrammar {
	rules := make([]binaryRule, len(g.Rules))
	for i, r := range g.Rules {
		rules[i] = binaryRule{Name: r.Name, WrapName: r.WrapName, Expr: toBinaryExpr(r.Expr)}
	}
	return binaryGrammar{Name: g.Name, StartRule: g.StartRule, Directives: g.Directives, Rules: rules}
}

func toBinaryExpr(e model.Expr) binaryExpr {
	switch v := e.(type) {
	case *model.Token:
		return binaryExpr{Kind: "token", Literal: v.Literal}
	case *model.Pattern:
		return binaryExpr{Kind: "pattern", Literal: v.Regex}
	case *model.RuleRef:
		return binaryExpr{Kind: "ruleref", Literal: v.Name}
	case model.Void:
		return binaryExpr{Kind: "void"}
	case model.EOF:
		return binaryExpr{Kind: "eof"}
	case model.Cut:
		return binaryExpr{Kind: "cut"}
	case model.Special:
		return binaryExpr{Kind: "special", Literal: v.Text}
	case *model.Special:
		return binaryExpr{Kind: "special", Literal: v.Text}
	case model.Fail:
		return binaryExpr{Kind: "fail"}
	case *model.Group:
		return binaryExpr{Kind: "group", Children: []binaryExpr{toBinaryExpr(v.Child)}}
	case *model.Optional:
		return binaryExpr{Kind: "optional", Children: []binaryExpr{toBinaryExpr(v.Child)}}
	case *model.Closure:
		return binaryExpr{Kind: "closure", Children: []binaryExpr{toBinaryExpr(v.Child)}}
	case *model.PositiveClosure:
		return binaryExpr{Kind: "positiveclosure", Children: []binaryExpr{toBinaryExpr(v.Child)}}
	case *model.Lookahead:
		return binaryExpr{Kind: "lookahead", Children: []binaryExpr{toBinaryExpr(v.Child)}}
	case *model.LookaheadNot:
		return binaryExpr{Kind: "lookaheadnot", Children: []binaryExpr{toBinaryExpr(v.Child)}}
	case *model.Named:
		return binaryExpr{Kind: "named", Name: v.Name, ForceList: v.ForceList, Children: []binaryExpr{toBinaryExpr(v.Child)}}
	case *model.Override:
		return binaryExpr{Kind: "override", Children: []binaryExpr{toBinaryExpr(v.Child)}}
	case *model.Sequence:
		children := make([]binaryExpr, len(v.Items))
		for i, it := range v.Items {
			children[i] = toBinaryExpr(it)
		}
		return binaryExpr{Kind: "sequence", Children: children}
	case *model.Choice:
		children := make([]binaryExpr, len(v.Options))
		for i, it := range v.Options {
			children[i] = toBinaryExpr(it)
		}
		return binaryExpr{Kind: "choice", Children: children}
	default:
		return binaryExpr{Kind: "void"}
	}
}

func newBinaryCmd() *cobra.Command {
	var (
		grammarName string
		outFile     string
	)
	c := &cobra.Command{
		Use:   "binary <grammar-file>",
		Short: "Emit a gob-encoded, xz-compressed serialized grammar model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFile == "" {
				return fmt.Errorf("-o is required for the binary subcommand")
			}
			g, err := loadGrammar(args[0], grammarName)
			if err != nil {
				return err
			}

			var raw bytes.Buffer
			if err := gob.NewEncoder(&raw).Encode(toBinaryGrammar(g)); err != nil {
				return fmt.Errorf("encoding grammar model: %w", err)
			}

			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()

			xw, err := xz.NewWriter(f)
			if err != nil {
				return fmt.Errorf("opening xz writer: %w", err)
			}
			if _, err := xw.Write(raw.Bytes()); err != nil {
				return fmt.Errorf("writing compressed grammar model: %w", err)
			}
			return xw.Close()
		},
	}
	c.Flags().StringVarP(&grammarName, "name", "m", "", "grammar name (defaults to file basename)")
	c.Flags().StringVarP(&outFile, "output", "o", "", "output path (required)")
	return c
}
