package codegen

import (
	"strings"
	"testing"

	"github.com/arriqaaq/peggen/model"
)

func sampleGrammar() *model.Grammar {
	rules := []*model.Rule{
		{Name: "greeting", Expr: &model.Sequence{Items: []model.Expr{
			&model.Named{Name: "word", Child: &model.Token{Literal: "hello"}},
			&model.Optional{Child: &model.Token{Literal: "!"}},
		}}},
		{Name: "digits", Expr: &model.PositiveClosure{Child: &model.Pattern{Regex: `[0-9]`}}, WrapName: "number"},
	}
	return model.NewGrammar("greetings", "greeting", rules, map[string]string{"whitespace": " \t"})
}

func TestRenderProducesCompilableShape(t *testing.T) {
	out, err := Render(sampleGrammar(), Options{})
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	for _, want := range []string{
		"package greetings",
		`Name: "greeting"`,
		`Name: "digits"`,
		`WrapName: "number"`,
		"func Grammar() *model.Grammar",
		`&model.Named{Name: "word"`,
		"&model.PositiveClosure{Child:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("want generated source to contain %q", want)
		}
	}
}

func TestRenderDefaultPackageName(t *testing.T) {
	out, err := Render(sampleGrammar(), Options{})
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	if !strings.Contains(out, "package greetings") {
		t.Errorf("want default package name derived from grammar name, got:\n%s", out)
	}
}

func TestRenderCustomPackageName(t *testing.T) {
	out, err := Render(sampleGrammar(), Options{PackageName: "custom"})
	if err != nil {
		t.Fatalf("want success, got %v", err)
	}
	if !strings.Contains(out, "package custom") {
		t.Errorf("want custom package name, got:\n%s", out)
	}
}

func TestExprLiteralCoversEveryVariant(t *testing.T) {
	cases := []struct {
		expr model.Expr
		want string
	}{
		{&model.Token{Literal: "x"}, `&model.Token{Literal: "x"}`},
		{&model.Pattern{Regex: "x"}, `&model.Pattern{Regex: "x"}`},
		{&model.RuleRef{Name: "x"}, `&model.RuleRef{Name: "x"}`},
		{model.Void{}, "model.Void{}"},
		{model.EOF{}, "model.EOF{}"},
		{model.Cut{}, "model.Cut{}"},
		{model.Fail{}, "model.Fail{}"},
		{&model.Group{Child: model.Void{}}, "&model.Group{Child: model.Void{}}"},
	}
	for i, tc := range cases {
		if got := exprLiteral(tc.expr); got != tc.want {
			t.Errorf("%d: want %q, got %q", i, tc.want, got)
		}
	}
}

func TestRenderSemanticsStub(t *testing.T) {
	out := RenderSemanticsStub(sampleGrammar(), "")
	for _, want := range []string{
		"package greetings",
		"type Semantics struct{}",
		"func (Semantics) Greeting(value any, ast *node.AST) (any, error)",
		"func (Semantics) Digits(value any, ast *node.AST) (any, error)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("want stub to contain %q, got:\n%s", want, out)
		}
	}
}
