package node

import (
	"reflect"
	"testing"
)

func TestASTAdd(t *testing.T) {
	a := NewAST()
	a.Add("x", 1, false)
	if got := a.Get("x"); got != 1 {
		t.Fatalf("want 1, got %v", got)
	}
	a.Add("x", 2, false)
	if got := a.Get("x"); !reflect.DeepEqual(got, []any{1, 2}) {
		t.Fatalf("want promoted list, got %v", got)
	}
	a.Add("x", 3, false)
	if got := a.Get("x"); !reflect.DeepEqual(got, []any{1, 2, 3}) {
		t.Fatalf("want appended list, got %v", got)
	}
}

func TestASTAddForceList(t *testing.T) {
	a := NewAST()
	a.Add("y", "v", true)
	if got := a.Get("y"); !reflect.DeepEqual(got, []any{"v"}) {
		t.Fatalf("want single-element list, got %v", got)
	}
}

func TestASTGetMissing(t *testing.T) {
	a := NewAST()
	v := a.Get("nope")
	if !IsMissing(v) {
		t.Fatalf("want Missing sentinel, got %v", v)
	}
}

func TestASTKeysOrder(t *testing.T) {
	a := NewAST()
	a.Add("b", 1, false)
	a.Add("a", 2, false)
	a.Add("b", 3, false)
	if got := a.Keys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("want insertion order [b a], got %v", got)
	}
}

func TestASTUpdate(t *testing.T) {
	cases := []struct {
		name  string
		setup func() (*AST, *AST)
		key   string
		want  any
	}{
		{
			name: "absent key copies",
			setup: func() (*AST, *AST) {
				a, b := NewAST(), NewAST()
				b.Add("k", "v", false)
				return a, b
			},
			key:  "k",
			want: "v",
		},
		{
			name: "list+list extends",
			setup: func() (*AST, *AST) {
				a, b := NewAST(), NewAST()
				a.Add("k", "1", true)
				b.Add("k", "2", true)
				return a, b
			},
			key:  "k",
			want: []any{"1", "2"},
		},
		{
			name: "scalar+list prepends scalar",
			setup: func() (*AST, *AST) {
				a, b := NewAST(), NewAST()
				a.Add("k", "1", false)
				b.Add("k", "2", true)
				return a, b
			},
			key:  "k",
			want: []any{"1", "2"},
		},
		{
			name: "scalar+scalar promotes via Add",
			setup: func() (*AST, *AST) {
				a, b := NewAST(), NewAST()
				a.Add("k", "1", false)
				b.Add("k", "2", false)
				return a, b
			},
			key:  "k",
			want: []any{"1", "2"},
		},
	}
	for _, tc := range cases {
		a, b := tc.setup()
		a.Update(b)
		if got := a.Get(tc.key); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: want %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestASTEmptyAndHas(t *testing.T) {
	a := NewAST()
	if !a.Empty() {
		t.Fatal("want empty AST")
	}
	a.Add("k", 1, false)
	if a.Empty() {
		t.Fatal("want non-empty AST")
	}
	if !a.Has("k") {
		t.Fatal("want Has(k) true")
	}
	if a.Has("missing") {
		t.Fatal("want Has(missing) false")
	}
}

func TestASTMap(t *testing.T) {
	a := NewAST()
	a.Add("x", 1, false)
	a.Add("y", 2, false)
	got := a.Map()
	want := map[string]any{"x": 1, "y": 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}
