package perr

import (
	"reflect"
	"testing"
)

func TestClosestNames(t *testing.T) {
	cases := []struct {
		want        string
		candidates  []string
		maxDistance int
		out         []string
	}{
		{"expresion", []string{"expression", "statement", "block"}, 3, []string{"expression"}},
		{"xyz", []string{"expression", "statement"}, 1, nil},
		{"foo", []string{"fo", "fooo"}, 1, []string{"fo", "fooo"}},
	}
	for i, tc := range cases {
		got := ClosestNames(tc.want, tc.candidates, tc.maxDistance)
		if !reflect.DeepEqual(got, tc.out) {
			t.Errorf("%d: want %v, got %v", i, tc.out, got)
		}
	}
}
