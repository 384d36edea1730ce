package cmd

import "testing"

func TestFormatFirstSets(t *testing.T) {
	cases := []struct {
		sets [][]string
		want string
	}{
		{nil, ""},
		{[][]string{{"a"}}, "[a]"},
		{[][]string{{"a", "b"}, {}}, "[a b], []"},
		{[][]string{{"a"}, {"b"}}, "[a], [b]"},
	}
	for i, tc := range cases {
		if got := formatFirstSets(tc.sets); got != tc.want {
			t.Errorf("%d: want %q, got %q", i, tc.want, got)
		}
	}
}
