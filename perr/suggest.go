package perr

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// ClosestNames returns the names in candidates with the smallest edit
// distance to want, capped at maxDistance. Ties are broken
// alphabetically. Grounded on open-policy-agent/opa's
// internal/levenshtein.ClosestStrings helper.
func ClosestNames(want string, candidates []string, maxDistance int) []string {
	best := maxDistance + 1
	var out []string
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(want, c)
		switch {
		case d < best:
			best = d
			out = []string{c}
		case d == best:
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
