package model

import "strings"

// First computes the first(k) set described in spec.md §4.5: the set of
// up-to-k-token prefixes an expression can start a match with, used for
// Choice's diagnostics ("expected one of ...") and by the rules/firstk
// CLI tables. Results are sets of string-tuples, each
// tuple at most k long; a tuple shorter than k means the expression can
// finish (or recurse into epsilon) before k tokens are determined.
//
// This is a practical approximation, not an exact LL(k)-style closure:
// PositiveClosure's cross-iteration continuations and LookaheadNot's
// negative information are both collapsed to their single-iteration/
// epsilon cases rather than fully unfolded, which is sufficient for the
// diagnostic and table uses above.

func tuple1(lit string) [][]string { return [][]string{{lit}} }

func epsilonSet() [][]string { return [][]string{{}} }

func concatTrunc(a, b []string, k int) []string {
	if len(a) >= k {
		return a
	}
	out := make([]string, 0, k)
	out = append(out, a...)
	out = append(out, b...)
	if len(out) > k {
		out = out[:k]
	}
	return out
}

func dotSets(a, b [][]string, k int) [][]string {
	seen := map[string]bool{}
	var out [][]string
	add := func(t []string) {
		key := strings.Join(t, "\x00")
		if !seen[key] {
			seen[key] = true
			out = append(out, t)
		}
	}
	for _, ta := range a {
		if len(ta) >= k {
			add(ta)
			continue
		}
		if len(b) == 0 {
			add(ta)
			continue
		}
		for _, tb := range b {
			add(concatTrunc(ta, tb, k))
		}
	}
	if len(out) == 0 {
		out = epsilonSet()
	}
	return out
}

func unionSets(sets ...[][]string) [][]string {
	seen := map[string]bool{}
	var out [][]string
	for _, s := range sets {
		for _, t := range s {
			key := strings.Join(t, "\x00")
			if !seen[key] {
				seen[key] = true
				out = append(out, t)
			}
		}
	}
	return out
}

func (t *Token) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return tuple1(t.Literal)
}

func (pt *Pattern) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return tuple1("/" + pt.Regex + "/")
}

func (r *RuleRef) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	if g == nil {
		return tuple1("<" + r.Name + ">")
	}
	rule, ok := g.rulesByName[r.Name]
	if !ok {
		return tuple1("<" + r.Name + ">")
	}
	if seen[rule.Expr] {
		return epsilonSet() // recursion guard: non-left-recursive grammars terminate elsewhere
	}
	seen[rule.Expr] = true
	defer delete(seen, rule.Expr)
	return rule.Expr.First(k, g, seen)
}

func (Void) First(k int, g *Grammar, seen map[Expr]bool) [][]string { return epsilonSet() }
func (EOF) First(k int, g *Grammar, seen map[Expr]bool) [][]string  { return tuple1("<EOF>") }
func (Cut) First(k int, g *Grammar, seen map[Expr]bool) [][]string  { return epsilonSet() }
func (Special) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return epsilonSet()
}
func (Fail) First(k int, g *Grammar, seen map[Expr]bool) [][]string { return nil }

func (gr *Group) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return gr.Child.First(k, g, seen)
}

func (o *Optional) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return unionSets(o.Child.First(k, g, seen), epsilonSet())
}

func (c *Closure) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return unionSets(c.Child.First(k, g, seen), epsilonSet())
}

func (c *PositiveClosure) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return c.Child.First(k, g, seen)
}

func (l *Lookahead) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return l.Child.First(k, g, seen)
}

func (l *LookaheadNot) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return epsilonSet()
}

func (n *Named) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return n.Child.First(k, g, seen)
}

func (o *Override) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	return o.Child.First(k, g, seen)
}

func (s *Sequence) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	if len(s.Items) == 0 {
		return epsilonSet()
	}
	set := s.Items[0].First(k, g, seen)
	for _, item := range s.Items[1:] {
		allFull := true
		for _, t := range set {
			if len(t) < k {
				allFull = false
				break
			}
		}
		if allFull {
			break
		}
		set = dotSets(set, item.First(k, g, seen), k)
	}
	return set
}

func (c *Choice) First(k int, g *Grammar, seen map[Expr]bool) [][]string {
	var sets [][][]string
	for _, opt := range c.Options {
		sets = append(sets, opt.First(k, g, seen))
	}
	var flat [][]string
	for _, s := range sets {
		flat = append(flat, s...)
	}
	return unionSets(flat)
}
