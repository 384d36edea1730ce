package buffer

import (
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"
)

// regexpEntry wraps a compiled, anchored regexp.
type regexpEntry struct {
	re *regexp.Regexp
}

func newRegexpEntry(pattern string) *regexpEntry {
	// Anchor at the start so matches never drift past the current
	// position, per spec.md §4.1/§9 ("must not backtrack across the
	// anchor" — RE2-backed regexp/regexp.Regexp already guarantees
	// linear-time matching with no backtracking).
	return &regexpEntry{re: regexp.MustCompile(`\A(?:` + pattern + `)`)}
}

// regexCache is a small bounded cache of compiled regexps keyed by
// pattern string, backed by hashicorp/golang-lru so a long-running
// generator process (the interactive `parse` subcommand, repeated
// grammar iteration) never grows it unbounded (spec.md §4.1).
type regexCache struct {
	lru *lru.Cache[string, *regexpEntry]
}

func newRegexCache(size int) *regexCache {
	c, err := lru.New[string, *regexpEntry](size)
	if err != nil {
		// size is always a positive literal from New's caller.
		panic(err)
	}
	return &regexCache{lru: c}
}

func (c *regexCache) get(pattern string) *regexpEntry {
	if e, ok := c.lru.Get(pattern); ok {
		return e
	}
	e := newRegexpEntry(pattern)
	c.lru.Add(pattern, e)
	return e
}
