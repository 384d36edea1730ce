// Package buffer implements the character-addressable input abstraction
// described in spec.md §4.1: position tracking, a binary-searchable line
// cache, whitespace/comment skipping and literal/regex matching with
// name-guard and case-insensitivity support.
package buffer

import (
	"unicode"

	"github.com/google/uuid"
)

// Handle is the identity of a Buffer, attached to ParseInfo (spec.md §3).
// Trace events do not carry it.
type Handle = uuid.UUID

// DefaultWhitespace is the ASCII whitespace set used when no Option
// overrides it.
var DefaultWhitespace = map[rune]bool{' ': true, '\t': true, '\r': true, '\n': true, '\v': true, '\f': true}

// Buffer wraps an immutable rune sequence with a mutable cursor.
type Buffer struct {
	handle     Handle
	text       []rune
	pos        int
	lines      []lineEntry // sorted by offset, sentinels at -1 and len(text)
	whitespace map[rune]bool
	commentRe  *regexpEntry
	ignoreCase bool
	nameguard  bool

	regexCache *regexCache
}

type lineEntry struct {
	offset int
	line   int
}

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// Whitespace overrides the whitespace rune set.
func Whitespace(set map[rune]bool) Option {
	return func(b *Buffer) { b.whitespace = set }
}

// CommentRegexp sets the comment pattern eaten by EatComments.
func CommentRegexp(pattern string) Option {
	return func(b *Buffer) {
		if pattern != "" {
			b.commentRe = newRegexpEntry(pattern)
		}
	}
}

// IgnoreCase makes Match case-insensitive.
func IgnoreCase(b2 bool) Option {
	return func(b *Buffer) { b.ignoreCase = b2 }
}

// Nameguard enables the name-guard heuristic on Match (spec.md §4.1).
func Nameguard(b2 bool) Option {
	return func(b *Buffer) { b.nameguard = b2 }
}

// New builds a Buffer over text, computing its line cache eagerly.
func New(text string, opts ...Option) *Buffer {
	b := &Buffer{
		handle:     uuid.New(),
		text:       []rune(text),
		whitespace: DefaultWhitespace,
		nameguard:  true,
		regexCache: newRegexCache(64),
	}
	for _, o := range opts {
		o(b)
	}
	b.buildLineCache()
	return b
}

// Handle returns the buffer's stable identity.
func (b *Buffer) Handle() Handle { return b.handle }

// Len returns the length of the text in runes.
func (b *Buffer) Len() int { return len(b.text) }

// Pos returns the current cursor position.
func (b *Buffer) Pos() int { return b.pos }

func (b *Buffer) buildLineCache() {
	b.lines = append(b.lines, lineEntry{offset: -1, line: 0})
	line := 1
	for i, r := range b.text {
		if r == '\n' {
			b.lines = append(b.lines, lineEntry{offset: i, line: line})
			line++
		}
	}
	b.lines = append(b.lines, lineEntry{offset: len(b.text), line: line})
}

// Current returns the rune at the cursor, and ok=false at EOF.
func (b *Buffer) Current() (rune, bool) {
	if b.pos >= len(b.text) {
		return 0, false
	}
	return b.text[b.pos], true
}

// Next returns the rune at the cursor and advances past it.
func (b *Buffer) Next() (rune, bool) {
	r, ok := b.Current()
	if ok {
		b.pos++
	}
	return r, ok
}

// AtEnd reports whether the cursor is at the end of the text.
func (b *Buffer) AtEnd() bool { return b.pos >= len(b.text) }

// AtEOL reports whether the current rune is a newline, or the buffer is
// at end.
func (b *Buffer) AtEOL() bool {
	r, ok := b.Current()
	return !ok || r == '\n'
}

// Goto clamps p into [0, len] and moves the cursor there.
func (b *Buffer) Goto(p int) {
	if p < 0 {
		p = 0
	}
	if p > len(b.text) {
		p = len(b.text)
	}
	b.pos = p
}

// Move advances (or rewinds) the cursor by n runes.
func (b *Buffer) Move(n int) { b.Goto(b.pos + n) }

// EatWhitespace advances past the configured whitespace set.
func (b *Buffer) EatWhitespace() {
	for {
		r, ok := b.Current()
		if !ok || !b.whitespace[r] {
			return
		}
		b.pos++
	}
}

// EatComments repeatedly matches the comment regexp at the current
// position, if one is configured.
func (b *Buffer) EatComments() {
	if b.commentRe == nil {
		return
	}
	for {
		s := string(b.text[b.pos:])
		loc := b.commentRe.re.FindStringIndex(s)
		if loc == nil || loc[0] != 0 {
			return
		}
		b.pos += len([]rune(s[:loc[1]]))
	}
}

// NextToken is the fixed point of EatWhitespace . EatComments, per
// spec.md §4.1.
func (b *Buffer) NextToken() {
	for {
		start := b.pos
		b.EatWhitespace()
		b.EatComments()
		if b.pos == start {
			return
		}
	}
}

// Match tries to match literal s at the current position, honoring
// ignore-case and the name-guard rule (spec.md §4.1). On success it
// advances past s and returns it; otherwise the position is unchanged.
func (b *Buffer) Match(s string) (string, bool) {
	runes := []rune(s)
	if b.pos+len(runes) > len(b.text) {
		return "", false
	}
	for i, want := range runes {
		got := b.text[b.pos+i]
		if b.ignoreCase {
			got = unicode.ToLower(got)
			want = unicode.ToLower(want)
		}
		if got != want {
			return "", false
		}
	}
	if b.nameguard && isAlnumLiteral(s) {
		next := b.pos + len(runes)
		if next < len(b.text) && isAlnumRune(b.text[next]) {
			return "", false
		}
	}
	b.pos += len(runes)
	return s, true
}

func isAlnumLiteral(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isAlnumRune(r) {
			return false
		}
	}
	return true
}

func isAlnumRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// MatchRegexp performs an anchored match of pattern at the current
// position. On success it advances past the match and returns the
// matched text.
func (b *Buffer) MatchRegexp(pattern string) (string, bool) {
	entry := b.regexCache.get(pattern)
	s := string(b.text[b.pos:])
	loc := entry.re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	matched := s[:loc[1]]
	b.pos += len([]rune(matched))
	return matched, true
}

// LineInfo returns (line, column, line-start-offset, line-text) for pos,
// via binary search over the line cache (spec.md §4.1).
func (b *Buffer) LineInfo(pos int) (line, col, lineStart int, lineText string) {
	lo, hi := 0, len(b.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lines[mid].offset < pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	entry := b.lines[lo]
	lineStart = entry.offset + 1
	line = entry.line + 1
	col = pos - lineStart + 1

	end := len(b.text)
	if lo+1 < len(b.lines) {
		end = b.lines[lo+1].offset
	}
	if lineStart > len(b.text) {
		lineStart = len(b.text)
	}
	if end < lineStart {
		end = lineStart
	}
	lineText = string(b.text[lineStart:end])
	return
}

// GetLine returns the text of line n (1-based).
func (b *Buffer) GetLine(n int) string {
	for i := 1; i < len(b.lines); i++ {
		if b.lines[i].line == n {
			start := b.lines[i-1].offset + 1
			end := b.lines[i].offset
			if end < start {
				end = start
			}
			return string(b.text[start:end])
		}
	}
	return ""
}

// Slice returns the raw text between [start, b.pos).
func (b *Buffer) Slice(start int) string {
	return string(b.text[start:b.pos])
}
