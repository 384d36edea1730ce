// Package perr defines the error taxonomy produced by the parsing
// engine: expected-token, expected-pattern, unknown-rule, no-viable-option,
// lookahead-failed, committed-failure, semantic-rejection and grammar-error.
package perr

import (
	"bytes"
	"fmt"
	"strings"
)

// Kind identifies the taxonomy bucket an error belongs to (spec.md §7).
type Kind int

const (
	KindExpectedToken Kind = iota
	KindExpectedPattern
	KindUnknownRule
	KindNoViableOption
	KindLookaheadFailed
	KindCommittedFailure
	KindSemanticRejection
	KindGrammarError
)

func (k Kind) String() string {
	switch k {
	case KindExpectedToken:
		return "expected-token"
	case KindExpectedPattern:
		return "expected-pattern"
	case KindUnknownRule:
		return "unknown-rule"
	case KindNoViableOption:
		return "no-viable-option"
	case KindLookaheadFailed:
		return "lookahead-failed"
	case KindCommittedFailure:
		return "committed-failure-after-cut"
	case KindSemanticRejection:
		return "semantic-rejection"
	case KindGrammarError:
		return "grammar-error"
	default:
		return "unknown"
	}
}

// Pos is the line/column/offset triple attached to every ParseError,
// mirroring pigeon's own "position" struct.
type Pos struct {
	Line, Col, Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ParseError is the concrete error type returned by the engine. It carries
// enough context to render the file:line:column / caret format required
// by spec.md §7.
type ParseError struct {
	Kind        Kind
	Filename    string
	Pos         Pos
	Rule        string
	Message     string
	LineText    string
	Suggestions []string

	// Inner, when set, is the underlying cause (e.g. a semantic rule's
	// rejection error), kept for errors.Unwrap.
	Inner error
}

func (e *ParseError) Error() string {
	var buf bytes.Buffer
	if e.Filename != "" {
		buf.WriteString(e.Filename)
		buf.WriteString(":")
	}
	fmt.Fprintf(&buf, "%s: %s", e.Pos, e.Message)
	if e.Rule != "" {
		fmt.Fprintf(&buf, " (rule %s)", e.Rule)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&buf, " (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	if e.LineText != "" {
		buf.WriteString("\n")
		buf.WriteString(e.LineText)
		buf.WriteString("\n")
		col := e.Pos.Col
		if col < 1 {
			col = 1
		}
		buf.WriteString(strings.Repeat(" ", col-1))
		buf.WriteString("^")
	}
	return buf.String()
}

func (e *ParseError) Unwrap() error { return e.Inner }

// List accumulates ParseErrors, following pigeon's errList pattern
// (vm/static_code.go): duplicate messages are deduplicated on read.
type List []*ParseError

func (l *List) Add(e *ParseError) {
	if e != nil {
		*l = append(*l, e)
	}
}

// Err returns the list as an error, or nil if empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l.dedupe()
}

func (l List) dedupe() List {
	seen := make(map[string]bool, len(l))
	var out List
	for _, e := range l {
		msg := e.Error()
		if !seen[msg] {
			seen[msg] = true
			out = append(out, e)
		}
	}
	return out
}

func (l List) Error() string {
	var buf bytes.Buffer
	for i, e := range l {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(e.Error())
	}
	return buf.String()
}

// CommittedError wraps a ParseError to mark it as committed by a prior
// cut: it must bypass option/choice scopes until the enclosing choice
// unwraps it (spec.md §4.3, §7).
type CommittedError struct {
	*ParseError
}

func (c *CommittedError) Unwrap() error { return c.ParseError }

// Committed reports whether err itself is a CommittedError; wrapped
// errors are not unwrapped.
func Committed(err error) (*CommittedError, bool) {
	ce, ok := err.(*CommittedError)
	return ce, ok
}

// Commit wraps a ParseError (or builds one around a plain error) as
// committed, setting its Kind to KindCommittedFailure if not already a
// ParseError.
func Commit(err error) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*ParseError); ok {
		return &CommittedError{ParseError: pe}
	}
	if ce, ok := err.(*CommittedError); ok {
		return ce
	}
	return &CommittedError{ParseError: &ParseError{Kind: KindCommittedFailure, Message: err.Error()}}
}
