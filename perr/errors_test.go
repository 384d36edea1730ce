package perr

import (
	"errors"
	"strings"
	"testing"
)

func TestParseErrorFormatting(t *testing.T) {
	e := &ParseError{
		Kind:     KindExpectedToken,
		Filename: "g.peg",
		Pos:      Pos{Line: 2, Col: 5},
		Rule:     "expr",
		Message:  `expected "+"`,
		LineText: "1 + + 2",
	}
	got := e.Error()
	for _, want := range []string{"g.peg:", "2:5", `expected "+"`, "(rule expr)", "1 + + 2", "^"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestParseErrorSuggestions(t *testing.T) {
	e := &ParseError{Kind: KindUnknownRule, Message: "unknown rule foo", Suggestions: []string{"bar", "baz"}}
	got := e.Error()
	if !strings.Contains(got, "did you mean: bar, baz?") {
		t.Errorf("Error() = %q, want suggestions rendered", got)
	}
}

func TestListDedupe(t *testing.T) {
	var l List
	e1 := &ParseError{Message: "same"}
	e2 := &ParseError{Message: "same"}
	e3 := &ParseError{Message: "different"}
	l.Add(e1)
	l.Add(e2)
	l.Add(e3)
	err := l.Err()
	if err == nil {
		t.Fatal("want non-nil error")
	}
	deduped := l.dedupe()
	if len(deduped) != 2 {
		t.Fatalf("want 2 deduped entries, got %d", len(deduped))
	}
}

func TestListErrEmpty(t *testing.T) {
	var l List
	if l.Err() != nil {
		t.Fatal("want nil error for empty list")
	}
}

func TestCommitAndCommitted(t *testing.T) {
	pe := &ParseError{Kind: KindExpectedToken, Message: "boom"}
	committed := Commit(pe)
	ce, ok := Committed(committed)
	if !ok {
		t.Fatal("want Committed(true)")
	}
	if ce.ParseError != pe {
		t.Fatal("want wrapped ParseError preserved")
	}
	if _, ok := Committed(pe); ok {
		t.Fatal("plain ParseError must not report as committed")
	}
}

func TestCommitIdempotent(t *testing.T) {
	pe := &ParseError{Message: "x"}
	once := Commit(pe)
	twice := Commit(once)
	if once != twice {
		t.Fatal("want Commit on an already-committed error to be a no-op")
	}
}

func TestCommitPlainError(t *testing.T) {
	err := errors.New("plain")
	committed := Commit(err)
	ce, ok := Committed(committed)
	if !ok {
		t.Fatal("want Committed(true) for wrapped plain error")
	}
	if ce.Kind != KindCommittedFailure {
		t.Fatalf("want KindCommittedFailure, got %v", ce.Kind)
	}
}

func TestCommitNil(t *testing.T) {
	if Commit(nil) != nil {
		t.Fatal("want Commit(nil) == nil")
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("semantic rejection")
	pe := &ParseError{Message: "rejected", Inner: inner}
	if !errors.Is(pe, inner) {
		t.Fatal("want errors.Is to find Inner via Unwrap")
	}

	committed := Commit(pe)
	if !errors.Is(committed, inner) {
		t.Fatal("want errors.Is to find Inner through CommittedError.Unwrap too")
	}
}

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		KindExpectedToken:     "expected-token",
		KindExpectedPattern:   "expected-pattern",
		KindUnknownRule:       "unknown-rule",
		KindNoViableOption:    "no-viable-option",
		KindLookaheadFailed:   "lookahead-failed",
		KindCommittedFailure:  "committed-failure-after-cut",
		KindSemanticRejection: "semantic-rejection",
		KindGrammarError:      "grammar-error",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v: want %q, got %q", int(k), want, got)
		}
	}
}
