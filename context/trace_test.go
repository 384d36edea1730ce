package context

import (
	"strings"
	"testing"

	"github.com/arriqaaq/peggen/buffer"
	"github.com/go-logr/logr/funcr"
)

func TestTraceEnterLogsWhenEnabled(t *testing.T) {
	var lines []string
	l := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	c := New(buffer.New("abc"), WithLogger(l), WithTrace(true))
	c.TraceEnter("rule", 0)
	c.TraceSuccess("rule", 0, 3)
	c.TraceFailed("rule", 0, nil)

	if len(lines) != 3 {
		t.Fatalf("want 3 trace lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "ENTER") || !strings.Contains(lines[0], "rule") {
		t.Fatalf("want ENTER line to mention rule name, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "SUCCESS") {
		t.Fatalf("want SUCCESS line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "FAILED") {
		t.Fatalf("want FAILED line, got %q", lines[2])
	}
}

func TestTraceDisabledProducesNoOutput(t *testing.T) {
	var lines []string
	l := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	c := New(buffer.New("abc"), WithLogger(l), WithTrace(false))
	c.TraceEnter("rule", 0)
	c.TraceSuccess("rule", 0, 3)
	c.TraceFailed("rule", 0, nil)

	if len(lines) != 0 {
		t.Fatalf("want no trace output when trace is disabled, got %v", lines)
	}
}

func TestMemoGetPutRoundTrip(t *testing.T) {
	c := New(buffer.New("abc"))
	if _, ok := c.MemoGet("rule", 0); ok {
		t.Fatal("want miss on empty cache")
	}
	c.MemoPut("rule", 0, "value", 3, nil)
	entry, ok := c.MemoGet("rule", 0)
	if !ok {
		t.Fatal("want hit after put")
	}
	if !MemoEntryOK(entry) || MemoEntryValue(entry) != "value" || MemoEntryEnd(entry) != 3 || MemoEntryErr(entry) != nil {
		t.Fatalf("want round-tripped entry fields, got ok=%v value=%v end=%v err=%v",
			MemoEntryOK(entry), MemoEntryValue(entry), MemoEntryEnd(entry), MemoEntryErr(entry))
	}
}

func TestMemoPutRecordsFailure(t *testing.T) {
	c := New(buffer.New("abc"))
	failErr := c.NewError(0, "nope")
	c.MemoPut("rule", 2, nil, 2, failErr)
	entry, ok := c.MemoGet("rule", 2)
	if !ok {
		t.Fatal("want hit after put")
	}
	if MemoEntryOK(entry) {
		t.Fatal("want ok=false for a failed memo entry")
	}
	if MemoEntryErr(entry) != failErr {
		t.Fatalf("want stored error preserved, got %v", MemoEntryErr(entry))
	}
}
