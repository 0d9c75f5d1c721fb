package style

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, 0)
	p.Increment()
	p.Finish()
	if buf.Len() != 0 {
		t.Fatalf("expected no output for zero total, got %q", buf.String())
	}
}

func TestProgressBar_ReachesFull(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, 4)
	for i := 0; i < 4; i++ {
		p.Increment()
	}
	out := buf.String()
	if !strings.Contains(out, "100 %") {
		t.Fatalf("expected 100 %% in output, got %q", out)
	}
	// 完成时不应再有 '>' 指示符
	last := out[strings.LastIndex(out, "["):]
	if strings.Contains(last, ">") {
		t.Fatalf("expected full bar without '>', got %q", last)
	}
	if p.Done() != 4 {
		t.Fatalf("done = %d, want 4", p.Done())
	}
}

func TestProgressBar_Partial(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf, 2)
	p.Increment()
	out := buf.String()
	if !strings.Contains(out, "50 %") {
		t.Fatalf("expected 50 %% in output, got %q", out)
	}
	if !strings.Contains(out, ">") {
		t.Fatalf("expected '>' marker in partial bar, got %q", out)
	}
}
