package tabulate

import (
	"bytes"
	"strings"
	"testing"
)

func TestReport_DirectoryHeaderColumns(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf, ModeWeighted)
	r.DirectoryHeader("/data/mc16a")

	out := buf.String()
	if !strings.Contains(out, "Directory: /data/mc16a") {
		t.Fatalf("missing directory line:\n%s", out)
	}
	header := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Sample") {
			header = line
		}
	}
	if header == "" {
		t.Fatalf("missing column header:\n%s", out)
	}
	// 固定列宽 40/20/20/20
	if got := strings.Index(header, "Entries"); got != 40 {
		t.Fatalf("Entries column at %d, want 40", got)
	}
	if got := strings.Index(header, "Selected Entries"); got != 60 {
		t.Fatalf("Selected Entries column at %d, want 60", got)
	}
	if got := strings.Index(header, "Weighted Yield"); got != 80 {
		t.Fatalf("Weighted Yield column at %d, want 80", got)
	}
	if !strings.Contains(out, strings.Repeat("-", 80)) {
		t.Fatalf("missing rule line:\n%s", out)
	}
}

func TestReport_RawModeOmitsSelectedColumn(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf, ModeRaw)
	r.DirectoryHeader("/data")
	r.FileRow(FileResult{Sample: "ttb", Entries: 123})

	out := buf.String()
	if strings.Contains(out, "Selected") {
		t.Fatalf("raw mode must not contain Selected column:\n%s", out)
	}
	if !strings.Contains(out, "ttb") || !strings.Contains(out, "123") {
		t.Fatalf("missing file row:\n%s", out)
	}
}

func TestReport_SummaryTotals(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf, ModeFiltered)
	totals := []SampleTotal{
		{Sample: "sigA", Yield: Yield{Selected: 45}},
		{Sample: "sigB", Yield: Yield{Selected: 50}},
	}
	r.Summary(totals, 95)

	out := buf.String()
	for _, want := range []string{"Sample", "Yield", "sigA", "45", "sigB", "50", "Total yield: 95"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	// 汇总部分与前文以空行分隔
	if !strings.HasPrefix(out, "\n\n") {
		t.Fatalf("summary should start with blank separator:\n%q", out)
	}
}

func TestReport_Diagnostic(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf, ModeFiltered)
	r.Diagnosticf("Error: could not open file %s", "/data/bad.root")
	if got := buf.String(); got != "Error: could not open file /data/bad.root\n" {
		t.Fatalf("diagnostic = %q", got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errStickyWrite
}

var errStickyWrite = &writeErr{}

type writeErr struct{}

func (*writeErr) Error() string { return "sink failed" }

func TestReport_StickyWriteError(t *testing.T) {
	r := NewReport(failWriter{}, ModeFiltered)
	r.DirectoryHeader("/data")
	r.FileRow(FileResult{Sample: "x"})
	if r.Err() == nil {
		t.Fatal("expected sticky write error")
	}
}
