package tabulate

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/yeisme/yieldcli/pkg/ntuple"
	"github.com/yeisme/yieldcli/pkg/ntuple/ntupletest"
)

// rows 构造 n 行数据，前 npass 行 pass=1，其余 pass=0
// 每行附带 w 作为权重字段
func rows(n, npass int, w float64) []ntupletest.Row {
	out := make([]ntupletest.Row, n)
	for i := range out {
		pass := 0.0
		if i < npass {
			pass = 1
		}
		out[i] = ntupletest.Row{"pass": pass, "w": w}
	}
	return out
}

func testReader() *ntupletest.Reader {
	return &ntupletest.Reader{Files: map[string]*ntupletest.File{
		"/data/sigA.root":       {Trees: map[string][]ntupletest.Row{"nominal_Loose": rows(100, 40, 0.5)}},
		"/data/sigB.root":       {Trees: map[string][]ntupletest.Row{"nominal_Loose": rows(50, 50, 0.5)}},
		"/data/sub/sigA_2.root": {Trees: map[string][]ntupletest.Row{"nominal_Loose": rows(10, 5, 0.5)}},
		"/data/notree.root":     {Trees: map[string][]ntupletest.Row{}},
	}}
}

func TestSampleID(t *testing.T) {
	cases := map[string]string{
		"/data/sigA.root":     "sigA",
		"/data/sub/ttb_2.root": "ttb_2",
		"plain.root":          "plain",
	}
	for path, want := range cases {
		if got := SampleID(path); got != want {
			t.Fatalf("SampleID(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"raw", "Filtered", "WEIGHTED"} {
		if _, err := ParseMode(s); err != nil {
			t.Fatalf("ParseMode(%q): %v", s, err)
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestAccumulator_MergesSplitSamples(t *testing.T) {
	r := testReader()
	sel := ntuple.Field("pass")
	acc := NewAccumulator(r, "nominal_Loose", ModeFiltered, sel, nil)

	for _, p := range []string{"/data/sigA.root", "/data/sigB.root", "/data/sub/sigA_2.root"} {
		if _, err := acc.Process(context.Background(), p); err != nil {
			t.Fatalf("Process(%s): %v", p, err)
		}
	}

	y := acc.Yields()
	if y["sigA"].Selected != 40 || y["sigA"].Entries != 100 {
		t.Fatalf("sigA yield = %+v", y["sigA"])
	}
	if y["sigA_2"].Selected != 5 {
		t.Fatalf("sigA_2 yield = %+v", y["sigA_2"])
	}
	if y["sigB"].Selected != 50 {
		t.Fatalf("sigB yield = %+v", y["sigB"])
	}

	totals, grand := acc.Summary()
	if len(totals) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(totals))
	}
	// 排序后的样本顺序是确定的
	if totals[0].Sample != "sigA" || totals[1].Sample != "sigA_2" || totals[2].Sample != "sigB" {
		t.Fatalf("unexpected order: %v", totals)
	}
	if grand != 95 {
		t.Fatalf("grand total = %v, want 95", grand)
	}
}

func TestAccumulator_SameSampleSummedNotOverwritten(t *testing.T) {
	r := &ntupletest.Reader{Files: map[string]*ntupletest.File{
		"/a/ttb.root": {Trees: map[string][]ntupletest.Row{"t": rows(10, 10, 1)}},
		"/b/ttb.root": {Trees: map[string][]ntupletest.Row{"t": rows(7, 7, 1)}},
	}}
	acc := NewAccumulator(r, "t", ModeFiltered, ntuple.Field("pass"), nil)
	for _, p := range []string{"/a/ttb.root", "/b/ttb.root"} {
		if _, err := acc.Process(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}
	if got := acc.Yields()["ttb"].Selected; got != 17 {
		t.Fatalf("ttb selected = %d, want 17 (sum, not overwrite)", got)
	}
}

func TestAccumulator_LegacyWeighted(t *testing.T) {
	// 加权列是未筛选权重和与通过筛选行数的乘积，沿用历史算法
	res := FileResult{Entries: 100, Selected: 40, WeightSum: 50}
	if got := res.LegacyWeighted(); got != 2000 {
		t.Fatalf("LegacyWeighted = %v, want 2000", got)
	}

	r := testReader()
	acc := NewAccumulator(r, "nominal_Loose", ModeWeighted, ntuple.Field("pass"), ntuple.Field("w"))
	got, err := acc.Process(context.Background(), "/data/sigA.root")
	if err != nil {
		t.Fatal(err)
	}
	// 100 行 × w=0.5 ⇒ 权重和 50；40 行通过 ⇒ 50×40 = 2000
	if math.Abs(got.WeightSum-50) > 1e-9 {
		t.Fatalf("WeightSum = %v, want 50", got.WeightSum)
	}
	if math.Abs(acc.Yields()["sigA"].Weighted-2000) > 1e-9 {
		t.Fatalf("Weighted = %v, want 2000", acc.Yields()["sigA"].Weighted)
	}
}

func TestAccumulator_MissingTreeLeavesYieldsUntouched(t *testing.T) {
	r := testReader()
	acc := NewAccumulator(r, "nominal_Loose", ModeFiltered, ntuple.Field("pass"), nil)

	_, err := acc.Process(context.Background(), "/data/notree.root")
	if !errors.Is(err, ntuple.ErrNoTree) {
		t.Fatalf("expected ErrNoTree, got %v", err)
	}
	if len(acc.Yields()) != 0 {
		t.Fatalf("yields should be empty after failed file, got %v", acc.Yields())
	}
	// 文件句柄在错误路径上也必须被关闭
	if r.Closes("/data/notree.root") != 1 {
		t.Fatalf("file not closed on error path, closes = %d", r.Closes("/data/notree.root"))
	}
}

func TestAccumulator_OpenFailure(t *testing.T) {
	r := testReader()
	acc := NewAccumulator(r, "nominal_Loose", ModeFiltered, nil, nil)
	if _, err := acc.Process(context.Background(), "/data/missing.root"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
