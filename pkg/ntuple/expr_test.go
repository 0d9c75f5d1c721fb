package ntuple

import (
	"reflect"
	"testing"
)

type mapRow map[string]float64

func (m mapRow) Float(name string) float64 { return m[name] }

func TestExpr_Eval(t *testing.T) {
	row := mapRow{"a": 2, "b": 3, "n": 5}

	tests := []struct {
		name string
		expr Expr
		want float64
	}{
		{"field", Field("a"), 2},
		{"const", Const(1.5), 1.5},
		{"product", Mul(Field("a"), Field("b"), Const(10)), 60},
		{"cmp true", GE(Field("n"), Const(5)), 1},
		{"cmp false", GT(Field("n"), Const(5)), 0},
		{"and true", And(GE(Field("n"), Const(5)), GT(Field("a"), Const(1))), 1},
		{"and false", And(GE(Field("n"), Const(5)), GT(Field("a"), Const(2))), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.Eval(row); got != tt.want {
				t.Fatalf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPiecewise_Eval(t *testing.T) {
	p := Piecewise(Field("run"), 58791.6,
		PiecewiseCase{UpTo: 311481, Value: 36646.74},
		PiecewiseCase{UpTo: 340453, Value: 44630.6},
	)
	cases := []struct {
		run  float64
		want float64
	}{
		{300000, 36646.74},
		{311481, 36646.74},
		{311482, 44630.6},
		{340453, 44630.6},
		{350000, 58791.6},
	}
	for _, c := range cases {
		if got := p.Eval(mapRow{"run": c.run}); got != c.want {
			t.Fatalf("run=%v: got %v, want %v", c.run, got, c.want)
		}
	}
}

func TestFields_DedupOrder(t *testing.T) {
	e := Mul(Field("w1"), Field("w2"), GT(Field("w1"), Const(0)))
	got := Fields(e)
	want := []string{"w1", "w2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Fields() = %v, want %v", got, want)
	}
	if Fields(nil) != nil {
		t.Fatal("Fields(nil) should be nil")
	}
}

// 历史产额报告使用的完整权重字符串必须逐字保持一致
func TestPreset_Run2LumiWeightString(t *testing.T) {
	e, err := Preset("run2-lumi-weight")
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}
	want := "weight_normalise*weight_mc*weight_pileup*weight_leptonSF*weight_jvt" +
		"*weight_bTagSF_DL1r_Continuous*(randomRunNumber<=311481 ? 36646.74 : " +
		"(randomRunNumber<=340453 ? 44630.6 : 58791.6))"
	if got := e.String(); got != want {
		t.Fatalf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestPreset_Lookup(t *testing.T) {
	if e, err := Preset(""); err != nil || e != nil {
		t.Fatalf("empty preset should be nil,nil; got %v, %v", e, err)
	}
	if e, err := Preset("none"); err != nil || e != nil {
		t.Fatalf("none preset should be nil,nil; got %v, %v", e, err)
	}
	if _, err := Preset("no-such-preset"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
	names := PresetNames()
	if len(names) == 0 {
		t.Fatal("expected preset names")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
