package ntuple

import (
	"strconv"
	"strings"
)

// Row 提供按名称读取单行标量字段的能力
// 实现方负责把整数、布尔等分支类型统一转换为 float64
type Row interface {
	Float(name string) float64
}

// Expr 类型化的行表达式：字段、常数与有限的算符组合
// String 渲染出 ROOT 风格的表达式文本，Eval 在一行上求值
// 布尔子表达式求值结果为 1/0
type Expr interface {
	Eval(r Row) float64
	String() string
	appendFields(dst []string) []string
}

// Fields 返回表达式引用的全部字段名，去重并保持首次出现顺序
func Fields(e Expr) []string {
	if e == nil {
		return nil
	}
	raw := e.appendFields(nil)
	seen := make(map[string]struct{}, len(raw))
	out := raw[:0]
	for _, n := range raw {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Field 按名称引用一个标量分支
type Field string

// Eval 读取该字段在当前行的值
func (f Field) Eval(r Row) float64 { return r.Float(string(f)) }

func (f Field) String() string { return string(f) }

func (f Field) appendFields(dst []string) []string { return append(dst, string(f)) }

// Const 数值常量
type Const float64

// Eval 返回常量值本身
func (c Const) Eval(Row) float64 { return float64(c) }

func (c Const) String() string { return formatFloat(float64(c)) }

func (c Const) appendFields(dst []string) []string { return dst }

// Mul 构造各项逐行相乘的乘积表达式
func Mul(terms ...Expr) Expr { return product(terms) }

type product []Expr

func (p product) Eval(r Row) float64 {
	v := 1.0
	for _, t := range p {
		v *= t.Eval(r)
	}
	return v
}

func (p product) String() string {
	parts := make([]string, len(p))
	for i, t := range p {
		parts[i] = t.String()
	}
	return strings.Join(parts, "*")
}

func (p product) appendFields(dst []string) []string {
	for _, t := range p {
		dst = t.appendFields(dst)
	}
	return dst
}

// CmpOp 比较算符
type CmpOp string

// 支持的比较算符
const (
	OpLE CmpOp = "<="
	OpLT CmpOp = "<"
	OpGE CmpOp = ">="
	OpGT CmpOp = ">"
	OpEQ CmpOp = "=="
	OpNE CmpOp = "!="
)

type compare struct {
	op   CmpOp
	l, r Expr
}

// Cmp 构造一个比较表达式，结果为 1/0
func Cmp(op CmpOp, l, r Expr) Expr { return compare{op: op, l: l, r: r} }

// GE l >= r
func GE(l, r Expr) Expr { return Cmp(OpGE, l, r) }

// GT l > r
func GT(l, r Expr) Expr { return Cmp(OpGT, l, r) }

// LE l <= r
func LE(l, r Expr) Expr { return Cmp(OpLE, l, r) }

func (c compare) Eval(r Row) float64 {
	lv, rv := c.l.Eval(r), c.r.Eval(r)
	var ok bool
	switch c.op {
	case OpLE:
		ok = lv <= rv
	case OpLT:
		ok = lv < rv
	case OpGE:
		ok = lv >= rv
	case OpGT:
		ok = lv > rv
	case OpEQ:
		ok = lv == rv
	case OpNE:
		ok = lv != rv
	}
	if ok {
		return 1
	}
	return 0
}

func (c compare) String() string {
	return c.l.String() + string(c.op) + c.r.String()
}

func (c compare) appendFields(dst []string) []string {
	return c.r.appendFields(c.l.appendFields(dst))
}

// And 构造逻辑与，全部子式非零时为 1
func And(terms ...Expr) Expr { return conjunction(terms) }

type conjunction []Expr

func (a conjunction) Eval(r Row) float64 {
	for _, t := range a {
		if t.Eval(r) == 0 {
			return 0
		}
	}
	return 1
}

func (a conjunction) String() string {
	parts := make([]string, len(a))
	for i, t := range a {
		parts[i] = t.String()
	}
	return strings.Join(parts, " && ")
}

func (a conjunction) appendFields(dst []string) []string {
	for _, t := range a {
		dst = t.appendFields(dst)
	}
	return dst
}

// PiecewiseCase 分段表达式的一个分段：on <= UpTo 时取 Value
type PiecewiseCase struct {
	UpTo  float64
	Value float64
}

// Piecewise 构造阈值分段表达式，渲染为嵌套三元式
// 各分段按 UpTo 升序依次判断，全部不命中时取 fallback
func Piecewise(on Expr, fallback float64, cases ...PiecewiseCase) Expr {
	return piecewise{on: on, cases: cases, fallback: fallback}
}

type piecewise struct {
	on       Expr
	cases    []PiecewiseCase
	fallback float64
}

func (p piecewise) Eval(r Row) float64 {
	v := p.on.Eval(r)
	for _, c := range p.cases {
		if v <= c.UpTo {
			return c.Value
		}
	}
	return p.fallback
}

func (p piecewise) String() string {
	return p.render(0)
}

func (p piecewise) render(i int) string {
	if i == len(p.cases) {
		return formatFloat(p.fallback)
	}
	c := p.cases[i]
	return "(" + p.on.String() + "<=" + formatFloat(c.UpTo) +
		" ? " + formatFloat(c.Value) + " : " + p.render(i+1) + ")"
}

func (p piecewise) appendFields(dst []string) []string {
	return p.on.appendFields(dst)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
