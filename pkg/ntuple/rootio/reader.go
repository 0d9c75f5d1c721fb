// Package rootio 基于 go-hep/groot 实现 ntuple 接口，读取 ROOT 文件
package rootio

import (
	"context"
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/yeisme/yieldcli/pkg/ntuple"
)

// Reader 打开磁盘上的 ROOT 文件
type Reader struct{}

// New 创建一个 ROOT 文件 Reader
func New() *Reader { return &Reader{} }

// Open 实现 ntuple.Reader；文件缺失或损坏时返回错误
func (Reader) Open(path string) (ntuple.File, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rootio: open %s: %w", path, err)
	}
	return &file{f: f}, nil
}

type file struct {
	f *riofs.File
}

func (f *file) Tree(name string) (ntuple.Tree, error) {
	obj, err := f.f.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ntuple.ErrNoTree, name, err)
	}
	t, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %T", ntuple.ErrNoTree, name, obj)
	}
	return &tree{t: t}, nil
}

func (f *file) Close() error { return f.f.Close() }

type tree struct {
	t rtree.Tree
}

func (t *tree) Entries() (int64, error) { return t.t.Entries(), nil }

func (t *tree) Selected(ctx context.Context, expr ntuple.Expr) (int64, error) {
	if expr == nil {
		return t.t.Entries(), nil
	}
	var n int64
	err := t.scan(ctx, expr, func(v float64) {
		if v != 0 {
			n++
		}
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (t *tree) SumWeights(ctx context.Context, expr ntuple.Expr) (float64, error) {
	if expr == nil {
		return float64(t.t.Entries()), nil
	}
	var sum float64
	err := t.scan(ctx, expr, func(v float64) { sum += v })
	if err != nil {
		return 0, err
	}
	return sum, nil
}

// scan 绑定表达式引用的分支，逐行求值并回调
func (t *tree) scan(ctx context.Context, expr ntuple.Expr, visit func(float64)) error {
	names := ntuple.Fields(expr)
	all := rtree.NewReadVars(t.t)

	row := make(exprRow, len(names))
	rvars := make([]rtree.ReadVar, 0, len(names))
	for _, name := range names {
		rv, ok := lookupVar(all, name)
		if !ok {
			return fmt.Errorf("rootio: tree %q has no branch %q", t.t.Name(), name)
		}
		conv, err := scalarConverter(rv.Value)
		if err != nil {
			return fmt.Errorf("rootio: branch %q: %w", name, err)
		}
		rvars = append(rvars, rv)
		row[name] = conv
	}

	r, err := rtree.NewReader(t.t, rvars)
	if err != nil {
		return fmt.Errorf("rootio: new reader: %w", err)
	}
	defer r.Close()

	return r.Read(func(rctx rtree.RCtx) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		visit(expr.Eval(row))
		return nil
	})
}

func lookupVar(vars []rtree.ReadVar, name string) (rtree.ReadVar, bool) {
	for _, rv := range vars {
		if rv.Name == name {
			return rv, true
		}
	}
	return rtree.ReadVar{}, false
}

// exprRow 把已绑定分支按名称暴露为 float64，实现 ntuple.Row
type exprRow map[string]func() float64

func (r exprRow) Float(name string) float64 {
	if f, ok := r[name]; ok {
		return f()
	}
	return 0
}

// scalarConverter 把分支绑定值的指针包装为 float64 取值函数
// 只支持标量分支；数组或对象类型的分支直接报错
func scalarConverter(ptr any) (func() float64, error) {
	switch p := ptr.(type) {
	case *float64:
		return func() float64 { return *p }, nil
	case *float32:
		return func() float64 { return float64(*p) }, nil
	case *int64:
		return func() float64 { return float64(*p) }, nil
	case *int32:
		return func() float64 { return float64(*p) }, nil
	case *int16:
		return func() float64 { return float64(*p) }, nil
	case *int8:
		return func() float64 { return float64(*p) }, nil
	case *uint64:
		return func() float64 { return float64(*p) }, nil
	case *uint32:
		return func() float64 { return float64(*p) }, nil
	case *uint16:
		return func() float64 { return float64(*p) }, nil
	case *uint8:
		return func() float64 { return float64(*p) }, nil
	case *bool:
		return func() float64 {
			if *p {
				return 1
			}
			return 0
		}, nil
	default:
		return nil, fmt.Errorf("unsupported scalar type %T", ptr)
	}
}
