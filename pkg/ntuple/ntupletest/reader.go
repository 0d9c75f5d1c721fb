// Package ntupletest 提供 ntuple 接口的内存实现，用于测试
package ntupletest

import (
	"context"
	"fmt"

	"github.com/yeisme/yieldcli/pkg/ntuple"
)

// Row 一行数据，按字段名取值，缺失字段取 0
type Row map[string]float64

// Float 实现 ntuple.Row
func (r Row) Float(name string) float64 { return r[name] }

// File 内存中的数据文件：tree 名称到行集合的映射
type File struct {
	Trees map[string][]Row

	closes int
}

// Reader 内存 Reader，路径到文件的映射
// 路径不存在视为文件损坏/缺失
type Reader struct {
	Files map[string]*File

	// Opened 记录 Open 的调用次序，便于断言访问模式
	Opened []string
}

// Open 实现 ntuple.Reader
func (r *Reader) Open(path string) (ntuple.File, error) {
	r.Opened = append(r.Opened, path)
	f, ok := r.Files[path]
	if !ok {
		return nil, fmt.Errorf("ntupletest: could not open %s", path)
	}
	return &openFile{f: f}, nil
}

// Closes 返回该路径对应文件被 Close 的次数
func (r *Reader) Closes(path string) int {
	if f, ok := r.Files[path]; ok {
		return f.closes
	}
	return 0
}

type openFile struct {
	f *File
}

func (o *openFile) Tree(name string) (ntuple.Tree, error) {
	rows, ok := o.f.Trees[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ntuple.ErrNoTree, name)
	}
	return memTree(rows), nil
}

func (o *openFile) Close() error {
	o.f.closes++
	return nil
}

type memTree []Row

func (t memTree) Entries() (int64, error) { return int64(len(t)), nil }

func (t memTree) Selected(ctx context.Context, expr ntuple.Expr) (int64, error) {
	if expr == nil {
		return int64(len(t)), nil
	}
	var n int64
	for _, row := range t {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if expr.Eval(row) != 0 {
			n++
		}
	}
	return n, nil
}

func (t memTree) SumWeights(ctx context.Context, expr ntuple.Expr) (float64, error) {
	if expr == nil {
		return float64(len(t)), nil
	}
	var sum float64
	for _, row := range t {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		sum += expr.Eval(row)
	}
	return sum, nil
}
