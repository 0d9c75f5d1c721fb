// Package ntuple 定义对 ntuple 数据文件的只读访问抽象
// 统计核心只依赖这里的接口，不关心文件的二进制布局；
// 具体实现见 rootio 子包（基于 go-hep）与 ntupletest 子包（内存实现）
package ntuple

import (
	"context"
	"errors"
)

// ErrNoTree 表示文件有效，但其中不存在指定名称的 tree
var ErrNoTree = errors.New("ntuple: tree not found")

// Reader 按路径打开 ntuple 数据文件
type Reader interface {
	// Open 打开文件；文件缺失或损坏时返回错误
	Open(path string) (File, error)
}

// File 一个已打开的数据文件，使用完毕必须 Close
type File interface {
	// Tree 获取文件内命名数据表；不存在时返回包装了 ErrNoTree 的错误
	Tree(name string) (Tree, error)
	Close() error
}

// Tree 文件内的命名数据表，每行绑定若干标量字段
type Tree interface {
	// Entries 返回总行数
	Entries() (int64, error)

	// Selected 返回 expr 求值非零的行数（ROOT 语义：非零即通过）
	// expr 为 nil 时等价于 Entries
	Selected(ctx context.Context, expr Expr) (int64, error)

	// SumWeights 返回 expr 在全部行上的求和，不做任何筛选
	// expr 为 nil 时返回行数
	SumWeights(ctx context.Context, expr Expr) (float64, error)
}
