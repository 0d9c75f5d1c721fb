package tabulate

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yeisme/yieldcli/pkg/ntuple"
)

// Mode 统计模式，决定报告中出现哪些列
type Mode string

// 支持的统计模式
const (
	// ModeRaw 只统计总行数
	ModeRaw Mode = "raw"
	// ModeFiltered 统计总行数与通过筛选的行数
	ModeFiltered Mode = "filtered"
	// ModeWeighted 在 filtered 基础上追加加权产额列
	ModeWeighted Mode = "weighted"
)

// ParseMode 解析统计模式字符串
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "raw":
		return ModeRaw, nil
	case "filtered":
		return ModeFiltered, nil
	case "weighted":
		return ModeWeighted, nil
	default:
		return "", fmt.Errorf("unsupported mode %q, supported: raw, filtered, weighted", s)
	}
}

// SampleID 从文件路径推导样本标识：去掉扩展名的文件基名
// 同一样本被拆分成多个文件时（如 sigA.root 与 sigA_2.root），
// 标识不同但累加逻辑按标识求和，拆分文件的产额不会相互覆盖
func SampleID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileResult 单个文件的统计结果
type FileResult struct {
	Sample    string
	Entries   int64
	Selected  int64
	WeightSum float64
}

// LegacyWeighted 历史报告中的加权产额列：未筛选的权重和乘以通过筛选的行数
// 这两个量相互独立，该乘积并非物理意义上的产额；
// 为了与既有报告逐位可比，保留历史工具的这一算法，不做修正
func (r FileResult) LegacyWeighted() float64 {
	return r.WeightSum * float64(r.Selected)
}

// Yield 一个样本的累计产额
type Yield struct {
	Entries  int64
	Selected int64
	Weighted float64
}

// ValueFor 返回该模式下样本的产额标量
func (y Yield) ValueFor(mode Mode) float64 {
	switch mode {
	case ModeRaw:
		return float64(y.Entries)
	case ModeWeighted:
		return y.Weighted
	default:
		return float64(y.Selected)
	}
}

// Accumulator 逐文件读取产额并按样本标识累加
// 非并发安全：一次运行由单一 goroutine 驱动
type Accumulator struct {
	reader    ntuple.Reader
	tree      string
	mode      Mode
	selection ntuple.Expr
	weight    ntuple.Expr

	yields map[string]Yield
}

// NewAccumulator 创建累加器
// selection 用于筛选计数，weight 用于权重求和；二者均可为 nil
func NewAccumulator(reader ntuple.Reader, tree string, mode Mode, selection, weight ntuple.Expr) *Accumulator {
	return &Accumulator{
		reader:    reader,
		tree:      tree,
		mode:      mode,
		selection: selection,
		weight:    weight,
		yields:    make(map[string]Yield),
	}
}

// Process 读取单个文件并把结果并入累计产额
// 文件打开失败或 tree 缺失时返回错误且不改动累计值；
// 文件句柄在所有返回路径上都会被关闭
func (a *Accumulator) Process(ctx context.Context, path string) (FileResult, error) {
	res := FileResult{Sample: SampleID(path)}

	f, err := a.reader.Open(path)
	if err != nil {
		return res, err
	}
	defer func() {
		_ = f.Close()
	}()

	t, err := f.Tree(a.tree)
	if err != nil {
		return res, err
	}

	res.Entries, err = t.Entries()
	if err != nil {
		return res, err
	}

	if a.mode != ModeRaw {
		res.Selected, err = t.Selected(ctx, a.selection)
		if err != nil {
			return res, err
		}
	}
	if a.mode == ModeWeighted {
		res.WeightSum, err = t.SumWeights(ctx, a.weight)
		if err != nil {
			return res, err
		}
	}

	y := a.yields[res.Sample]
	y.Entries += res.Entries
	y.Selected += res.Selected
	y.Weighted += res.LegacyWeighted()
	a.yields[res.Sample] = y

	return res, nil
}

// Yields 返回按样本标识累计的产额映射
func (a *Accumulator) Yields() map[string]Yield {
	return a.yields
}

// SampleTotal 汇总表中的一行
type SampleTotal struct {
	Sample string
	Yield  Yield
}

// Summary 返回按样本名排序的汇总行与全局总和
// map 的遍历顺序不确定，排序保证两次运行产生逐字节相同的汇总
func (a *Accumulator) Summary() ([]SampleTotal, float64) {
	totals := make([]SampleTotal, 0, len(a.yields))
	for name, y := range a.yields {
		totals = append(totals, SampleTotal{Sample: name, Yield: y})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Sample < totals[j].Sample })

	var grand float64
	for _, t := range totals {
		grand += t.Yield.ValueFor(a.mode)
	}
	return totals, grand
}
