package tabulate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yeisme/yieldcli/pkg/ntuple"
	"github.com/yeisme/yieldcli/pkg/style"
	"github.com/yeisme/yieldcli/pkg/utils/log"
)

// Options 一次统计运行的全部输入
type Options struct {
	// Root 数据文件树的根目录；Files 非空时忽略
	Root string
	// Files 显式文件列表，替代目录遍历（--from-list 模式）
	Files []string
	// ListName 列表来源的展示名称，仅 Files 模式使用
	ListName string

	Tree      string
	Extension string
	Mode      Mode
	Selection ntuple.Expr
	Weight    ntuple.Expr
	Exclude   []string

	// Report 产额报告的输出；一次运行写一个报告
	Report io.Writer
	// Progress 进度条输出；nil 表示不显示进度条
	Progress io.Writer
}

// Result 一次运行的汇总
type Result struct {
	Mode           Mode
	FilesTotal     int
	FilesProcessed int
	FilesSkipped   int
	Totals         []SampleTotal
	Grand          float64
}

// Run 执行一次完整的统计：遍历、逐文件累加、写报告
// 逐文件与逐目录的错误只进报告不中断运行；
// 返回错误仅发生在参数无效、上下文取消或报告写入失败时
func Run(ctx context.Context, reader ntuple.Reader, opts Options) (*Result, error) {
	logger := log.GetLogger()

	if opts.Report == nil {
		return nil, errors.New("tabulate: report writer is required")
	}
	if opts.Tree == "" {
		return nil, errors.New("tabulate: tree name is required")
	}

	pred := ExtPredicate(opts.Extension)
	report := NewReport(opts.Report, opts.Mode)
	acc := NewAccumulator(reader, opts.Tree, opts.Mode, opts.Selection, opts.Weight)

	result := &Result{Mode: opts.Mode}

	var files []string
	if len(opts.Files) > 0 {
		files = opts.Files
		result.FilesTotal = len(files)
	} else {
		result.FilesTotal = CountFiles(opts.Root, pred, opts.Exclude)
	}

	progressOut := opts.Progress
	if progressOut == nil {
		progressOut = io.Discard
	}
	bar := style.NewProgressBar(progressOut, result.FilesTotal)
	if opts.Progress == nil {
		bar = style.NewProgressBar(io.Discard, 0)
	}

	visit := func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := acc.Process(ctx, path)
		switch {
		case err == nil:
			report.FileRow(res)
			result.FilesProcessed++
			bar.Increment()
		case errors.Is(err, ntuple.ErrNoTree):
			report.Diagnosticf("Error: could not find tree '%s' in file %s", opts.Tree, path)
			logger.Warn().Str("file", path).Str("tree", opts.Tree).Msg("tree not found, file skipped")
			result.FilesSkipped++
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			report.Diagnosticf("Error: could not open file %s", path)
			logger.Warn().Str("file", path).Err(err).Msg("file unreadable, skipped")
			result.FilesSkipped++
		}
		return nil
	}

	if len(files) > 0 {
		report.DirectoryHeader(opts.ListName)
		for _, path := range files {
			if err := visit(path); err != nil {
				return nil, err
			}
		}
	} else {
		err := Walk(opts.Root, pred, opts.Exclude, WalkFuncs{
			Dir: func(path string) error {
				report.DirectoryHeader(path)
				return nil
			},
			File: visit,
			DirError: func(path string, err error) {
				report.Diagnosticf("Error: could not open directory %s", path)
				logger.Warn().Str("dir", path).Err(err).Msg("directory unreadable, subtree skipped")
			},
		})
		if err != nil {
			return nil, err
		}
	}

	bar.Finish()

	result.Totals, result.Grand = acc.Summary()
	report.Summary(result.Totals, result.Grand)

	if err := report.Err(); err != nil {
		return nil, fmt.Errorf("tabulate: write report: %w", err)
	}
	return result, nil
}
