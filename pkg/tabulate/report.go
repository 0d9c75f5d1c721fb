package tabulate

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// 报告的固定列宽：样本名 40，数值列各 20，分隔线 80
const (
	sampleColWidth = 40
	numColWidth    = 20
	ruleWidth      = 80
)

// Report 把逐目录的产额表和最终汇总写入单一输出
// 输出是纯文本、只追加的日志工件，一次运行对应一个 Report
// 写入错误黏滞在 Err 中，后续调用成为空操作
type Report struct {
	w    io.Writer
	mode Mode
	err  error
}

// NewReport 创建写入 w 的报告
func NewReport(w io.Writer, mode Mode) *Report {
	return &Report{w: w, mode: mode}
}

// Err 返回首个写入错误
func (r *Report) Err() error { return r.err }

func (r *Report) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// pad 左对齐填充到固定宽度，按显示宽度计算以兼容宽字符
func pad(s string, width int) string {
	if d := width - runewidth.StringWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

// DirectoryHeader 写出一个目录分节的标题与列头
func (r *Report) DirectoryHeader(path string) {
	r.printf("\nDirectory: %s\n", path)
	switch r.mode {
	case ModeRaw:
		r.printf("%s%s\n", pad("Sample", sampleColWidth), pad("Entries", numColWidth))
	case ModeWeighted:
		r.printf("%s%s%s%s\n",
			pad("Sample", sampleColWidth),
			pad("Entries", numColWidth),
			pad("Selected Entries", numColWidth),
			pad("Weighted Yield", numColWidth))
	default:
		r.printf("%s%s%s\n",
			pad("Sample", sampleColWidth),
			pad("Entries", numColWidth),
			pad("Selected Entries", numColWidth))
	}
	r.printf("%s\n", strings.Repeat("-", ruleWidth))
}

// FileRow 写出一个文件的统计行
func (r *Report) FileRow(res FileResult) {
	row := pad(res.Sample, sampleColWidth) +
		pad(strconv.FormatInt(res.Entries, 10), numColWidth)
	if r.mode != ModeRaw {
		row += pad(strconv.FormatInt(res.Selected, 10), numColWidth)
	}
	if r.mode == ModeWeighted {
		row += pad(formatYield(res.LegacyWeighted()), numColWidth)
	}
	r.printf("%s\n", row)
}

// Diagnosticf 写出一条非致命错误诊断
// 所有可恢复的逐文件/逐目录错误只出现在报告中，不中断遍历
func (r *Report) Diagnosticf(format string, args ...any) {
	r.printf(format+"\n", args...)
}

// Summary 写出最终的逐样本汇总与全局总产额
func (r *Report) Summary(totals []SampleTotal, grand float64) {
	r.printf("\n\n%s%s\n", pad("Sample", sampleColWidth), "Yield")
	r.printf("%s\n", strings.Repeat("-", ruleWidth))
	for _, t := range totals {
		r.printf("%s%s\n", pad(t.Sample, sampleColWidth), r.formatValue(t.Yield.ValueFor(r.mode)))
	}
	r.printf("%s\n", strings.Repeat("-", ruleWidth))
	r.printf("Total yield: %s\n", r.formatValue(grand))
}

// formatValue 计数模式输出整数，加权模式输出浮点
func (r *Report) formatValue(v float64) string {
	if r.mode == ModeWeighted {
		return formatYield(v)
	}
	return strconv.FormatInt(int64(v), 10)
}

func formatYield(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
