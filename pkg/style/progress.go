package style

import (
	"fmt"
	"io"
	"strings"
)

// barWidth 进度条内部宽度（字符数）
const barWidth = 50

// ProgressBar 是一个简单的文本进度条
// 以 \r 覆盖方式重绘，形如 [=====>        ] 42 %
// total <= 0 时所有方法均为空操作（没有可统计的文件时不显示进度条）
type ProgressBar struct {
	out   io.Writer
	total int
	done  int
}

// NewProgressBar 创建一个新的进度条
// out: 写入目标（一般为 os.Stdout）
// total: 预先统计出的总文件数
func NewProgressBar(out io.Writer, total int) *ProgressBar {
	return &ProgressBar{out: out, total: total}
}

// Increment 前进一步并重绘
func (p *ProgressBar) Increment() {
	if p.total <= 0 {
		return
	}
	p.done++
	p.render()
}

// Done 返回已完成的步数
func (p *ProgressBar) Done() int { return p.done }

// Finish 结束进度条，换行以保留最终状态
func (p *ProgressBar) Finish() {
	if p.total <= 0 {
		return
	}
	fmt.Fprintln(p.out)
}

func (p *ProgressBar) render() {
	fraction := float64(p.done) / float64(p.total)
	pos := int(barWidth * fraction)

	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < barWidth; i++ {
		switch {
		case i < pos:
			b.WriteByte('=')
		case i == pos:
			b.WriteByte('>')
		default:
			b.WriteByte(' ')
		}
	}
	b.WriteByte(']')
	fmt.Fprintf(p.out, "%s %d %%\r", b.String(), int(fraction*100.0))
}
