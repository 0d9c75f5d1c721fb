package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PrintHeading 打印一个区块标题
func PrintHeading(w io.Writer, title string) error {
	style := lipgloss.NewStyle().
		Foreground(ColorAccentText).
		Background(ColorAccentPrimary).
		Bold(true).
		Padding(0, 1)
	_, err := fmt.Fprintln(w, style.Render(strings.ToUpper(title)))
	return err
}

// PrintKeyValues 以对齐的方式打印键值对列表，键名着色
func PrintKeyValues(w io.Writer, pairs [][2]string) error {
	if len(pairs) == 0 {
		return nil
	}
	// 计算最大键名长度用于对齐
	maxKey := 0
	for _, p := range pairs {
		if l := len(p[0]); l > maxKey {
			maxKey = l
		}
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorAccentPrimary).Bold(true)
	valStyle := lipgloss.NewStyle().Foreground(ColorText)

	for _, p := range pairs {
		padding := strings.Repeat(" ", maxKey-len(p[0]))
		line := fmt.Sprintf("  %s%s  %s", keyStyle.Render(p[0]), padding, valStyle.Render(p[1]))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
