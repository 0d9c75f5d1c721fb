package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// PrintJSON 将任意值以美化（缩进）并带有简洁高亮的方式输出到 writer
//
// 入参支持:
//   - string / []byte: 视为原始 JSON 文本；会尝试校验并缩进
//   - 其他任意 Go 值: 使用 [json.MarshalIndent] 编码后再渲染
func PrintJSON(w io.Writer, v any) error {
	pretty, err := FormatJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, colorizeJSON(pretty))
	return err
}

// FormatJSON 返回美化（缩进）的 JSON 字符串
// 参见 PrintJSON 的入参规则
func FormatJSON(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null\n", nil
	case string:
		return indentJSON([]byte(x))
	case []byte:
		return indentJSON(x)
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		if len(b) == 0 || b[len(b)-1] != '\n' {
			b = append(b, '\n')
		}
		return string(b), nil
	}
}

// indentJSON 校验并缩进原始 JSON 字节
func indentJSON(src []byte) (string, error) {
	src = bytes.TrimSpace(src)
	if len(src) == 0 {
		return "null\n", nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, src, "", "  "); err != nil {
		return "", err
	}
	if out.Len() == 0 || out.Bytes()[out.Len()-1] != '\n' {
		_ = out.WriteByte('\n')
	}
	return out.String(), nil
}

// colorizeJSON 对已经缩进好的 JSON 文本进行轻量高亮
// 只对 JSON 语义 token 着色；缩进与空白保持原样
func colorizeJSON(s string) string {
	keyStyle := lipgloss.NewStyle().Foreground(ColorJSONKey).Bold(true)
	strStyle := lipgloss.NewStyle().Foreground(ColorJSONValue)
	numStyle := lipgloss.NewStyle().Foreground(ColorJSONNumber)
	boolStyle := lipgloss.NewStyle().Foreground(ColorJSONBool)
	nullStyle := lipgloss.NewStyle().Foreground(ColorJSONNull)
	punctStyle := lipgloss.NewStyle().Foreground(ColorJSONPunct)

	var b bytes.Buffer
	i := 0
	for i < len(s) {
		ch := s[i]
		switch {
		case ch == '"':
			// 读取完整字符串 token（含结束引号），再判断其是否为键名
			j := i + 1
			for j < len(s) {
				if s[j] == '\\' {
					j += 2
					continue
				}
				if s[j] == '"' {
					break
				}
				j++
			}
			if j >= len(s) {
				b.WriteString(s[i:])
				return b.String()
			}
			token := s[i : j+1]
			// 向后寻找第一个非空白字符，是 ':' 则为键名
			k := j + 1
			for k < len(s) && unicode.IsSpace(rune(s[k])) {
				k++
			}
			if k < len(s) && s[k] == ':' {
				b.WriteString(keyStyle.Render(token))
			} else {
				b.WriteString(strStyle.Render(token))
			}
			i = j + 1
		case ch == '{' || ch == '}' || ch == '[' || ch == ']' || ch == ',' || ch == ':':
			b.WriteString(punctStyle.Render(string(ch)))
			i++
		case ch == '-' || (ch >= '0' && ch <= '9'):
			j := i
			for j < len(s) && (s[j] == '-' || s[j] == '+' || s[j] == '.' ||
				s[j] == 'e' || s[j] == 'E' || (s[j] >= '0' && s[j] <= '9')) {
				j++
			}
			b.WriteString(numStyle.Render(s[i:j]))
			i = j
		case hasPrefixAt(s, i, "true"):
			b.WriteString(boolStyle.Render("true"))
			i += 4
		case hasPrefixAt(s, i, "false"):
			b.WriteString(boolStyle.Render("false"))
			i += 5
		case hasPrefixAt(s, i, "null"):
			b.WriteString(nullStyle.Render("null"))
			i += 4
		default:
			b.WriteByte(ch)
			i++
		}
	}
	return b.String()
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return i+len(prefix) <= len(s) && s[i:i+len(prefix)] == prefix
}
