package tabulate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// ReadFileList 读取文件列表，每行一个路径
// 空行与 # 开头的注释行被跳过
func ReadFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file list: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var files []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read file list: %w", err)
	}
	return files, nil
}

// rootNameRE 匹配形如 xxx.root 的文件名
var rootNameRE = regexp.MustCompile(`\w+\.root`)

// ExtractRootNames 从任意文本中提取 ROOT 文件名，保持出现顺序
func ExtractRootNames(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("extract root names: %w", err)
	}
	return rootNameRE.FindAllString(string(data), -1), nil
}
