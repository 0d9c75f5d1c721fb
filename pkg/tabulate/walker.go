// Package tabulate 实现数据文件树的递归统计：
// 遍历目录、逐文件读取产额并按样本累加，最后写出产额报告
package tabulate

import (
	"os"
	"path/filepath"
	"strings"
)

// Predicate 判断一个文件名是否属于待统计的数据文件
type Predicate func(name string) bool

// ExtPredicate 构造按扩展名匹配的判断函数（大小写不敏感）
func ExtPredicate(ext string) Predicate {
	ext = strings.ToLower(ext)
	return func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), ext)
	}
}

// WalkFuncs 遍历过程中的回调集合
// Dir 在进入每个目录时调用一次；File 对每个命中的数据文件调用；
// 二者返回 error 时遍历立即中止并把该错误向上返回
// DirError 在目录不可读时调用，该子树贡献零个文件，遍历继续
type WalkFuncs struct {
	Dir      func(path string) error
	File     func(path string) error
	DirError func(path string, err error)
}

// Walk 从 root 开始深度优先遍历
// 每个目录内先处理直接子文件（保持报告分节的连续性），再递归子目录；
// 目录项按文件名排序，遍历顺序因此是确定的
// exclude 中的 glob 模式按相对路径匹配，命中的子树被整体跳过
func Walk(root string, pred Predicate, exclude []string, fns WalkFuncs) error {
	return walk(root, root, pred, exclude, fns)
}

func walk(root, dir string, pred Predicate, exclude []string, fns WalkFuncs) error {
	if fns.Dir != nil {
		if err := fns.Dir(dir); err != nil {
			return err
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if fns.DirError != nil {
			fns.DirError(dir, err)
		}
		return nil
	}

	// 先处理本目录下的数据文件
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !pred(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if excluded(root, path, exclude) {
			continue
		}
		if fns.File != nil {
			if err := fns.File(path); err != nil {
				return err
			}
		}
	}

	// 再递归子目录；符号链接目录不跟随
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if excluded(root, path, exclude) {
			continue
		}
		if err := walk(root, path, pred, exclude, fns); err != nil {
			return err
		}
	}
	return nil
}

// CountFiles 预先统计 root 下命中的数据文件总数，用于进度条定标
// 必须与 Walk 使用完全相同的匹配规则，否则进度百分比会失真
func CountFiles(root string, pred Predicate, exclude []string) int {
	count := 0
	_ = Walk(root, pred, exclude, WalkFuncs{
		File: func(string) error {
			count++
			return nil
		},
	})
	return count
}

// excluded 检查相对路径是否命中任一排除模式
// 同时支持 glob 匹配与子串包含，与 include/exclude 的常见习惯一致
func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
		if strings.Contains(rel, p) {
			return true
		}
	}
	return false
}
