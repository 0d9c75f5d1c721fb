// Package fsop provides file system operations.
package fsop

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// walkSubdirectories 是内部通用实现，支持 ignorePatterns（可为 nil）。
// 不可读的目录会被跳过而非中止遍历。
func walkSubdirectories(root string, ignorePatterns []string) ([]string, error) {
	var subdirs []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() && path != root {
			if len(ignorePatterns) > 0 {
				rel, _ := filepath.Rel(root, path)
				for _, pat := range ignorePatterns {
					if strings.HasPrefix(rel, pat) || strings.HasSuffix(rel, pat) || strings.Contains(rel, pat) {
						return filepath.SkipDir
					}
				}
			}
			subdirs = append(subdirs, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return subdirs, nil
}

// ListAllSubdirectories lists all subdirectories in the given path, recursively.
// It does not include the root path itself in the returned list.
func ListAllSubdirectories(root string) ([]string, error) {
	return walkSubdirectories(root, nil)
}

// ListAllSubdirectoriesWithIgnore lists all subdirectories, skipping those matching ignorePatterns.
func ListAllSubdirectoriesWithIgnore(root string, ignorePatterns []string) ([]string, error) {
	return walkSubdirectories(root, ignorePatterns)
}
