package tabulate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yeisme/yieldcli/pkg/utils/fsop"
	"github.com/yeisme/yieldcli/pkg/utils/log"
)

// Watch 监视 root 下数据文件的变化，防抖后调用 run 重新统计
// 新建的子目录会被自动纳入监视；ctx 取消时返回
func Watch(ctx context.Context, root, ext string, debounce time.Duration, run func()) error {
	logger := log.GetLogger()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Close()
	}()

	if err := addRecursive(w, root); err != nil {
		return err
	}

	ext = strings.ToLower(ext)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// 新建目录纳入监视
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addRecursive(w, ev.Name); err != nil {
						logger.Warn().Str("dir", ev.Name).Err(err).Msg("failed to watch new directory")
					}
				}
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ext) {
				continue
			}
			logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("data file changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")

		case <-fire:
			timer = nil
			fire = nil
			run()
		}
	}
}

// addRecursive 把 dir 及其全部子目录加入监视
func addRecursive(w *fsnotify.Watcher, dir string) error {
	if err := w.Add(dir); err != nil {
		return err
	}
	subdirs, err := fsop.ListAllSubdirectories(dir)
	if err != nil {
		return err
	}
	for _, sub := range subdirs {
		if err := w.Add(sub); err != nil {
			return err
		}
	}
	return nil
}
