package tabulate

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExtPredicate(t *testing.T) {
	pred := ExtPredicate(".root")
	if !pred("sigA.root") || !pred("sigA.ROOT") {
		t.Fatal("expected .root files to match")
	}
	if pred("sigA.txt") || pred("root") {
		t.Fatal("expected non-.root files to not match")
	}
}

func TestWalk_VisitsEachFileOnce(t *testing.T) {
	dir := t.TempDir()
	want := []string{
		writeFile(t, dir, "a.root"),
		writeFile(t, dir, "b.root"),
		writeFile(t, dir, "sub/c.root"),
		writeFile(t, dir, "sub/deep/d.root"),
	}
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, "sub/readme.md")

	var got []string
	err := Walk(dir, ExtPredicate(".root"), nil, WalkFuncs{
		File: func(path string) error {
			got = append(got, path)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	sort.Strings(got)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
}

func TestWalk_FilesBeforeSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "aaa/nested.root")
	writeFile(t, dir, "zzz.root")

	var order []string
	err := Walk(dir, ExtPredicate(".root"), nil, WalkFuncs{
		Dir: func(path string) error {
			order = append(order, "dir:"+filepath.Base(path))
			return nil
		},
		File: func(path string) error {
			order = append(order, "file:"+filepath.Base(path))
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	// 本目录的文件行先于子目录分节
	want := []string{"dir:" + filepath.Base(dir), "file:zzz.root", "dir:aaa", "file:nested.root"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestCountFiles_MatchesWalk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.root")
	writeFile(t, dir, "sub/b.root")
	writeFile(t, dir, "sub/skip.txt")

	pred := ExtPredicate(".root")
	count := CountFiles(dir, pred, nil)

	visited := 0
	_ = Walk(dir, pred, nil, WalkFuncs{
		File: func(string) error {
			visited++
			return nil
		},
	})
	if count != visited {
		t.Fatalf("CountFiles = %d, Walk visited %d; the two must agree", count, visited)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestWalk_Exclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.root")
	writeFile(t, dir, "old/drop.root")

	pred := ExtPredicate(".root")
	var got []string
	_ = Walk(dir, pred, []string{"old"}, WalkFuncs{
		File: func(path string) error {
			got = append(got, filepath.Base(path))
			return nil
		},
	})
	if !reflect.DeepEqual(got, []string{"keep.root"}) {
		t.Fatalf("visited %v, want [keep.root]", got)
	}
	if n := CountFiles(dir, pred, []string{"old"}); n != 1 {
		t.Fatalf("CountFiles with exclude = %d, want 1", n)
	}
}

func TestWalk_UnreadableSubdirIsIsolated(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are ignored when running as root")
	}
	dir := t.TempDir()
	writeFile(t, dir, "ok.root")
	locked := filepath.Join(dir, "locked")
	writeFile(t, dir, "locked/hidden.root")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(locked, 0o755)
	})

	var files []string
	var failed []string
	err := Walk(dir, ExtPredicate(".root"), nil, WalkFuncs{
		File: func(path string) error {
			files = append(files, filepath.Base(path))
			return nil
		},
		DirError: func(path string, err error) {
			failed = append(failed, filepath.Base(path))
		},
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"ok.root"}) {
		t.Fatalf("files = %v, want [ok.root]", files)
	}
	if !reflect.DeepEqual(failed, []string{"locked"}) {
		t.Fatalf("failed dirs = %v, want [locked]", failed)
	}
}
