package tabulate

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadFileList(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "file_list.txt")
	content := "/data/sigA.root\n\n# a comment\n/data/sub/sigB.root\n"
	if err := os.WriteFile(list, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ReadFileList(list)
	if err != nil {
		t.Fatalf("ReadFileList: %v", err)
	}
	want := []string{"/data/sigA.root", "/data/sub/sigB.root"}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestReadFileList_Missing(t *testing.T) {
	if _, err := ReadFileList(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing list")
	}
}

func TestExtractRootNames(t *testing.T) {
	input := `Processing sigA.root and ttbar_nominal.root
some noise, then data18.root; duplicate sigA.root`
	names, err := ExtractRootNames(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ExtractRootNames: %v", err)
	}
	want := []string{"sigA.root", "ttbar_nominal.root", "data18.root", "sigA.root"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}
