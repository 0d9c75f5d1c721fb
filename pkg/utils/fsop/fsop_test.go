package fsop

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListAllSubdirectories(t *testing.T) {
	root := t.TempDir()
	subdir1 := filepath.Join(root, "mc16a")
	subdir2 := filepath.Join(root, "mc16d")
	subsubdir := filepath.Join(subdir1, "nominal")

	if err := os.MkdirAll(subsubdir, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	if err := os.Mkdir(subdir2, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	subdirs, err := ListAllSubdirectories(root)
	if err != nil {
		t.Fatalf("ListAllSubdirectories returned an error: %v", err)
	}

	expected := []string{subdir1, subsubdir, subdir2}
	if !reflect.DeepEqual(subdirs, expected) {
		t.Errorf("Expected %v, got %v", expected, subdirs)
	}
}

func TestListAllSubdirectoriesWithIgnore(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "mc16a")
	skip := filepath.Join(root, "scratch")
	nested := filepath.Join(skip, "tmp")

	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	if err := os.Mkdir(keep, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	subdirs, err := ListAllSubdirectoriesWithIgnore(root, []string{"scratch"})
	if err != nil {
		t.Fatalf("ListAllSubdirectoriesWithIgnore returned an error: %v", err)
	}

	expected := []string{keep}
	if !reflect.DeepEqual(subdirs, expected) {
		t.Errorf("Expected %v, got %v", expected, subdirs)
	}
}

func TestListAllSubdirectories_Empty(t *testing.T) {
	root := t.TempDir()

	subdirs, err := ListAllSubdirectories(root)
	if err != nil {
		t.Fatalf("ListAllSubdirectories returned an error: %v", err)
	}
	if len(subdirs) != 0 {
		t.Errorf("Expected no subdirectories, got %v", subdirs)
	}
}
