package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiskStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	name := "123-abc.png"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := store.Remove("/uploads/" + name); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected the file to be gone")
	}
}

func TestDiskStore_Remove_IgnoresForeignPaths(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if err := store.Remove("https://cdn.example.com/img.png"); err != nil {
		t.Errorf("expected foreign paths to be ignored, got %v", err)
	}
	if err := store.Remove("/uploads/never-existed.png"); err != nil {
		t.Errorf("expected missing files to be ignored, got %v", err)
	}
}
