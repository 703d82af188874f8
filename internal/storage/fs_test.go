package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestCreateAndRead(t *testing.T) {
	s := tempVault(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Create("note.md", content); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
	if !s.Exists("note.md") {
		t.Error("Exists should be true after Create")
	}
}

func TestCreate_ExistingFails(t *testing.T) {
	s := tempVault(t)
	if err := s.Create("note.md", []byte("a")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := s.Create("note.md", []byte("b"))
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestModify(t *testing.T) {
	s := tempVault(t)
	if err := s.Modify("missing.md", []byte("x")); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("modify missing: err = %v, want ErrNotFound", err)
	}
	if err := s.Create("note.md", []byte("old")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Modify("note.md", []byte("new")); err != nil {
		t.Fatalf("Modify: %v", err)
	}
	got, _ := s.Read("note.md")
	if string(got) != "new" {
		t.Errorf("content = %q", got)
	}
}

func TestRead_Missing(t *testing.T) {
	s := tempVault(t)
	if _, err := s.Read("nope.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateFolder(t *testing.T) {
	s := tempVault(t)
	if err := s.CreateFolder("papers/2020"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if err := s.Create("papers/2020/note.md", []byte("deep")); err != nil {
		t.Fatalf("Create in folder: %v", err)
	}
	info, err := os.Stat(filepath.Join(s.root, "papers/2020"))
	if err != nil || !info.IsDir() {
		t.Errorf("folder not created: %v", err)
	}
}

func TestSafePath_RejectsTraversal(t *testing.T) {
	s := tempVault(t)
	if _, err := s.safePath("../escape.md"); err == nil {
		t.Error("expected traversal rejection")
	}
	if _, err := s.safePath("/abs/path.md"); err == nil {
		t.Error("expected absolute path rejection")
	}
}
