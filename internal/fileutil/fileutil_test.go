package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.webm")
	dst := filepath.Join(dir, "dst.webm")
	content := []byte("recording bytes")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("dst content = %q", got)
	}
}

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "missing"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error")
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	removed, err := RemoveIfExists(path)
	if err != nil {
		t.Fatalf("RemoveIfExists: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}

	removed, err = RemoveIfExists(path)
	if err != nil {
		t.Fatalf("RemoveIfExists second call: %v", err)
	}
	if removed {
		t.Fatal("second removal reported true")
	}

	if removed, err := RemoveIfExists(""); err != nil || removed {
		t.Fatalf("empty path: removed=%v err=%v", removed, err)
	}
}

func TestRemoveDirIfExists(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames")
	if err := os.MkdirAll(filepath.Join(frames, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(frames, "frame_01.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	removed, err := RemoveDirIfExists(frames)
	if err != nil {
		t.Fatalf("RemoveDirIfExists: %v", err)
	}
	if !removed {
		t.Fatal("expected removal")
	}
	if _, err := os.Stat(frames); !os.IsNotExist(err) {
		t.Fatal("directory still present")
	}

	removed, err = RemoveDirIfExists(frames)
	if err != nil || removed {
		t.Fatalf("second call: removed=%v err=%v", removed, err)
	}
}
