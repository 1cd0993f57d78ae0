package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecordingPaths(t *testing.T) {
	paths := RecordingPaths("/data", "20260115_093000")
	want := ArtifactPaths{
		Video:      "/data/video/20260115_093000.webm",
		MP4:        "/data/mp4/20260115_093000.mp4",
		Transcript: "/data/transcripts/20260115_093000.txt",
		Segments:   "/data/transcripts/20260115_093000_segments.txt",
		PDF:        "/data/pdf/20260115_093000.pdf",
		FramesDir:  "/data/frames/20260115_093000",
	}
	if paths != want {
		t.Fatalf("paths = %+v, want %+v", paths, want)
	}
}

func TestTranslationPath(t *testing.T) {
	got := TranslationPath("/data", "20260115_093000", "ru")
	if got != "/data/transcripts/20260115_093000_ru.txt" {
		t.Fatalf("path = %q", got)
	}
}

func TestEnsureArtifactDirs(t *testing.T) {
	base := t.TempDir()
	if err := EnsureArtifactDirs(base); err != nil {
		t.Fatalf("EnsureArtifactDirs: %v", err)
	}
	for _, dir := range []string{"video", "mp4", "transcripts", "pdf", "frames"} {
		info, err := os.Stat(filepath.Join(base, dir))
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}
