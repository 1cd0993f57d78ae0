package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Artifact directory names under the data directory.
const (
	videoDirName      = "video"
	mp4DirName        = "mp4"
	transcriptDirName = "transcripts"
	pdfDirName        = "pdf"
	framesDirName     = "frames"
)

// ArtifactPaths holds the canonical file locations for one recording.
type ArtifactPaths struct {
	Video      string
	MP4        string
	Transcript string
	Segments   string
	PDF        string
	FramesDir  string
}

// RecordingPaths derives the canonical artifact locations for a recording ID.
func RecordingPaths(dataDir, id string) ArtifactPaths {
	return ArtifactPaths{
		Video:      filepath.Join(dataDir, videoDirName, id+".webm"),
		MP4:        filepath.Join(dataDir, mp4DirName, id+".mp4"),
		Transcript: filepath.Join(dataDir, transcriptDirName, id+".txt"),
		Segments:   filepath.Join(dataDir, transcriptDirName, id+"_segments.txt"),
		PDF:        filepath.Join(dataDir, pdfDirName, id+".pdf"),
		FramesDir:  filepath.Join(dataDir, framesDirName, id),
	}
}

// TranslationPath derives the translation output location for a target language.
func TranslationPath(dataDir, id, targetLanguage string) string {
	return filepath.Join(dataDir, transcriptDirName, fmt.Sprintf("%s_%s.txt", id, targetLanguage))
}

// EnsureArtifactDirs creates the per-kind artifact directories under dataDir.
func EnsureArtifactDirs(dataDir string) error {
	for _, name := range []string{videoDirName, mp4DirName, transcriptDirName, pdfDirName, framesDirName} {
		if err := os.MkdirAll(filepath.Join(dataDir, name), 0o755); err != nil {
			return fmt.Errorf("create artifact directory %q: %w", name, err)
		}
	}
	return nil
}
