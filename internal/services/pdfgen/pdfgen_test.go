package pdfgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dashrec/internal/config"
)

func TestGenerateRunsScript(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "transcript.txt")
	output := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(transcript, []byte("[Language: en]\n\nhello"), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	gen := NewGenerator(config.PDF{
		ScriptPath:     "/opt/dashrec/report.py",
		TimeoutSeconds: 30,
	})

	var gotArgs []string
	gen.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		return os.WriteFile(output, []byte("%PDF-1.4"), 0o644)
	})

	meta := Metadata{
		RecordingID: "20260115_093000",
		Filename:    "lecture.webm",
		Language:    "en",
		CreatedAt:   time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
	}
	if err := gen.Generate(context.Background(), meta, transcript, output); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gotArgs[0] != "python3" || gotArgs[1] != "/opt/dashrec/report.py" {
		t.Fatalf("args = %v", gotArgs)
	}
	if gotArgs[2] != transcript {
		t.Fatalf("transcript arg = %q", gotArgs[2])
	}
}

func TestGenerateFailsWhenOutputMissing(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "transcript.txt")
	if err := os.WriteFile(transcript, []byte("text"), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	gen := NewGenerator(config.PDF{ScriptPath: "x.py", TimeoutSeconds: 30})
	gen.WithCommandRunner(func(context.Context, string, ...string) error {
		return nil // script "succeeds" without producing output
	})
	if err := gen.Generate(context.Background(), Metadata{}, transcript, filepath.Join(dir, "missing.pdf")); err == nil {
		t.Fatal("expected error for missing output")
	}
}

func TestGenerateRequiresTranscript(t *testing.T) {
	gen := NewGenerator(config.PDF{ScriptPath: "x.py", TimeoutSeconds: 30})
	gen.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("runner should not be called")
		return nil
	})
	if err := gen.Generate(context.Background(), Metadata{}, filepath.Join(t.TempDir(), "nope.txt"), "out.pdf"); err == nil {
		t.Fatal("expected error for missing transcript")
	}
}
