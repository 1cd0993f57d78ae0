package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dashrec/internal/config"
)

func testConverter() *Converter {
	return NewConverter(config.FFmpeg{TimeoutSeconds: 60})
}

func TestConvertBuildsExpectedArgs(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "in.webm")
	output := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(source, []byte("fake"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	conv := testConverter()
	var gotArgs []string
	conv.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		return os.WriteFile(output, []byte("mp4 data"), 0o644)
	})

	path, err := conv.Convert(context.Background(), source, output)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if path != output {
		t.Fatalf("path = %q", path)
	}

	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{
		"ffmpeg", "-c:v libx264", "-b:v 2500k", "-preset veryfast", "-crf 23",
		"-c:a aac", "-b:a 192k", "-ac 2", "-ar 44100", "-movflags +faststart",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestConvertDeclinesMissingSource(t *testing.T) {
	conv := testConverter()
	conv.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("runner should not be called")
		return nil
	})
	path, err := conv.Convert(context.Background(), filepath.Join(t.TempDir(), "missing.webm"), "out.mp4")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if path != "" {
		t.Fatalf("expected declined conversion, got %q", path)
	}
}

func TestConvertShortCircuitsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "in.webm")
	output := filepath.Join(dir, "out.mp4")
	for _, path := range []string{source, output} {
		if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	conv := testConverter()
	conv.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("runner should not be called for existing output")
		return nil
	})
	path, err := conv.Convert(context.Background(), source, output)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if path != output {
		t.Fatalf("path = %q", path)
	}
}

func TestConvertCleansUpOnFailure(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "in.webm")
	output := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(source, []byte("data"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	conv := testConverter()
	conv.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		_ = os.WriteFile(output, []byte("partial"), 0o644)
		return errors.New("encoder exploded")
	})
	if _, err := conv.Convert(context.Background(), source, output); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("partial output not removed")
	}
}
