package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"dashrec/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Data directory", dir)
	if !result.Passed {
		t.Fatalf("check failed: %+v", result)
	}

	result = CheckDirectoryAccess("Data directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatalf("check passed for missing dir: %+v", result)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	result = CheckDirectoryAccess("Data directory", file)
	if result.Passed {
		t.Fatalf("check passed for regular file: %+v", result)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	result := CheckFreeSpace(t.TempDir(), 0)
	if !result.Passed {
		t.Fatalf("check failed: %+v", result)
	}
	// No filesystem has this much room.
	result = CheckFreeSpace(t.TempDir(), 1<<30)
	if result.Passed {
		t.Fatalf("check passed for absurd minimum: %+v", result)
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "transcribe.py")
	if err := os.WriteFile(script, []byte("#"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if result := CheckFile("Whisper script", script); !result.Passed {
		t.Fatalf("check failed: %+v", result)
	}
	if result := CheckFile("Whisper script", filepath.Join(dir, "missing.py")); result.Passed {
		t.Fatalf("check passed for missing file: %+v", result)
	}
	if result := CheckFile("Whisper script", dir); result.Passed {
		t.Fatalf("check passed for directory: %+v", result)
	}
}

func TestCheckBinary(t *testing.T) {
	// sh is present on any platform these tests run on.
	if result := CheckBinary("Shell", "sh"); !result.Passed {
		t.Fatalf("check failed: %+v", result)
	}
	if result := CheckBinary("Nope", "definitely-not-a-real-binary"); result.Passed {
		t.Fatalf("check passed: %+v", result)
	}
}

func TestCheckSolarCore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result := CheckSolarCore(context.Background(), config.SolarCore{URL: server.URL})
	if !result.Passed {
		t.Fatalf("check failed: %+v", result)
	}

	result = CheckSolarCore(context.Background(), config.SolarCore{URL: "http://127.0.0.1:1"})
	if result.Passed {
		t.Fatalf("check passed for unreachable endpoint: %+v", result)
	}
}

func TestRunAll(t *testing.T) {
	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.DataDir = base
	cfg.Paths.LogDir = base
	cfg.Whisper.Mode = config.WhisperModeRemote
	cfg.Whisper.APIKey = "k"
	cfg.PDF.ScriptPath = ""
	cfg.SolarCore.URL = ""
	cfg.Workflow.MinFreeSpaceGiB = 0
	cfg.FFmpeg.Binary = "sh" // stand-in binary that resolves on PATH

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("got %d results: %+v", len(results), results)
	}
	if !AllPassed(results) {
		t.Fatalf("checks failed: %+v", results)
	}
}
