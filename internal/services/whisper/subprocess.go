package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"dashrec/internal/config"
)

// SubprocessEngine runs a local Python transcription script. The script
// writes its result as JSON to a path passed via --output-json.
type SubprocessEngine struct {
	cfg           config.Whisper
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewSubprocessEngine creates the subprocess engine from configuration.
func NewSubprocessEngine(cfg config.Whisper) *SubprocessEngine {
	return &SubprocessEngine{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *SubprocessEngine) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.commandRunner = runner
}

// Transcribe invokes the script against the source media file and parses
// the JSON it produces. The run is bounded by the configured timeout.
func (e *SubprocessEngine) Transcribe(ctx context.Context, sourcePath string) (Result, error) {
	var result Result
	if sourcePath == "" {
		return result, errors.New("transcribe: source path required")
	}
	if _, err := os.Stat(sourcePath); err != nil {
		return result, fmt.Errorf("transcribe: source: %w", err)
	}

	workDir, err := os.MkdirTemp("", "dashrec-whisper-")
	if err != nil {
		return result, fmt.Errorf("transcribe: workdir: %w", err)
	}
	defer os.RemoveAll(workDir)

	outputPath := filepath.Join(workDir, "result.json")
	args := e.buildArgs(sourcePath, outputPath)

	timeout := time.Duration(e.cfg.TimeoutSeconds) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	python := e.cfg.PythonBin
	if python == "" {
		python = "python3"
	}
	if err := e.run(runCtx, python, args...); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return result, fmt.Errorf("transcribe: timed out after %s", timeout)
		}
		return result, fmt.Errorf("transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return result, fmt.Errorf("transcribe: read result: %w", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("transcribe: parse result: %w", err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return result, errors.New("transcribe: empty transcript")
	}
	return result, nil
}

func (e *SubprocessEngine) buildArgs(sourcePath, outputPath string) []string {
	args := []string{e.cfg.ScriptPath, sourcePath, "--output-json", outputPath}
	if e.cfg.Model != "" {
		args = append(args, "--model", e.cfg.Model)
	}
	if e.cfg.Language != "" && e.cfg.Language != "auto" {
		args = append(args, "--language", e.cfg.Language)
	}
	return args
}

func (e *SubprocessEngine) run(ctx context.Context, name string, args ...string) error {
	if e.commandRunner != nil {
		return e.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
