// Package pdfgen wraps the external report generator script that renders
// a PDF summary from a recording's transcript and metadata.
package pdfgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"dashrec/internal/config"
)

// Metadata carries the recording attributes rendered into the document.
type Metadata struct {
	RecordingID     string
	Filename        string
	Language        string
	DurationSeconds float64
	CreatedAt       time.Time
}

// Generator invokes the report script.
type Generator struct {
	cfg           config.PDF
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewGenerator creates a Generator from configuration.
func NewGenerator(cfg config.PDF) *Generator {
	return &Generator{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (g *Generator) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	g.commandRunner = runner
}

// Generate renders the document from the transcript at transcriptPath to
// outputPath. The run is bounded by the configured timeout.
func (g *Generator) Generate(ctx context.Context, meta Metadata, transcriptPath, outputPath string) error {
	if transcriptPath == "" {
		return errors.New("pdfgen: transcript path required")
	}
	if outputPath == "" {
		return errors.New("pdfgen: output path required")
	}
	if _, err := os.Stat(transcriptPath); err != nil {
		return fmt.Errorf("pdfgen: transcript: %w", err)
	}

	args := []string{g.cfg.ScriptPath, transcriptPath, "--output", outputPath}
	if meta.RecordingID != "" {
		args = append(args, "--recording-id", meta.RecordingID)
	}
	if meta.Filename != "" {
		args = append(args, "--title", meta.Filename)
	}
	if meta.Language != "" {
		args = append(args, "--language", meta.Language)
	}
	if meta.DurationSeconds > 0 {
		args = append(args, "--duration", strconv.FormatFloat(meta.DurationSeconds, 'f', 1, 64))
	}
	if !meta.CreatedAt.IsZero() {
		args = append(args, "--recorded-at", meta.CreatedAt.UTC().Format(time.RFC3339))
	}

	timeout := time.Duration(g.cfg.TimeoutSeconds) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	python := g.cfg.PythonBin
	if python == "" {
		python = "python3"
	}
	if err := g.run(runCtx, python, args...); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("pdfgen: timed out after %s", timeout)
		}
		return fmt.Errorf("pdfgen: %w", err)
	}

	if info, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("pdfgen: output missing: %w", err)
	} else if info.Size() == 0 {
		return errors.New("pdfgen: output is empty")
	}
	return nil
}

func (g *Generator) run(ctx context.Context, name string, args ...string) error {
	if g.commandRunner != nil {
		return g.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
