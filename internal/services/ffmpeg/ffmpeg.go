// Package ffmpeg wraps MP4 conversion of captured recordings into a
// broadly compatible H.264/AAC container.
package ffmpeg

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

// Converter invokes ffmpeg for MP4 conversion.
type Converter struct {
	cfg           config.FFmpeg
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewConverter creates a Converter from configuration.
func NewConverter(cfg config.FFmpeg) *Converter {
	return &Converter{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Converter) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	c.commandRunner = runner
}

// Convert transcodes sourcePath into an MP4 at outputPath and returns the
// output path. A missing source is a declined conversion: ("", nil), so
// callers can log it without treating it as a step failure. An already
// present output short-circuits.
func (c *Converter) Convert(ctx context.Context, sourcePath, outputPath string) (string, error) {
	if sourcePath == "" || outputPath == "" {
		return "", errors.New("convert: source and output paths required")
	}
	if _, err := os.Stat(sourcePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("convert: source: %w", err)
	}
	if info, err := os.Stat(outputPath); err == nil && info.Size() > 0 {
		return outputPath, nil
	}

	timeout := time.Duration(c.cfg.TimeoutSeconds) * time.Second
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	binary := c.cfg.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	if err := c.run(runCtx, binary, c.buildArgs(sourcePath, outputPath)...); err != nil {
		// Leave no partial output behind.
		_ = os.Remove(outputPath)
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("convert: timed out after %s", timeout)
		}
		return "", fmt.Errorf("convert: %w", err)
	}

	if info, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("convert: output missing: %w", err)
	} else if info.Size() == 0 {
		_ = os.Remove(outputPath)
		return "", errors.New("convert: output is empty")
	}
	return outputPath, nil
}

func (c *Converter) buildArgs(sourcePath, outputPath string) []string {
	videoBitrate := c.cfg.VideoBitrate
	if videoBitrate == "" {
		videoBitrate = "2500k"
	}
	audioBitrate := c.cfg.AudioBitrate
	if audioBitrate == "" {
		audioBitrate = "192k"
	}
	preset := c.cfg.Preset
	if preset == "" {
		preset = "veryfast"
	}
	crf := c.cfg.CRF
	if crf <= 0 {
		crf = 23
	}
	return []string{
		"-y",
		"-i", sourcePath,
		"-c:v", "libx264",
		"-b:v", videoBitrate,
		"-preset", preset,
		"-crf", strconv.Itoa(crf),
		"-c:a", "aac",
		"-b:a", audioBitrate,
		"-ac", "2",
		"-ar", "44100",
		"-movflags", "+faststart",
		outputPath,
	}
}

func (c *Converter) run(ctx context.Context, name string, args ...string) error {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
