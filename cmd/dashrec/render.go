package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"dashrec/internal/api"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// statusColor maps a processing status to its terminal color.
func statusColor(status string) string {
	switch status {
	case "complete":
		return ansiGreen
	case "error":
		return ansiRed
	default:
		return ansiYellow
	}
}

func colorized(value, color string, colorize bool) string {
	if !colorize || color == "" {
		return value
	}
	return color + value + ansiReset
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	total := int(seconds)
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatProgress(progress api.Progress) string {
	return fmt.Sprintf("%d/%d %s", progress.StepNumber, progress.TotalSteps, progress.Message)
}

func printRecordingDetail(out io.Writer, detail *api.RecordingDetail, colorize bool) {
	rec := detail.Recording

	fmt.Fprintf(out, "Recording %s\n", rec.ID)
	fmt.Fprintf(out, "  Filename:     %s\n", rec.Filename)
	fmt.Fprintf(out, "  Status:       %s\n", colorized(rec.Status, statusColor(rec.Status), colorize))
	fmt.Fprintf(out, "  Progress:     %s\n", formatProgress(rec.Progress))
	if rec.Error != nil {
		fmt.Fprintf(out, "  Error:        [%s] %s\n", rec.Error.Step, rec.Error.Message)
	}
	if rec.Language != "" {
		fmt.Fprintf(out, "  Language:     %s (%.1f%%)\n", rec.Language, rec.LanguageConfidence*100)
	}
	if rec.DurationSeconds > 0 {
		fmt.Fprintf(out, "  Duration:     %s\n", formatDuration(rec.DurationSeconds))
	}
	if rec.FileSizeBytes > 0 {
		fmt.Fprintf(out, "  Size:         %s\n", formatBytes(rec.FileSizeBytes))
	}
	if rec.Translated {
		fmt.Fprintf(out, "  Translated:   %s\n", rec.TranslationLanguage)
	}
	fmt.Fprintf(out, "  Sync status:  %s\n", rec.SyncStatus)
	if rec.SolarCoreID != "" {
		fmt.Fprintf(out, "  Solar Core:   %s\n", rec.SolarCoreID)
	}

	printArtifacts(out, rec)

	if len(detail.Screenshots) > 0 {
		fmt.Fprintf(out, "  Screenshots:  %d\n", len(detail.Screenshots))
		for _, shot := range detail.Screenshots {
			fmt.Fprintf(out, "    %8.1fs  %s\n", shot.Timestamp, shot.Filename)
		}
	}
	if len(detail.SyncLog) > 0 {
		fmt.Fprintln(out, "  Sync log:")
		for _, entry := range detail.SyncLog {
			line := entry.Message
			if line == "" {
				line = entry.Error
			}
			fmt.Fprintf(out, "    %s  %-7s %s\n", entry.CreatedAt, entry.Status, line)
		}
	}
}

func printArtifacts(out io.Writer, rec api.Recording) {
	artifacts := []struct {
		label string
		path  string
	}{
		{"video", rec.VideoPath},
		{"transcript", rec.TranscriptPath},
		{"segments", rec.SegmentsPath},
		{"pdf", rec.PDFPath},
		{"mp4", rec.MP4Path},
		{"translation", rec.TranslationPath},
	}
	lines := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		if strings.TrimSpace(artifact.path) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("    %-12s %s", artifact.label, artifact.path))
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(out, "  Artifacts:")
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
