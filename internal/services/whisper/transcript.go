package whisper

import (
	"fmt"
	"os"
	"strings"
)

// WriteTranscript writes the main transcript artifact: a two-line header
// with detected language and confidence, a blank line, then the text.
func WriteTranscript(path string, result Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "[Language: %s]\n", result.Language)
	fmt.Fprintf(&b, "[Confidence: %.1f%%]\n\n", result.Confidence*100)
	b.WriteString(strings.TrimSpace(result.Text))
	b.WriteString("\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// WriteSegments writes the timed-segment companion file, one line per
// segment in the form "[MM:SS --> MM:SS] text".
func WriteSegments(path string, segments []Segment) error {
	var b strings.Builder
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "[%s --> %s] %s\n", FormatTimestamp(seg.Start), FormatTimestamp(seg.End), text)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// FormatTimestamp renders seconds as MM:SS, switching to HH:MM:SS past
// one hour.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
