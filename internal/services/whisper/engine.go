package whisper

import (
	"context"
	"fmt"

	"dashrec/internal/config"
)

// Segment is one timed span of transcribed speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the outcome of a transcription run.
type Result struct {
	Text            string    `json:"text"`
	Language        string    `json:"language"`
	Confidence      float64   `json:"language_probability"`
	Segments        []Segment `json:"segments"`
	DurationSeconds float64   `json:"duration"`
}

// Engine converts a media file into text with language detection and
// per-segment timing.
type Engine interface {
	Transcribe(ctx context.Context, sourcePath string) (Result, error)
}

// NewEngine selects the transcription engine from configuration.
func NewEngine(cfg config.Whisper) (Engine, error) {
	switch cfg.Mode {
	case config.WhisperModeSubprocess:
		return NewSubprocessEngine(cfg), nil
	case config.WhisperModeRemote:
		return NewRemoteEngine(cfg), nil
	default:
		return nil, fmt.Errorf("unknown whisper mode %q", cfg.Mode)
	}
}
