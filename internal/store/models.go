package store

import (
	"strings"
	"time"
)

// Status represents the processing lifecycle of a recording.
type Status string

const (
	StatusUploaded      Status = "uploaded"
	StatusTranscribing  Status = "transcribing"
	StatusTranscribed   Status = "transcribed"
	StatusConvertingMP4 Status = "converting_mp4"
	StatusComplete      Status = "complete"
	StatusError         Status = "error"
)

// TotalSteps is the fixed number of pipeline steps reported in progress.
const TotalSteps = 4

// Step names recorded in progress and error fields.
const (
	StepUploaded      = "uploaded"
	StepTranscribe    = "transcribe"
	StepPDFGeneration = "pdf_generation"
	StepMP4Conversion = "mp4_conversion"
	StepComplete      = "complete"
	StepUnknown       = "unknown"
)

var allStatuses = []Status{
	StatusUploaded,
	StatusTranscribing,
	StatusTranscribed,
	StatusConvertingMP4,
	StatusComplete,
	StatusError,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a status ends a pipeline run. Both terminal
// statuses are re-enterable via an explicit retry.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusError
}

// SyncStatus tracks delivery state against the external system of record.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSyncing SyncStatus = "syncing"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// Progress captures the step a recording is at within the fixed pipeline.
type Progress struct {
	Step       string
	StepNumber int
	TotalSteps int
	Message    string
}

// ProcessingError records the most recent unrecovered step failure.
type ProcessingError struct {
	Step      string
	Message   string
	Timestamp time.Time
}

// Screenshot is one captured still frame, appended during an active
// recording session.
type Screenshot struct {
	Filename   string
	Timestamp  float64
	Path       string
	CapturedAt time.Time
	SizeBytes  int64
}

// SyncLogEntry is one terminal sync outcome in the append-only log.
type SyncLogEntry struct {
	Status      SyncStatus
	Message     string
	Error       string
	SolarCoreID string
	Attempts    int
	CreatedAt   time.Time
}

// Recording is the durable per-recording record persisted in SQLite.
type Recording struct {
	ID        string
	Filename  string
	CreatedAt time.Time
	UpdatedAt time.Time

	VideoPath       string
	TranscriptPath  string
	SegmentsPath    string
	MP4Path         string
	PDFPath         string
	TranslationPath string

	Status   Status
	Progress Progress
	Error    *ProcessingError

	Language           string
	LanguageConfidence float64
	SegmentsCount      int
	DurationSeconds    float64
	FileSizeBytes      int64

	Translated          bool
	TranslationLanguage string

	Synced      bool
	SyncStatus  SyncStatus
	SolarCoreID string
	SyncedAt    *time.Time
}

// NewID derives a recording identifier from the creation timestamp.
func NewID(now time.Time) string {
	return now.UTC().Format("20060102_150405")
}

// SetProgress updates status and progress together so the two stay
// consistent with the state machine.
func (r *Recording) SetProgress(status Status, step string, stepNumber int, message string) {
	r.Status = status
	r.Progress = Progress{
		Step:       step,
		StepNumber: stepNumber,
		TotalSteps: TotalSteps,
		Message:    message,
	}
}

// RecordError moves the recording into the error state with the failing
// step attributed.
func (r *Recording) RecordError(step, message string, now time.Time) {
	r.Status = StatusError
	r.Error = &ProcessingError{
		Step:      step,
		Message:   message,
		Timestamp: now.UTC(),
	}
}

// RecordStepError attributes a tolerated step failure without leaving the
// pipeline: the error field is populated but status is left to the caller.
func (r *Recording) RecordStepError(step, message string, now time.Time) {
	r.Error = &ProcessingError{
		Step:      step,
		Message:   message,
		Timestamp: now.UTC(),
	}
}

// ResetForRetry returns the recording to the initial state so a new
// pipeline run can begin. The error is cleared optimistically, before the
// retried run has produced a new one.
func (r *Recording) ResetForRetry() {
	r.Status = StatusUploaded
	r.Error = nil
	r.Progress = Progress{
		Step:       StepUploaded,
		StepNumber: 1,
		TotalSteps: TotalSteps,
		Message:    "Retrying processing",
	}
}
