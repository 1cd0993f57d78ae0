package api

import (
	"time"

	"dashrec/internal/pipeline"
	"dashrec/internal/store"
	"dashrec/internal/syncer"
)

// FromRecording converts a stored recording to its API representation.
func FromRecording(rec *store.Recording) Recording {
	if rec == nil {
		return Recording{}
	}
	dto := Recording{
		ID:       rec.ID,
		Filename: rec.Filename,
		Status:   string(rec.Status),
		Progress: fromProgress(rec.Progress),
		Error:    fromProcessingError(rec.Error),

		VideoPath:       rec.VideoPath,
		TranscriptPath:  rec.TranscriptPath,
		SegmentsPath:    rec.SegmentsPath,
		MP4Path:         rec.MP4Path,
		PDFPath:         rec.PDFPath,
		TranslationPath: rec.TranslationPath,

		Language:           rec.Language,
		LanguageConfidence: rec.LanguageConfidence,
		SegmentsCount:      rec.SegmentsCount,
		DurationSeconds:    rec.DurationSeconds,
		FileSizeBytes:      rec.FileSizeBytes,

		Translated:          rec.Translated,
		TranslationLanguage: rec.TranslationLanguage,

		Synced:      rec.Synced,
		SyncStatus:  string(rec.SyncStatus),
		SolarCoreID: rec.SolarCoreID,
	}
	dto.CreatedAt = formatTime(rec.CreatedAt)
	dto.UpdatedAt = formatTime(rec.UpdatedAt)
	if rec.SyncedAt != nil {
		dto.SyncedAt = formatTime(*rec.SyncedAt)
	}
	return dto
}

// FromStatusSnapshot converts a pipeline snapshot to its API representation.
func FromStatusSnapshot(id string, snapshot *pipeline.StatusSnapshot) *Status {
	if snapshot == nil {
		return nil
	}
	return &Status{
		ID:       id,
		Status:   string(snapshot.Status),
		Progress: fromProgress(snapshot.Progress),
		Message:  snapshot.Message,
		Error:    fromProcessingError(snapshot.Error),
	}
}

// FromSyncLogEntry converts a stored sync log entry to its API representation.
func FromSyncLogEntry(entry store.SyncLogEntry) SyncLogEntry {
	return SyncLogEntry{
		Status:      string(entry.Status),
		Message:     entry.Message,
		Error:       entry.Error,
		SolarCoreID: entry.SolarCoreID,
		Attempts:    entry.Attempts,
		CreatedAt:   formatTime(entry.CreatedAt),
	}
}

// FromScreenshot converts a stored screenshot to its API representation.
func FromScreenshot(shot store.Screenshot) Screenshot {
	return Screenshot{
		Filename:   shot.Filename,
		Timestamp:  shot.Timestamp,
		Path:       shot.Path,
		CapturedAt: formatTime(shot.CapturedAt),
		SizeBytes:  shot.SizeBytes,
	}
}

// FromSyncResult converts a sync outcome to its API representation.
func FromSyncResult(result syncer.Result) SyncOutcome {
	return SyncOutcome{
		Status:      string(result.Status),
		RecordingID: result.RecordingID,
		Timestamp:   formatTime(result.Timestamp),
		SolarCoreID: result.SolarCoreID,
		Message:     result.Message,
		Error:       result.Error,
	}
}

func fromProgress(progress store.Progress) Progress {
	return Progress{
		Step:       progress.Step,
		StepNumber: progress.StepNumber,
		TotalSteps: progress.TotalSteps,
		Message:    progress.Message,
	}
}

func fromProcessingError(procErr *store.ProcessingError) *Error {
	if procErr == nil {
		return nil
	}
	return &Error{
		Step:      procErr.Step,
		Message:   procErr.Message,
		Timestamp: formatTime(procErr.Timestamp),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
