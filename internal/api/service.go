package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dashrec/internal/config"
	"dashrec/internal/fileutil"
	"dashrec/internal/logging"
	"dashrec/internal/pipeline"
	"dashrec/internal/services"
	"dashrec/internal/store"
	"dashrec/internal/syncer"
	"dashrec/internal/translate"
)

// Service is the operations facade over the store, pipeline runner,
// syncer, and translator. One instance serves all recordings.
type Service struct {
	store      *store.Store
	cfg        *config.Config
	pipeline   *pipeline.Pipeline
	runner     *pipeline.Runner
	syncer     *syncer.Syncer
	translator *translate.Translator
	logger     *slog.Logger
}

// New wires the facade. Any nil collaborator disables its operations;
// the store and config are required.
func New(st *store.Store, cfg *config.Config, pipe *pipeline.Pipeline, runner *pipeline.Runner, sync *syncer.Syncer, translator *translate.Translator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		store:      st,
		cfg:        cfg,
		pipeline:   pipe,
		runner:     runner,
		syncer:     sync,
		translator: translator,
		logger:     logging.NewComponentLogger(logger, "api"),
	}
}

// RegisterUpload copies the source video into managed storage, creates
// the recording record, and starts background processing. The returned
// view reflects the freshly created record, not any processing that may
// already have begun.
func (s *Service) RegisterUpload(ctx context.Context, sourcePath, filename string) (Recording, error) {
	sourcePath = strings.TrimSpace(sourcePath)
	if sourcePath == "" {
		return Recording{}, fmt.Errorf("source path is required")
	}
	info, err := os.Stat(sourcePath)
	if err != nil {
		return Recording{}, services.Wrap(services.ErrNotFound, "upload", "register upload", "source video not found", err)
	}
	if info.IsDir() {
		return Recording{}, fmt.Errorf("source path %q is a directory", sourcePath)
	}
	if strings.TrimSpace(filename) == "" {
		filename = filepath.Base(sourcePath)
	}

	id := store.NewID(time.Now())
	paths := store.RecordingPaths(s.cfg.Paths.DataDir, id)
	if err := fileutil.CopyFileVerified(sourcePath, paths.Video); err != nil {
		return Recording{}, services.Wrap(services.ErrTransient, "upload", "register upload", "copy video into storage", err)
	}

	rec, err := s.store.NewRecording(ctx, id, filename, paths.Video, info.Size())
	if err != nil {
		if _, removeErr := fileutil.RemoveIfExists(paths.Video); removeErr != nil {
			s.logger.Warn("failed to remove orphaned video", logging.String(logging.FieldRecordingID, id), logging.Error(removeErr))
		}
		return Recording{}, err
	}

	if s.runner != nil {
		s.runner.Trigger(id)
	}
	s.logger.Info("upload registered",
		logging.String(logging.FieldRecordingID, id),
		logging.String("filename", filename),
		logging.Int64("size_bytes", info.Size()))
	return FromRecording(rec), nil
}

// Status returns the poll view of a recording, or nil when it does not exist.
func (s *Service) Status(ctx context.Context, id string) (*Status, error) {
	snapshot, err := s.pipeline.GetStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromStatusSnapshot(id, snapshot), nil
}

// List returns all recordings, newest first.
func (s *Service) List(ctx context.Context) ([]Recording, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]Recording, 0, len(records))
	for _, rec := range records {
		views = append(views, FromRecording(rec))
	}
	return views, nil
}

// Show returns a recording together with its sync history and screenshots,
// or nil when the recording does not exist.
func (s *Service) Show(ctx context.Context, id string) (*RecordingDetail, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	entries, err := s.store.SyncLog(ctx, id)
	if err != nil {
		return nil, err
	}
	shots, err := s.store.Screenshots(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &RecordingDetail{
		Recording:   FromRecording(rec),
		SyncLog:     make([]SyncLogEntry, 0, len(entries)),
		Screenshots: make([]Screenshot, 0, len(shots)),
	}
	for _, entry := range entries {
		detail.SyncLog = append(detail.SyncLog, FromSyncLogEntry(entry))
	}
	for _, shot := range shots {
		detail.Screenshots = append(detail.Screenshots, FromScreenshot(shot))
	}
	return detail, nil
}

// Retry resets an errored recording and starts a fresh pipeline run. It
// reports false when the recording does not exist.
func (s *Service) Retry(ctx context.Context, id string) (bool, error) {
	return s.runner.Retry(ctx, id)
}

// Sync delivers a recording to Solar Core and returns the terminal outcome.
func (s *Service) Sync(ctx context.Context, id, recipient string) (SyncOutcome, error) {
	result, err := s.syncer.Sync(ctx, id, recipient)
	if err != nil {
		return SyncOutcome{}, err
	}
	return FromSyncResult(result), nil
}

// Translate converts a recording's transcript into the target language.
func (s *Service) Translate(ctx context.Context, id, targetLanguage string) (TranslationOutcome, error) {
	result, err := s.translator.Translate(ctx, id, targetLanguage)
	if err != nil {
		return TranslationOutcome{}, err
	}
	return TranslationOutcome{
		TranslationPath: result.TranslationPath,
		SourceLanguage:  result.SourceLanguage,
		TargetLanguage:  result.TargetLanguage,
	}, nil
}

// AddScreenshot stores a captured frame under the recording's frames
// directory and records it. The timestamp is the offset in seconds from
// the start of the recording.
func (s *Service) AddScreenshot(ctx context.Context, id, filename string, tsOffset float64, data []byte) (Screenshot, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return Screenshot{}, fmt.Errorf("screenshot filename is required")
	}
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Screenshot{}, err
	}
	if rec == nil {
		return Screenshot{}, services.Wrap(services.ErrNotFound, "screenshot", "add screenshot", "recording not found", nil)
	}

	framesDir := store.RecordingPaths(s.cfg.Paths.DataDir, id).FramesDir
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return Screenshot{}, fmt.Errorf("create frames directory: %w", err)
	}
	path := filepath.Join(framesDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Screenshot{}, fmt.Errorf("write screenshot: %w", err)
	}

	shot := store.Screenshot{
		Filename:   filename,
		Timestamp:  tsOffset,
		Path:       path,
		CapturedAt: time.Now().UTC(),
		SizeBytes:  int64(len(data)),
	}
	if err := s.store.AddScreenshot(ctx, id, shot); err != nil {
		return Screenshot{}, err
	}
	s.logger.Info("screenshot captured",
		logging.String(logging.FieldRecordingID, id),
		logging.String("filename", filename),
		logging.Float64("ts_offset", tsOffset))
	return FromScreenshot(shot), nil
}

// Delete removes a recording's artifacts and its record. Artifact removal
// is best effort: a file that cannot be deleted is logged and skipped so
// the record itself still goes away. It reports false when the recording
// does not exist.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}
	log := s.logger.With(logging.String(logging.FieldRecordingID, id))

	paths := store.RecordingPaths(s.cfg.Paths.DataDir, id)
	targets := []string{
		rec.VideoPath,
		rec.TranscriptPath,
		rec.SegmentsPath,
		rec.PDFPath,
		rec.MP4Path,
		rec.TranslationPath,
	}
	for _, target := range targets {
		if strings.TrimSpace(target) == "" {
			continue
		}
		if _, err := fileutil.RemoveIfExists(target); err != nil {
			log.Warn("failed to remove artifact", logging.String("path", target), logging.Error(err))
		}
	}
	if _, err := fileutil.RemoveDirIfExists(paths.FramesDir); err != nil {
		log.Warn("failed to remove frames directory", logging.String("path", paths.FramesDir), logging.Error(err))
	}

	removed, err := s.store.Remove(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		log.Info("recording deleted")
	}
	return removed, nil
}

// Stats returns recording counts grouped by status.
func (s *Service) Stats(ctx context.Context) (map[store.Status]int, error) {
	return s.store.Stats(ctx)
}
