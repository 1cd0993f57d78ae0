package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"dashrec/internal/config"
)

// Store manages recording metadata persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// ErrDataDirLocked is returned when another process holds the data directory.
var ErrDataDirLocked = errors.New("data directory is locked by another process")

// Open initializes or connects to the metadata database, applies the
// schema, and takes an exclusive lock on the data directory so only one
// operator process mutates it at a time.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	if err := EnsureArtifactDirs(cfg.Paths.DataDir); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "dashrec.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data directory lock: %w", err)
	}
	if !locked {
		return nil, ErrDataDirLocked
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "dashrec.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock, locks: make(map[string]*sync.Mutex)}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the data directory lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// NewRecording inserts a freshly uploaded recording in the initial state.
func (s *Store) NewRecording(ctx context.Context, id, filename, videoPath string, sizeBytes int64) (*Recording, error) {
	if id == "" {
		return nil, errors.New("recording id required")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO recordings (
            id, filename, created_at, updated_at, video_path, status,
            progress_step, progress_step_number, progress_total_steps, progress_message,
            file_size_bytes, sync_status
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		nullableString(filename),
		timestamp,
		timestamp,
		nullableString(videoPath),
		StatusUploaded,
		StepUploaded,
		1,
		TotalSteps,
		"Video uploaded successfully",
		sizeBytes,
		SyncPending,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recording: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a recording by identifier. Missing records return (nil, nil).
func (s *Store) GetByID(ctx context.Context, id string) (*Recording, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordingColumns+` FROM recordings WHERE id = ?`, id)
	rec, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recording: %w", err)
	}
	return rec, nil
}

// List returns all recordings ordered newest first.
func (s *Store) List(ctx context.Context) ([]*Recording, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordingColumns+` FROM recordings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	var recs []*Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Update persists changes to an existing recording.
func (s *Store) Update(ctx context.Context, rec *Recording) error {
	if rec == nil {
		return errors.New("recording is nil")
	}
	rec.UpdatedAt = time.Now().UTC()

	var errStep, errMessage, errAt any
	if rec.Error != nil {
		errStep = rec.Error.Step
		errMessage = rec.Error.Message
		errAt = rec.Error.Timestamp.UTC().Format(time.RFC3339Nano)
	}

	_, err := s.db.ExecContext(
		ctx,
		`UPDATE recordings
         SET filename = ?, updated_at = ?,
             video_path = ?, transcript_path = ?, segments_path = ?, mp4_path = ?,
             pdf_path = ?, translation_path = ?,
             status = ?, progress_step = ?, progress_step_number = ?,
             progress_total_steps = ?, progress_message = ?,
             error_step = ?, error_message = ?, error_at = ?,
             language = ?, language_confidence = ?, segments_count = ?,
             duration_seconds = ?, file_size_bytes = ?,
             translated = ?, translation_language = ?,
             synced = ?, sync_status = ?, solar_core_id = ?, synced_at = ?
         WHERE id = ?`,
		nullableString(rec.Filename),
		rec.UpdatedAt.Format(time.RFC3339Nano),
		nullableString(rec.VideoPath),
		nullableString(rec.TranscriptPath),
		nullableString(rec.SegmentsPath),
		nullableString(rec.MP4Path),
		nullableString(rec.PDFPath),
		nullableString(rec.TranslationPath),
		rec.Status,
		nullableString(rec.Progress.Step),
		rec.Progress.StepNumber,
		rec.Progress.TotalSteps,
		nullableString(rec.Progress.Message),
		errStep,
		errMessage,
		errAt,
		nullableString(rec.Language),
		rec.LanguageConfidence,
		rec.SegmentsCount,
		rec.DurationSeconds,
		rec.FileSizeBytes,
		boolToInt(rec.Translated),
		nullableString(rec.TranslationLanguage),
		boolToInt(rec.Synced),
		nullableString(string(rec.SyncStatus)),
		nullableString(rec.SolarCoreID),
		nullableTime(rec.SyncedAt),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update recording: %w", err)
	}
	return nil
}

// Mutate runs a read-modify-write cycle under the recording's mutex. The
// callback receives the current record; returning an error aborts without
// writing. Missing records return (nil, nil) without invoking fn.
func (s *Store) Mutate(ctx context.Context, id string, fn func(*Recording) error) (*Recording, error) {
	mu := s.recordLock(id)
	mu.Lock()
	defer mu.Unlock()

	rec, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if err := fn(rec); err != nil {
		return nil, err
	}
	if err := s.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) recordLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	return mu
}

// Remove deletes a recording row along with its sync log and screenshots.
// It reports whether the record existed; artifact file removal is the
// caller's responsibility.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete recording: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sync_log WHERE recording_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete sync log: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM screenshots WHERE recording_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete screenshots: %w", err)
	}
	return affected > 0, nil
}

// Stats returns a count of recordings grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM recordings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("recording stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

const recordingColumns = "id, filename, created_at, updated_at, video_path, transcript_path, segments_path, mp4_path, pdf_path, translation_path, status, progress_step, progress_step_number, progress_total_steps, progress_message, error_step, error_message, error_at, language, language_confidence, segments_count, duration_seconds, file_size_bytes, translated, translation_language, synced, sync_status, solar_core_id, synced_at"

func scanRecording(scanner interface{ Scan(dest ...any) error }) (*Recording, error) {
	var (
		id                 string
		filename           sql.NullString
		createdRaw         sql.NullString
		updatedRaw         sql.NullString
		videoPath          sql.NullString
		transcriptPath     sql.NullString
		segmentsPath       sql.NullString
		mp4Path            sql.NullString
		pdfPath            sql.NullString
		translationPath    sql.NullString
		statusStr          string
		progressStep       sql.NullString
		progressStepNumber sql.NullInt64
		progressTotalSteps sql.NullInt64
		progressMessage    sql.NullString
		errStep            sql.NullString
		errMessage         sql.NullString
		errAtRaw           sql.NullString
		language           sql.NullString
		languageConfidence sql.NullFloat64
		segmentsCount      sql.NullInt64
		durationSeconds    sql.NullFloat64
		fileSizeBytes      sql.NullInt64
		translated         sql.NullInt64
		translationLang    sql.NullString
		synced             sql.NullInt64
		syncStatus         sql.NullString
		solarCoreID        sql.NullString
		syncedAtRaw        sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&filename,
		&createdRaw,
		&updatedRaw,
		&videoPath,
		&transcriptPath,
		&segmentsPath,
		&mp4Path,
		&pdfPath,
		&translationPath,
		&statusStr,
		&progressStep,
		&progressStepNumber,
		&progressTotalSteps,
		&progressMessage,
		&errStep,
		&errMessage,
		&errAtRaw,
		&language,
		&languageConfidence,
		&segmentsCount,
		&durationSeconds,
		&fileSizeBytes,
		&translated,
		&translationLang,
		&synced,
		&syncStatus,
		&solarCoreID,
		&syncedAtRaw,
	); err != nil {
		return nil, err
	}

	rec := &Recording{
		ID:              id,
		Filename:        filename.String,
		VideoPath:       videoPath.String,
		TranscriptPath:  transcriptPath.String,
		SegmentsPath:    segmentsPath.String,
		MP4Path:         mp4Path.String,
		PDFPath:         pdfPath.String,
		TranslationPath: translationPath.String,
		Status:          Status(statusStr),
		Progress: Progress{
			Step:       progressStep.String,
			StepNumber: int(progressStepNumber.Int64),
			TotalSteps: int(progressTotalSteps.Int64),
			Message:    progressMessage.String,
		},
		Language:            language.String,
		LanguageConfidence:  languageConfidence.Float64,
		SegmentsCount:       int(segmentsCount.Int64),
		DurationSeconds:     durationSeconds.Float64,
		FileSizeBytes:       fileSizeBytes.Int64,
		Translated:          translated.Int64 != 0,
		TranslationLanguage: translationLang.String,
		Synced:              synced.Int64 != 0,
		SyncStatus:          SyncStatus(syncStatus.String),
		SolarCoreID:         solarCoreID.String,
	}

	if errStep.Valid || errMessage.Valid {
		procErr := &ProcessingError{Step: errStep.String, Message: errMessage.String}
		if at, err := parseTimeString(errAtRaw.String); err == nil {
			procErr.Timestamp = at
		}
		rec.Error = procErr
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		rec.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		rec.UpdatedAt = updated
	}
	if syncedAtRaw.Valid {
		if at, err := parseTimeString(syncedAtRaw.String); err == nil {
			rec.SyncedAt = &at
		}
	}
	return rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
