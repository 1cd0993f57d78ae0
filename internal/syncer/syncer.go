// Package syncer delivers completed recordings to Solar Core, the
// external system of record. Delivery is gated on a short health check
// and retried within a fixed attempt budget; every terminal outcome is
// appended to the recording's durable sync log.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"dashrec/internal/config"
	"dashrec/internal/logging"
	"dashrec/internal/services"
	"dashrec/internal/services/solarcore"
	"dashrec/internal/store"
)

// Importer is the Solar Core capability the syncer needs.
type Importer interface {
	Health(ctx context.Context) error
	Import(ctx context.Context, payload solarcore.RecordPayload, recipient string, attempt int) (string, error)
}

// Result is the terminal outcome of one sync operation.
type Result struct {
	Status      store.SyncStatus
	RecordingID string
	Timestamp   time.Time
	SolarCoreID string
	Message     string
	Error       string
}

// Syncer coordinates delivery, metadata persistence, and sync logging.
type Syncer struct {
	store       *store.Store
	client      Importer
	logger      *slog.Logger
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// New builds a Syncer from configuration.
func New(st *store.Store, client Importer, cfg config.SolarCore, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = logging.NewNop()
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Syncer{
		store:       st,
		client:      client,
		logger:      logging.NewComponentLogger(logger, "syncer"),
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
	}
}

// WithBackOff overrides the inter-attempt delay policy (for testing).
func (s *Syncer) WithBackOff(factory func() backoff.BackOff) {
	s.newBackOff = factory
}

// Sync delivers one recording. A missing record fails with
// services.ErrNotFound; everything else resolves to a Result. The sync
// log gains exactly one entry per terminal outcome regardless of whether
// the metadata write succeeds.
func (s *Syncer) Sync(ctx context.Context, id, recipient string) (Result, error) {
	ctx = services.WithRecordingID(ctx, id)
	log := logging.WithContext(ctx, s.logger)

	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "", "sync", "load recording", err)
	}
	if rec == nil {
		return Result{}, services.Wrap(services.ErrNotFound, "", "sync", fmt.Sprintf("recording %s not found", id), nil)
	}

	payload := solarcore.RecordPayload{
		ID:            rec.ID,
		Language:      orUnknown(rec.Language),
		Video:         rec.VideoPath,
		Transcript:    rec.TranscriptPath,
		Translation:   rec.TranslationPath,
		PDF:           rec.PDFPath,
		CreatedAt:     rec.CreatedAt.UTC().Format(time.RFC3339),
		Duration:      rec.DurationSeconds,
		FileSize:      rec.FileSizeBytes,
		SegmentsCount: rec.SegmentsCount,
	}

	if err := s.client.Health(ctx); err != nil {
		log.Warn("solar core unhealthy, skipping delivery", logging.Error(err))
		result := Result{
			Status:      store.SyncFailed,
			RecordingID: id,
			Timestamp:   time.Now().UTC(),
			Error:       "Solar Core is not reachable",
		}
		s.finalize(ctx, log, result, 0)
		return result, nil
	}

	var lastErr error
	delay := s.newBackOff()
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, delay.NextBackOff()); err != nil {
				lastErr = err
				break
			}
		}
		solarID, err := s.client.Import(ctx, payload, recipient, attempt)
		if err == nil {
			log.Info("sync successful", logging.String("solar_core_id", solarID), logging.Int("attempt", attempt))
			result := Result{
				Status:      store.SyncSynced,
				RecordingID: id,
				Timestamp:   time.Now().UTC(),
				SolarCoreID: solarID,
				Message:     "Successfully synced to Solar Core ERP",
			}
			s.finalize(ctx, log, result, attempt)
			return result, nil
		}
		lastErr = err
		log.Warn("sync attempt failed",
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", s.maxAttempts),
			logging.Error(err))
	}

	result := Result{
		Status:      store.SyncFailed,
		RecordingID: id,
		Timestamp:   time.Now().UTC(),
		Error:       fmt.Sprintf("Failed after %d attempts: %v", s.maxAttempts, lastErr),
	}
	s.finalize(ctx, log, result, s.maxAttempts)
	return result, nil
}

// finalize appends the outcome to the sync log and persists the sync
// attributes. Persistence failures are logged, not surfaced: the result
// already stands.
func (s *Syncer) finalize(ctx context.Context, log *slog.Logger, result Result, attempts int) {
	entry := store.SyncLogEntry{
		Status:      result.Status,
		Message:     result.Message,
		Error:       result.Error,
		SolarCoreID: result.SolarCoreID,
		Attempts:    attempts,
		CreatedAt:   result.Timestamp,
	}
	if err := s.store.AppendSyncLog(ctx, result.RecordingID, entry); err != nil {
		log.Error("failed to append sync log", logging.Error(err))
	}

	if _, err := s.store.Mutate(ctx, result.RecordingID, func(r *store.Recording) error {
		r.SyncStatus = result.Status
		if result.Status == store.SyncSynced {
			r.Synced = true
			r.SolarCoreID = result.SolarCoreID
			at := result.Timestamp
			r.SyncedAt = &at
		}
		return nil
	}); err != nil {
		log.Error("failed to persist sync status", logging.Error(err))
	}
}

func orUnknown(language string) string {
	if language == "" {
		return "unknown"
	}
	return language
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
