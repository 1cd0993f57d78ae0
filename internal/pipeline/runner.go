package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"dashrec/internal/logging"
	"dashrec/internal/services"
)

// Runner supervises asynchronous pipeline executions. Errors from a run
// are captured and attributed to the recording ID in logs; they never
// reach the triggering caller. At most one run per recording is in
// flight at a time.
type Runner struct {
	pipeline *Pipeline
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup
}

// NewRunner builds a Runner around the pipeline.
func NewRunner(p *Pipeline, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		pipeline: p,
		logger:   logging.NewComponentLogger(logger, "runner"),
		inflight: make(map[string]struct{}),
	}
}

// Trigger starts a pipeline run for the recording in the background. It
// reports false when a run for that recording is already in flight; the
// rejection is logged, not surfaced.
func (r *Runner) Trigger(id string) bool {
	r.mu.Lock()
	if _, running := r.inflight[id]; running {
		r.mu.Unlock()
		r.logger.Warn("pipeline run already in flight, trigger dropped",
			logging.String(logging.FieldRecordingID, id))
		return false
	}
	r.inflight[id] = struct{}{}
	r.mu.Unlock()

	ctx := services.WithRequestID(context.Background(), uuid.NewString())
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			r.mu.Lock()
			delete(r.inflight, id)
			r.mu.Unlock()
		}()
		if err := r.pipeline.Run(ctx, id); err != nil {
			logging.WithContext(services.WithRecordingID(ctx, id), r.logger).
				Error("background run failed", logging.Error(err))
		}
	}()
	return true
}

// Retry resets the recording to the initial state and re-triggers
// processing. It reports false when the record does not exist. The
// return value reflects the durable state reset, not the outcome of the
// replay; a dropped trigger is logged only.
func (r *Runner) Retry(ctx context.Context, id string) (bool, error) {
	reset, err := r.pipeline.resetForRetry(ctx, id)
	if err != nil {
		return false, err
	}
	if !reset {
		return false, nil
	}
	r.logger.Info("retry requested", logging.String(logging.FieldRecordingID, id))
	r.Trigger(id)
	return true, nil
}

// Wait blocks until all in-flight runs finish. Used for shutdown and
// tests.
func (r *Runner) Wait() {
	r.wg.Wait()
}
