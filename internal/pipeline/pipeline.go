package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dashrec/internal/config"
	"dashrec/internal/language"
	"dashrec/internal/logging"
	"dashrec/internal/services"
	"dashrec/internal/services/pdfgen"
	"dashrec/internal/services/whisper"
	"dashrec/internal/store"
)

// DocumentGenerator renders a summary document from a transcript.
type DocumentGenerator interface {
	Generate(ctx context.Context, meta pdfgen.Metadata, transcriptPath, outputPath string) error
}

// MediaConverter transcodes the captured recording into MP4. A ("", nil)
// return means the converter declined (missing source).
type MediaConverter interface {
	Convert(ctx context.Context, sourcePath, outputPath string) (string, error)
}

// Pipeline runs the per-recording processing steps against the store.
type Pipeline struct {
	store     *store.Store
	cfg       *config.Config
	logger    *slog.Logger
	engine    whisper.Engine
	documents DocumentGenerator
	converter MediaConverter
}

// New builds a Pipeline. All collaborators are required except the
// logger, which falls back to a no-op logger.
func New(st *store.Store, cfg *config.Config, logger *slog.Logger, engine whisper.Engine, documents DocumentGenerator, converter MediaConverter) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		store:     st,
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		engine:    engine,
		documents: documents,
		converter: converter,
	}
}

// Run executes the full processing pipeline for a recording. The record
// must exist; a missing record fails with services.ErrNotFound. Any
// failure that escapes the per-step handling is recorded against step
// "unknown" so abnormal termination is always visible in metadata.
func (p *Pipeline) Run(ctx context.Context, id string) (err error) {
	ctx = services.WithRecordingID(ctx, id)
	log := logging.WithContext(ctx, p.logger)

	rec, err := p.store.GetByID(ctx, id)
	if err != nil {
		return services.Wrap(services.ErrTransient, "", "run", "load recording", err)
	}
	if rec == nil {
		return services.Wrap(services.ErrNotFound, "", "run", fmt.Sprintf("recording %s not found", id), nil)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
		if err != nil {
			p.recordUnknownFailure(ctx, id, err)
		}
	}()

	log.Info("processing started", logging.String("filename", rec.Filename))
	if err = p.run(ctx, log, rec); err != nil {
		log.Error("processing failed", logging.Error(err))
		return err
	}
	log.Info("processing complete")
	return nil
}

func (p *Pipeline) run(ctx context.Context, log *slog.Logger, rec *store.Recording) error {
	id := rec.ID
	paths := store.RecordingPaths(p.cfg.Paths.DataDir, id)

	// Step 1: transcription, fatal on failure.
	if _, err := p.store.Mutate(ctx, id, func(r *store.Recording) error {
		r.SetProgress(store.StatusTranscribing, store.StepTranscribe, 1, "Transcribing audio with Whisper")
		return nil
	}); err != nil {
		return fmt.Errorf("persist transcribe progress: %w", err)
	}

	result, err := p.engine.Transcribe(services.WithStep(ctx, store.StepTranscribe), rec.VideoPath)
	if err == nil {
		err = p.writeTranscriptArtifacts(paths, result)
	}
	if err != nil {
		if _, mutateErr := p.store.Mutate(ctx, id, func(r *store.Recording) error {
			r.RecordError(store.StepTranscribe, err.Error(), time.Now().UTC())
			return nil
		}); mutateErr != nil {
			return fmt.Errorf("record transcribe failure: %w", mutateErr)
		}
		return fmt.Errorf("transcribe: %w", err)
	}

	if _, err := p.store.Mutate(ctx, id, func(r *store.Recording) error {
		r.TranscriptPath = paths.Transcript
		r.SegmentsPath = paths.Segments
		r.Language = language.ToISO2(result.Language)
		r.LanguageConfidence = result.Confidence
		r.SegmentsCount = len(result.Segments)
		r.DurationSeconds = result.DurationSeconds
		r.Status = store.StatusTranscribed
		return nil
	}); err != nil {
		return fmt.Errorf("persist transcription: %w", err)
	}
	log.Info("transcription complete",
		logging.String("language", result.Language),
		logging.Float64("confidence", result.Confidence),
		logging.Int("segments", len(result.Segments)))

	// Step 2: PDF report, best-effort.
	if _, err := p.store.Mutate(ctx, id, func(r *store.Recording) error {
		r.SetProgress(r.Status, store.StepPDFGeneration, 2, "Generating PDF report")
		return nil
	}); err != nil {
		return fmt.Errorf("persist pdf progress: %w", err)
	}

	current, err := p.store.GetByID(ctx, id)
	if err != nil || current == nil {
		return fmt.Errorf("reload recording for pdf: %w", err)
	}
	meta := pdfgen.Metadata{
		RecordingID:     current.ID,
		Filename:        current.Filename,
		Language:        current.Language,
		DurationSeconds: current.DurationSeconds,
		CreatedAt:       current.CreatedAt,
	}
	if err := p.documents.Generate(services.WithStep(ctx, store.StepPDFGeneration), meta, paths.Transcript, paths.PDF); err != nil {
		log.Warn("pdf generation failed, continuing", logging.Error(err))
		if _, mutateErr := p.store.Mutate(ctx, id, func(r *store.Recording) error {
			r.RecordStepError(store.StepPDFGeneration, err.Error(), time.Now().UTC())
			return nil
		}); mutateErr != nil {
			return fmt.Errorf("record pdf failure: %w", mutateErr)
		}
	} else {
		if _, err := p.store.Mutate(ctx, id, func(r *store.Recording) error {
			r.PDFPath = paths.PDF
			return nil
		}); err != nil {
			return fmt.Errorf("persist pdf path: %w", err)
		}
		log.Info("pdf generation complete", logging.String("path", paths.PDF))
	}

	// Step 3: MP4 conversion, best-effort.
	if _, err := p.store.Mutate(ctx, id, func(r *store.Recording) error {
		r.SetProgress(store.StatusConvertingMP4, store.StepMP4Conversion, 3, "Converting to MP4 for compatibility")
		return nil
	}); err != nil {
		return fmt.Errorf("persist mp4 progress: %w", err)
	}

	mp4Path, err := p.converter.Convert(services.WithStep(ctx, store.StepMP4Conversion), rec.VideoPath, paths.MP4)
	switch {
	case err != nil:
		log.Warn("mp4 conversion failed, continuing", logging.Error(err))
		if _, mutateErr := p.store.Mutate(ctx, id, func(r *store.Recording) error {
			r.RecordStepError(store.StepMP4Conversion, err.Error(), time.Now().UTC())
			return nil
		}); mutateErr != nil {
			return fmt.Errorf("record mp4 failure: %w", mutateErr)
		}
	case mp4Path == "":
		log.Warn("mp4 conversion declined, continuing")
	default:
		if _, err := p.store.Mutate(ctx, id, func(r *store.Recording) error {
			r.MP4Path = mp4Path
			return nil
		}); err != nil {
			return fmt.Errorf("persist mp4 path: %w", err)
		}
		log.Info("mp4 conversion complete", logging.String("path", mp4Path))
	}

	// Step 4: completion, unconditional once transcription succeeded.
	if _, err := p.store.Mutate(ctx, id, func(r *store.Recording) error {
		r.SetProgress(store.StatusComplete, store.StepComplete, store.TotalSteps, "Processing complete")
		return nil
	}); err != nil {
		return fmt.Errorf("persist completion: %w", err)
	}
	return nil
}

func (p *Pipeline) writeTranscriptArtifacts(paths store.ArtifactPaths, result whisper.Result) error {
	if err := whisper.WriteTranscript(paths.Transcript, result); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	if err := whisper.WriteSegments(paths.Segments, result.Segments); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}
	return nil
}

// recordUnknownFailure re-reads the record and, if no step has already
// claimed the failure, attributes it to step "unknown".
func (p *Pipeline) recordUnknownFailure(ctx context.Context, id string, cause error) {
	rec, err := p.store.GetByID(ctx, id)
	if err != nil || rec == nil {
		return
	}
	if rec.Status == store.StatusError {
		return
	}
	if _, err := p.store.Mutate(ctx, id, func(r *store.Recording) error {
		if r.Status == store.StatusError {
			return nil
		}
		r.RecordError(store.StepUnknown, cause.Error(), time.Now().UTC())
		return nil
	}); err != nil {
		logging.WithContext(ctx, p.logger).Error("failed to record pipeline failure", logging.Error(err))
	}
}

// StatusSnapshot is the poll view of a recording's processing state.
type StatusSnapshot struct {
	Status   store.Status
	Progress store.Progress
	Message  string
	Error    *store.ProcessingError
}

// GetStatus returns the current processing state, or nil when the record
// does not exist. It is a pure read.
func (p *Pipeline) GetStatus(ctx context.Context, id string) (*StatusSnapshot, error) {
	rec, err := p.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return &StatusSnapshot{
		Status:   rec.Status,
		Progress: rec.Progress,
		Message:  rec.Progress.Message,
		Error:    rec.Error,
	}, nil
}

// resetForRetry returns the record to the initial state. It reports false
// when the record does not exist.
func (p *Pipeline) resetForRetry(ctx context.Context, id string) (bool, error) {
	rec, err := p.store.Mutate(ctx, id, func(r *store.Recording) error {
		r.ResetForRetry()
		return nil
	})
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}
