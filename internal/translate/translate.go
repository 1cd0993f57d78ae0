// Package translate implements on-demand transcript translation. It is
// not part of the automatic pipeline; callers invoke it once a
// transcript exists.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"dashrec/internal/config"
	"dashrec/internal/language"
	"dashrec/internal/logging"
	"dashrec/internal/services"
	"dashrec/internal/store"
)

// TextTranslator converts text between languages via a remote
// text-generation service.
type TextTranslator interface {
	Translate(ctx context.Context, text, sourceName, targetName string) (string, error)
}

// Result is the outcome of a translation.
type Result struct {
	TranslatedText  string
	TranslationPath string
	SourceLanguage  string
	TargetLanguage  string
}

// Translator coordinates transcript loading, remote translation, and
// metadata persistence.
type Translator struct {
	store  *store.Store
	client TextTranslator
	cfg    *config.Config
	logger *slog.Logger
}

// New builds a Translator.
func New(st *store.Store, client TextTranslator, cfg *config.Config, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Translator{
		store:  st,
		client: client,
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "translate"),
	}
}

// Translate converts a recording's transcript into the target language.
// The transcript must already exist; the source language comes from the
// transcript header when present, then stored metadata, then automatic
// detection.
func (t *Translator) Translate(ctx context.Context, id, targetLanguage string) (Result, error) {
	ctx = services.WithRecordingID(ctx, id)
	log := logging.WithContext(ctx, t.logger)

	if strings.TrimSpace(t.cfg.Translation.APIKey) == "" {
		return Result{}, services.Wrap(services.ErrConfiguration, "", "translate", "translation api key not configured", nil)
	}
	target, ok := language.NormalizeTag(targetLanguage)
	if !ok {
		return Result{}, services.Wrap(services.ErrConfiguration, "", "translate", fmt.Sprintf("invalid target language %q", targetLanguage), nil)
	}

	rec, err := t.store.GetByID(ctx, id)
	if err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "", "translate", "load recording", err)
	}
	if rec == nil || rec.TranscriptPath == "" {
		return Result{}, services.Wrap(services.ErrNotFound, "", "translate", "transcript not found", nil)
	}

	content, err := os.ReadFile(rec.TranscriptPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrNotFound, "", "translate", "transcript not found", err)
	}

	text, source := splitTranscript(string(content), rec.Language)
	sourceName := ""
	if source != "auto" {
		sourceName = language.DisplayName(source)
	}
	targetName := language.DisplayName(target)

	translated, err := t.client.Translate(ctx, text, sourceName, targetName)
	if err != nil {
		return Result{}, services.Wrap(services.ErrUnavailable, "", "translate", "translation service", err)
	}

	outputPath := store.TranslationPath(t.cfg.Paths.DataDir, id, target)
	body := fmt.Sprintf("[Original Language: %s]\n[Translated to: %s]\n\n%s\n", source, target, translated)
	if err := os.WriteFile(outputPath, []byte(body), 0o644); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "", "translate", "write translation", err)
	}

	if _, err := t.store.Mutate(ctx, id, func(r *store.Recording) error {
		r.Translated = true
		r.TranslationLanguage = target
		r.TranslationPath = outputPath
		return nil
	}); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "", "translate", "persist translation", err)
	}

	log.Info("translation complete",
		logging.String("source", source),
		logging.String("target", target),
		logging.String("path", outputPath))
	return Result{
		TranslatedText:  translated,
		TranslationPath: outputPath,
		SourceLanguage:  source,
		TargetLanguage:  target,
	}, nil
}

// splitTranscript separates the transcript body from its header. The
// header's language line wins over stored metadata; absent both, the
// source is "auto".
func splitTranscript(content, metadataLanguage string) (text, source string) {
	source = metadataLanguage
	if source == "" {
		source = "auto"
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "[Language:") {
		source = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(lines[0], "[Language:"), "]"))
		if len(lines) > 3 {
			return strings.TrimSpace(strings.Join(lines[3:], "\n")), source
		}
		return "", source
	}
	return strings.TrimSpace(content), source
}
