package translate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dashrec/internal/config"
	"dashrec/internal/services"
	"dashrec/internal/store"
)

type fakeTranslator struct {
	calls      int
	gotText    string
	gotSource  string
	gotTarget  string
	translated string
	err        error
}

func (f *fakeTranslator) Translate(ctx context.Context, text, sourceName, targetName string) (string, error) {
	f.calls++
	f.gotText = text
	f.gotSource = sourceName
	f.gotTarget = targetName
	if f.err != nil {
		return "", f.err
	}
	return f.translated, nil
}

func newTestTranslator(t *testing.T) (*Translator, *store.Store, *config.Config, *fakeTranslator) {
	t.Helper()
	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Translation.APIKey = "sk-test"

	st, err := store.Open(&cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	client := &fakeTranslator{translated: "Привет из лекции."}
	return New(st, client, &cfg, nil), st, &cfg, client
}

func seedTranscribed(t *testing.T, st *store.Store, cfg *config.Config, id, transcript string) {
	t.Helper()
	ctx := context.Background()
	paths := store.RecordingPaths(cfg.Paths.DataDir, id)
	if _, err := st.NewRecording(ctx, id, id+".webm", paths.Video, 1); err != nil {
		t.Fatalf("NewRecording: %v", err)
	}
	if err := os.WriteFile(paths.Transcript, []byte(transcript), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	if _, err := st.Mutate(ctx, id, func(r *store.Recording) error {
		r.TranscriptPath = paths.Transcript
		r.Language = "en"
		return nil
	}); err != nil {
		t.Fatalf("Mutate: %v", err)
	}
}

func TestTranslateUsesHeaderLanguage(t *testing.T) {
	tr, st, cfg, client := newTestTranslator(t)
	ctx := context.Background()
	seedTranscribed(t, st, cfg, "20260115_093000",
		"[Language: en]\n[Confidence: 92.0%]\n\nHello from the lecture.\n")

	result, err := tr.Translate(ctx, "20260115_093000", "ru")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if client.gotText != "Hello from the lecture." {
		t.Fatalf("text sent = %q", client.gotText)
	}
	if client.gotSource != "English" || client.gotTarget != "Russian" {
		t.Fatalf("languages = %q -> %q", client.gotSource, client.gotTarget)
	}
	if result.SourceLanguage != "en" || result.TargetLanguage != "ru" {
		t.Fatalf("result = %+v", result)
	}

	data, err := os.ReadFile(result.TranslationPath)
	if err != nil {
		t.Fatalf("read translation: %v", err)
	}
	want := "[Original Language: en]\n[Translated to: ru]\n\nПривет из лекции.\n"
	if string(data) != want {
		t.Fatalf("translation file = %q", data)
	}
	if !strings.HasSuffix(result.TranslationPath, "20260115_093000_ru.txt") {
		t.Fatalf("path = %q", result.TranslationPath)
	}

	rec, _ := st.GetByID(ctx, "20260115_093000")
	if !rec.Translated || rec.TranslationLanguage != "ru" || rec.TranslationPath != result.TranslationPath {
		t.Fatalf("persisted attrs = %+v", rec)
	}
}

func TestTranslateNoHeaderFallsBackToMetadata(t *testing.T) {
	tr, st, cfg, client := newTestTranslator(t)
	seedTranscribed(t, st, cfg, "20260115_093000", "Plain transcript with no header.\n")

	if _, err := tr.Translate(context.Background(), "20260115_093000", "de"); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if client.gotSource != "English" {
		t.Fatalf("source = %q", client.gotSource)
	}
	if client.gotText != "Plain transcript with no header." {
		t.Fatalf("text = %q", client.gotText)
	}
}

func TestTranslateAutoWhenLanguageUnknown(t *testing.T) {
	tr, st, cfg, client := newTestTranslator(t)
	ctx := context.Background()
	seedTranscribed(t, st, cfg, "20260115_093000", "No header here.\n")
	if _, err := st.Mutate(ctx, "20260115_093000", func(r *store.Recording) error {
		r.Language = ""
		return nil
	}); err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	result, err := tr.Translate(ctx, "20260115_093000", "fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if client.gotSource != "" {
		t.Fatalf("source = %q, want empty for auto-detect", client.gotSource)
	}
	if result.SourceLanguage != "auto" {
		t.Fatalf("source = %q", result.SourceLanguage)
	}
}

func TestTranslateMissingTranscript(t *testing.T) {
	tr, st, _, client := newTestTranslator(t)
	ctx := context.Background()

	if _, err := tr.Translate(ctx, "missing", "ru"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}

	// Record exists but was never transcribed.
	if _, err := st.NewRecording(ctx, "20260115_100000", "a.webm", "/v/a.webm", 1); err != nil {
		t.Fatalf("NewRecording: %v", err)
	}
	if _, err := tr.Translate(ctx, "20260115_100000", "ru"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("translator called %d times", client.calls)
	}
}

func TestTranslateInvalidTarget(t *testing.T) {
	tr, _, _, _ := newTestTranslator(t)
	if _, err := tr.Translate(context.Background(), "x", "!!"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("err = %v", err)
	}
}

func TestTranslateMissingAPIKey(t *testing.T) {
	tr, _, cfg, _ := newTestTranslator(t)
	cfg.Translation.APIKey = ""
	if _, err := tr.Translate(context.Background(), "x", "ru"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("err = %v", err)
	}
}

func TestTranslateServiceFailure(t *testing.T) {
	tr, st, cfg, client := newTestTranslator(t)
	seedTranscribed(t, st, cfg, "20260115_093000", "text\n")
	client.err = errors.New("quota exhausted")

	_, err := tr.Translate(context.Background(), "20260115_093000", "ru")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("err = %v", err)
	}

	rec, _ := st.GetByID(context.Background(), "20260115_093000")
	if rec.Translated {
		t.Fatal("translated flag set despite failure")
	}
}
