package whisper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"dashrec/internal/config"
)

func TestRemoteEngineTranscribe(t *testing.T) {
	source := filepath.Join(t.TempDir(), "video.webm")
	if err := os.WriteFile(source, []byte("fake media"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q", got)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("response_format = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
            "text": " Hello world. ",
            "language": "en",
            "duration": 12.5,
            "segments": [
                {"start": 0, "end": 6, "text": " Hello ", "avg_logprob": -0.1},
                {"start": 6, "end": 12.5, "text": "world.", "avg_logprob": -0.1}
            ]
        }`))
	}))
	defer server.Close()

	engine := NewRemoteEngine(config.Whisper{
		Mode:           config.WhisperModeRemote,
		APIKey:         "sk-test",
		APIBaseURL:     server.URL,
		TimeoutSeconds: 30,
	})

	result, err := engine.Transcribe(context.Background(), source)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotPath != "/audio/transcriptions" {
		t.Fatalf("path = %q", gotPath)
	}
	if result.Text != "Hello world." || result.Language != "en" {
		t.Fatalf("result = %+v", result)
	}
	if result.DurationSeconds != 12.5 {
		t.Fatalf("duration = %v", result.DurationSeconds)
	}
	if len(result.Segments) != 2 || result.Segments[0].Text != "Hello" {
		t.Fatalf("segments = %+v", result.Segments)
	}
	if result.Confidence <= 0.8 || result.Confidence > 1 {
		t.Fatalf("confidence = %v", result.Confidence)
	}
}

func TestRemoteEngineHTTPError(t *testing.T) {
	source := filepath.Join(t.TempDir(), "video.webm")
	if err := os.WriteFile(source, []byte("fake"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	engine := NewRemoteEngine(config.Whisper{
		APIKey:         "bad",
		APIBaseURL:     server.URL,
		TimeoutSeconds: 30,
	})
	if _, err := engine.Transcribe(context.Background(), source); err == nil {
		t.Fatal("expected error")
	}
}

func TestRemoteEngineRequiresAPIKey(t *testing.T) {
	engine := NewRemoteEngine(config.Whisper{TimeoutSeconds: 30})
	if _, err := engine.Transcribe(context.Background(), "whatever.webm"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestNewEngineSelection(t *testing.T) {
	if _, err := NewEngine(config.Whisper{Mode: "carrier-pigeon"}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	engine, err := NewEngine(config.Whisper{Mode: config.WhisperModeSubprocess, ScriptPath: "x.py", TimeoutSeconds: 1})
	if err != nil {
		t.Fatalf("NewEngine subprocess: %v", err)
	}
	if _, ok := engine.(*SubprocessEngine); !ok {
		t.Fatalf("engine = %T", engine)
	}
	engine, err = NewEngine(config.Whisper{Mode: config.WhisperModeRemote, APIKey: "k", TimeoutSeconds: 1})
	if err != nil {
		t.Fatalf("NewEngine remote: %v", err)
	}
	if _, ok := engine.(*RemoteEngine); !ok {
		t.Fatalf("engine = %T", engine)
	}
}
