package solarcore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"dashrec/internal/config"
)

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(config.SolarCore{URL: server.URL, HealthTimeoutSeconds: 5})
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestHealthUnhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(config.SolarCore{URL: server.URL, HealthTimeoutSeconds: 5})
	if err := client.Health(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestHealthUnreachable(t *testing.T) {
	client := NewClient(config.SolarCore{URL: "http://127.0.0.1:1", HealthTimeoutSeconds: 1})
	if err := client.Health(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestImportEnvelope(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/import/record" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		payload, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(payload, &gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"sc-1234"}`))
	}))
	defer server.Close()

	client := NewClient(config.SolarCore{URL: server.URL, APIKey: "token-1"})
	id, err := client.Import(context.Background(), RecordPayload{
		ID:       "20260115_093000",
		Language: "en",
	}, "ops@example.com", 2)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if id != "sc-1234" {
		t.Fatalf("id = %q", id)
	}
	if gotAuth != "Bearer token-1" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotBody["source"] != "solar_recorder" || gotBody["type"] != "recording" {
		t.Fatalf("envelope = %v", gotBody)
	}
	if gotBody["version"] != "2.0.0-alpha" {
		t.Fatalf("envelope version = %v", gotBody["version"])
	}
	meta := gotBody["metadata"].(map[string]any)
	if meta["recipient"] != "ops@example.com" || meta["attempt"] != float64(2) {
		t.Fatalf("metadata = %v", meta)
	}
	data := gotBody["data"].(map[string]any)
	if data["id"] != "20260115_093000" {
		t.Fatalf("data = %v", data)
	}
}

func TestImportSolarCoreIDFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"solar_core_id":"sc-alt"}`))
	}))
	defer server.Close()

	client := NewClient(config.SolarCore{URL: server.URL})
	id, err := client.Import(context.Background(), RecordPayload{ID: "x"}, "", 1)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if id != "sc-alt" {
		t.Fatalf("id = %q", id)
	}
}

func TestImportHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.SolarCore{URL: server.URL})
	if _, err := client.Import(context.Background(), RecordPayload{ID: "x"}, "", 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestNotConfigured(t *testing.T) {
	client := NewClient(config.SolarCore{})
	if client.Configured() {
		t.Fatal("expected unconfigured client")
	}
	if err := client.Health(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if _, err := client.Import(context.Background(), RecordPayload{}, "", 1); err == nil {
		t.Fatal("expected error")
	}
}
