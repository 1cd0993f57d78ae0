package deepseek

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dashrec/internal/config"
)

func TestTranslate(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		payload, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(payload, &gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":" Привет, мир. "}}]}`))
	}))
	defer server.Close()

	client := NewClient(config.Translation{
		APIKey:         "sk-test",
		BaseURL:        server.URL,
		TimeoutSeconds: 10,
	})
	out, err := client.Translate(context.Background(), "Hello, world.", "English", "Russian")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "Привет, мир." {
		t.Fatalf("out = %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotBody["model"] != "deepseek-chat" {
		t.Fatalf("model = %v", gotBody["model"])
	}
	if gotBody["temperature"] != 0.3 {
		t.Fatalf("temperature = %v", gotBody["temperature"])
	}
	messages := gotBody["messages"].([]any)
	system := messages[0].(map[string]any)
	if !strings.Contains(system["content"].(string), "from English into Russian") {
		t.Fatalf("system prompt = %v", system["content"])
	}
}

func TestTranslateAutoDetectPrompt(t *testing.T) {
	prompt := TranslationPrompt("", "German")
	if !strings.Contains(prompt, "Detect the source language") {
		t.Fatalf("prompt = %q", prompt)
	}
	prompt = TranslationPrompt("Unknown", "German")
	if !strings.Contains(prompt, "Detect the source language") {
		t.Fatalf("prompt = %q", prompt)
	}
}

func TestTranslateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"message":"insufficient quota"}}`))
	}))
	defer server.Close()

	client := NewClient(config.Translation{APIKey: "k", BaseURL: server.URL, TimeoutSeconds: 10})
	if _, err := client.Translate(context.Background(), "hi", "", "French"); err == nil {
		t.Fatal("expected error")
	} else if !strings.Contains(err.Error(), "insufficient quota") {
		t.Fatalf("err = %v", err)
	}
}

func TestTranslateValidation(t *testing.T) {
	client := NewClient(config.Translation{APIKey: "k", TimeoutSeconds: 10})
	if _, err := client.Translate(context.Background(), "", "", "French"); err == nil {
		t.Fatal("expected error for empty text")
	}
	if _, err := client.Translate(context.Background(), "hi", "", ""); err == nil {
		t.Fatal("expected error for missing target")
	}
	noKey := NewClient(config.Translation{TimeoutSeconds: 10})
	if _, err := noKey.Translate(context.Background(), "hi", "", "French"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
