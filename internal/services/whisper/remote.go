package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dashrec/internal/config"
)

const defaultRemoteBaseURL = "https://api.openai.com/v1"

// RemoteEngine calls an OpenAI-compatible audio transcription API.
type RemoteEngine struct {
	cfg        config.Whisper
	baseURL    string
	httpClient *http.Client
}

// RemoteOption customizes the remote engine.
type RemoteOption func(*RemoteEngine)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(e *RemoteEngine) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// NewRemoteEngine creates the remote engine from configuration.
func NewRemoteEngine(cfg config.Whisper, opts ...RemoteOption) *RemoteEngine {
	engine := &RemoteEngine{
		cfg:     cfg,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/"),
	}
	if engine.baseURL == "" {
		engine.baseURL = defaultRemoteBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	engine.httpClient = &http.Client{Timeout: timeout}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

type remoteResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		Start       float64 `json:"start"`
		End         float64 `json:"end"`
		Text        string  `json:"text"`
		AvgLogprob  float64 `json:"avg_logprob"`
		NoSpeechPct float64 `json:"no_speech_prob"`
	} `json:"segments"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe uploads the media file as multipart form data and parses the
// verbose JSON response.
func (e *RemoteEngine) Transcribe(ctx context.Context, sourcePath string) (Result, error) {
	var result Result
	if sourcePath == "" {
		return result, errors.New("transcribe: source path required")
	}
	if strings.TrimSpace(e.cfg.APIKey) == "" {
		return result, errors.New("transcribe: api key required")
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return result, fmt.Errorf("transcribe: source: %w", err)
	}
	defer source.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filepath.Base(sourcePath))
	if err != nil {
		return result, fmt.Errorf("transcribe: build form: %w", err)
	}
	if _, err := io.Copy(part, source); err != nil {
		return result, fmt.Errorf("transcribe: copy source: %w", err)
	}
	model := e.cfg.Model
	if model == "" {
		model = "whisper-1"
	}
	_ = form.WriteField("model", model)
	_ = form.WriteField("response_format", "verbose_json")
	if e.cfg.Language != "" && e.cfg.Language != "auto" {
		_ = form.WriteField("language", e.cfg.Language)
	}
	if err := form.Close(); err != nil {
		return result, fmt.Errorf("transcribe: close form: %w", err)
	}

	endpoint, err := url.JoinPath(e.baseURL, "/audio/transcriptions")
	if err != nil {
		return result, fmt.Errorf("transcribe: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return result, fmt.Errorf("transcribe: request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.cfg.APIKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("transcribe: request failed: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("transcribe: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return result, fmt.Errorf("transcribe: http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var decoded remoteResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return result, fmt.Errorf("transcribe: decode response: %w", err)
	}
	if decoded.Error != nil {
		return result, fmt.Errorf("transcribe: api error: %s", strings.TrimSpace(decoded.Error.Message))
	}
	if strings.TrimSpace(decoded.Text) == "" {
		return result, errors.New("transcribe: empty transcript")
	}

	result.Text = strings.TrimSpace(decoded.Text)
	result.Language = decoded.Language
	result.DurationSeconds = decoded.Duration
	result.Confidence = confidenceFromSegments(decoded)
	for _, seg := range decoded.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return result, nil
}

// confidenceFromSegments derives a 0..1 confidence estimate from segment
// average log probabilities; the verbose response carries no top-level
// language probability.
func confidenceFromSegments(resp remoteResponse) float64 {
	if len(resp.Segments) == 0 {
		return 0
	}
	var sum float64
	for _, seg := range resp.Segments {
		prob := seg.AvgLogprob
		// avg_logprob is a natural log; clamp into a usable 0..1 band.
		switch {
		case prob >= 0:
			sum++
		case prob <= -1:
			// effectively no confidence
		default:
			sum += 1 + prob
		}
	}
	return sum / float64(len(resp.Segments))
}
