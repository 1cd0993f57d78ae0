// Package solarcore implements the HTTP client for the Solar Core import
// API, the external system of record completed recordings are delivered
// to.
package solarcore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dashrec/internal/config"
)

// Envelope identity fields expected by the import API.
const (
	envelopeSource  = "solar_recorder"
	envelopeVersion = "2.0.0-alpha"
	envelopeType    = "recording"
)

// RecordPayload is the recording summary delivered to Solar Core. Field
// names follow the import API contract.
type RecordPayload struct {
	ID            string  `json:"id"`
	Language      string  `json:"language"`
	Video         string  `json:"video"`
	Transcript    string  `json:"transcript"`
	Translation   string  `json:"translation,omitempty"`
	PDF           string  `json:"pdf"`
	CreatedAt     string  `json:"createdAt"`
	Duration      float64 `json:"duration,omitempty"`
	FileSize      int64   `json:"fileSize,omitempty"`
	SegmentsCount int     `json:"segmentsCount,omitempty"`
}

type importRequest struct {
	Source    string         `json:"source"`
	Version   string         `json:"version"`
	Type      string         `json:"type"`
	Data      RecordPayload  `json:"data"`
	Metadata  importMetadata `json:"metadata"`
	Timestamp string         `json:"timestamp"`
}

type importMetadata struct {
	Recipient string `json:"recipient,omitempty"`
	Attempt   int    `json:"attempt"`
}

type importResponse struct {
	ID          string `json:"id"`
	SolarCoreID string `json:"solar_core_id"`
	Error       string `json:"error"`
}

// Client talks to a Solar Core instance.
type Client struct {
	baseURL       string
	apiKey        string
	healthTimeout time.Duration
	httpClient    *http.Client
}

// Option customizes the Solar Core client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Solar Core client from configuration.
func NewClient(cfg config.SolarCore, opts ...Option) *Client {
	client := &Client{
		baseURL:       strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		apiKey:        strings.TrimSpace(cfg.APIKey),
		healthTimeout: time.Duration(cfg.HealthTimeoutSeconds) * time.Second,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
	if client.healthTimeout <= 0 {
		client.healthTimeout = 5 * time.Second
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Configured reports whether a target URL is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// Health probes the /health endpoint with a short bound. Any transport
// failure or non-2xx answer counts as unhealthy.
func (c *Client) Health(ctx context.Context) error {
	if c.baseURL == "" {
		return errors.New("solar core: url not configured")
	}
	healthCtx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	endpoint, err := url.JoinPath(c.baseURL, "/health")
	if err != nil {
		return fmt.Errorf("solar core: build health url: %w", err)
	}
	req, err := http.NewRequestWithContext(healthCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("solar core: health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("solar core: health check failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("solar core: health check returned http %d", resp.StatusCode)
	}
	return nil
}

// Import delivers one recording summary. The attempt counter and optional
// recipient hint travel in the envelope metadata. On success it returns
// the identifier Solar Core assigned to the record.
func (c *Client) Import(ctx context.Context, payload RecordPayload, recipient string, attempt int) (string, error) {
	if c.baseURL == "" {
		return "", errors.New("solar core: url not configured")
	}
	body := importRequest{
		Source:  envelopeSource,
		Version: envelopeVersion,
		Type:    envelopeType,
		Data:    payload,
		Metadata: importMetadata{
			Recipient: strings.TrimSpace(recipient),
			Attempt:   attempt,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("solar core: encode request: %w", err)
	}
	endpoint, err := url.JoinPath(c.baseURL, "/api/v1/import/record")
	if err != nil {
		return "", fmt.Errorf("solar core: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("solar core: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("solar core: request failed: %w", err)
	}
	defer resp.Body.Close()
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("solar core: read body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("solar core: http %d: %s", resp.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	var decoded importResponse
	if err := json.Unmarshal(responseBody, &decoded); err != nil {
		return "", fmt.Errorf("solar core: decode response: %w", err)
	}
	if decoded.Error != "" {
		return "", fmt.Errorf("solar core: api error: %s", strings.TrimSpace(decoded.Error))
	}
	if decoded.ID != "" {
		return decoded.ID, nil
	}
	return decoded.SolarCoreID, nil
}
