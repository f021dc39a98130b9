// Package ollama provides a typed HTTP client for the local Ollama API and a
// liveness prober that can start the server when it is not running.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shlama/shlama/internal/constants"
	"github.com/shlama/shlama/internal/logging"
)

// Client wraps the Ollama HTTP API.
type Client struct {
	BaseURL    string
	requestID  string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL. When verbose is set,
// every HTTP exchange is logged at debug level through the default logger.
func NewClient(baseURL string, verbose bool) *Client {
	transport := http.DefaultTransport
	if verbose {
		transport = logging.NewRoundTripper(http.DefaultTransport, logging.DefaultLogger)
	}
	return &Client{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		requestID: uuid.NewString(),
		httpClient: &http.Client{
			// Generous: a cold generate call includes model load time.
			Timeout:   constants.GenerateTimeout,
			Transport: transport,
		},
	}
}

// GenerateRequest maps to POST /api/generate. Stream is always false here;
// the whole completion arrives in one reply.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

// GenerateResponse is the non-streaming reply from POST /api/generate.
type GenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// Model is a single entry from GET /api/tags.
type Model struct {
	Name       string `json:"name"`
	ModifiedAt string `json:"modified_at"`
	Size       int64  `json:"size"`
	Digest     string `json:"digest"`
}

// errorResponse is the Ollama error body ({"error": "..."}).
type errorResponse struct {
	Error string `json:"error"`
}

// APIError represents a non-2xx reply from the Ollama server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ollama: %s (status %d)", e.Message, e.StatusCode)
}

// Generate sends a single synchronous generation request and returns the full
// completion. There is no retry; a transport failure or timeout is final.
func (c *Client) Generate(ctx context.Context, genReq GenerateRequest) (*GenerateResponse, error) {
	genReq.Stream = false

	body, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", c.requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, respBody)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &genResp, nil
}

// ListModels returns all locally available models via GET /api/tags.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Request-ID", c.requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, respBody)
	}

	var tags struct {
		Models []Model `json:"models"`
	}
	if err := json.Unmarshal(respBody, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return tags.Models, nil
}

// HasModel reports whether name is available locally. Ollama stores untagged
// names under ":latest", so "llama3.2" matches "llama3.2:latest".
func (c *Client) HasModel(ctx context.Context, name string) (bool, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return false, err
	}
	for _, m := range models {
		if m.Name == name || m.Name == name+":latest" {
			return true, nil
		}
	}
	return false, nil
}

func apiError(status int, body []byte) error {
	msg := fmt.Sprintf("status code %d", status)
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		msg = er.Error
	}
	return &APIError{StatusCode: status, Message: msg}
}
