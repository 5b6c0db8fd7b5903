package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the HTTP timeout for non-streaming requests.
	DefaultTimeout = 30 * time.Second

	// DefaultStreamTimeout bounds an entire streaming response. A hung
	// fragment read otherwise blocks until the user interrupts it.
	DefaultStreamTimeout = 5 * time.Minute
)

// Client is the interface for talking to one provider endpoint.
type Client interface {
	// ChatStream sends a streaming chat request and returns a
	// StreamReader over the response fragments.
	ChatStream(ctx context.Context, req *ChatRequest) (*StreamReader, error)

	// ListModels retrieves the models the provider advertises.
	ListModels(ctx context.Context) ([]Model, error)
}

// Config contains configuration for the API client.
type Config struct {
	// BaseURL is the provider's OpenAI-compatible base URL, without a
	// trailing slash (e.g. "https://api.openai.com/v1").
	BaseURL string

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// Timeout is the HTTP timeout for non-streaming requests.
	// Defaults to DefaultTimeout.
	Timeout time.Duration

	// StreamTimeout is the timeout for streaming requests.
	// Defaults to DefaultStreamTimeout.
	StreamTimeout time.Duration

	// HTTPClient is an optional custom HTTP client for non-streaming
	// requests. If nil, a new client is created.
	HTTPClient *http.Client
}

// NewClient creates a client for the endpoint described by cfg.
func NewClient(cfg Config) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.StreamTimeout == 0 {
		cfg.StreamTimeout = DefaultStreamTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		// Streaming responses outlive the regular timeout.
		streamClient: &http.Client{Timeout: cfg.StreamTimeout},
	}
}

type client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
}

func (c *client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

// checkStatus converts a non-2xx response into an APIError, consuming
// and closing the body. Transient provider failures are surfaced to the
// caller unchanged; this client performs no retries.
func checkStatus(resp *http.Response) error {
	if isSuccessStatus(resp.StatusCode) {
		return nil
	}

	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()

	if readErr != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to read error body: %v", readErr),
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

func (c *client) ChatStream(ctx context.Context, req *ChatRequest) (*StreamReader, error) {
	chatReq := *req
	chatReq.Stream = true

	jsonBody, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	// The StreamReader owns resp.Body from here on.
	return NewStreamReader(resp.Body), nil
}

func (c *client) ListModels(ctx context.Context) ([]Model, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var modelsResp modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return modelsResp.Data, nil
}
