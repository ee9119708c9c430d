package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cadre-sh/cadre/internal/annotate"
	"github.com/cadre-sh/cadre/internal/config"
	"github.com/cadre-sh/cadre/internal/errors"
	"github.com/cadre-sh/cadre/internal/logger"
)

// Client talks to the knowledge service that backs the model-facing tools and
// the annotation mapping feed.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client from config
func NewClient(cfg *config.KnowledgeConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// invokeRequest is the body for a tool invocation
type invokeRequest struct {
	Input map[string]any `json:"input"`
}

// invokeResponse is the service's answer to a tool invocation
type invokeResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// Invoke calls a named tool on the knowledge service and returns its text
// content
func (c *Client) Invoke(ctx context.Context, name string, input map[string]any) (string, error) {
	url := fmt.Sprintf("%s/v1/tools/%s:invoke", c.baseURL, name)

	jsonBody, err := json.Marshal(invokeRequest{Input: input})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	body, status, err := c.do(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", errors.ToolInvocationFailed(name, err)
	}
	if status != http.StatusOK {
		return "", errors.ToolInvocationFailed(name, fmt.Errorf("service returned status %d: %s", status, string(body)))
	}

	var result invokeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", errors.ToolInvocationFailed(name, fmt.Errorf("failed to parse response: %w", err))
	}
	if result.Error != "" {
		return "", errors.ToolInvocationFailed(name, fmt.Errorf("%s", result.Error))
	}

	return result.Content, nil
}

// mappingsResponse is the annotation mapping feed
type mappingsResponse struct {
	Mappings []annotate.Mapping `json:"mappings"`
}

// FetchMappings pulls the current annotation mappings from the service. It
// implements annotate.Source.
func (c *Client) FetchMappings(ctx context.Context) ([]annotate.Mapping, error) {
	url := fmt.Sprintf("%s/v1/annotations/mappings", c.baseURL)

	body, status, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.MappingFetchFailed(err)
	}
	if status != http.StatusOK {
		return nil, errors.MappingFetchFailed(fmt.Errorf("service returned status %d", status))
	}

	var result mappingsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.MappingFetchFailed(fmt.Errorf("failed to parse response: %w", err))
	}

	logger.Debug("fetched %d annotation mappings", len(result.Mappings))
	return result.Mappings, nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return data, resp.StatusCode, nil
}
