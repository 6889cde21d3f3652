package blobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 120 * time.Second

// Config captures the runtime settings for the blob storage client.
type Config struct {
	BaseURL string
	Token   string
}

// Client uploads files to and fetches files from the blob storage backend.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a blob storage client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	client := &Client{
		cfg: Config{
			BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Token:   strings.TrimSpace(cfg.Token),
		},
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Configured reports whether the backend can accept uploads.
func (c *Client) Configured() bool {
	return c != nil && c.cfg.BaseURL != "" && c.cfg.Token != ""
}

// Handle references a stored object. The URL is publicly fetchable.
type Handle struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Upload stores the stream under pathname and returns the fetchable handle.
// One attempt only; a failure may leave a partial object behind and callers
// must not assume cleanup happened.
func (c *Client) Upload(ctx context.Context, pathname, contentType string, body io.Reader, size int64) (Handle, error) {
	var empty Handle
	if !c.Configured() {
		return empty, errors.New("blobstore upload: backend not configured")
	}
	pathname = strings.TrimLeft(strings.TrimSpace(pathname), "/")
	if pathname == "" {
		return empty, errors.New("blobstore upload: pathname required")
	}
	if body == nil {
		return empty, errors.New("blobstore upload: body required")
	}

	escaped := make([]string, 0, 2)
	for _, part := range strings.Split(pathname, "/") {
		escaped = append(escaped, url.PathEscape(part))
	}
	endpoint := c.cfg.BaseURL + "/" + strings.Join(escaped, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return empty, fmt.Errorf("blobstore upload: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if size > 0 {
		req.ContentLength = size
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("blobstore upload: http error: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("blobstore upload: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, fmt.Errorf("blobstore upload: http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var handle Handle
	if err := json.Unmarshal(payload, &handle); err != nil {
		return empty, fmt.Errorf("blobstore upload: decode response: %w", err)
	}
	if strings.TrimSpace(handle.URL) == "" {
		return empty, errors.New("blobstore upload: response missing object url")
	}
	if handle.Size == 0 {
		handle.Size = size
	}
	return handle, nil
}

// Fetch downloads a stored object fully into memory. Used by the
// transcription orchestrator, which forwards whole payloads rather than
// streaming them.
func (c *Client) Fetch(ctx context.Context, objectURL string) ([]byte, error) {
	if strings.TrimSpace(objectURL) == "" {
		return nil, errors.New("blobstore fetch: url required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, objectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("blobstore fetch: new request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blobstore fetch: http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blobstore fetch: http %d %s", resp.StatusCode, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("blobstore fetch: read body: %w", err)
	}
	return data, nil
}
