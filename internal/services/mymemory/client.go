package mymemory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultBaseURL     = "https://api.mymemory.translated.net"
	defaultHTTPTimeout = 15 * time.Second
	defaultMinInterval = 100 * time.Millisecond
)

// Config captures the runtime settings for the MyMemory client.
type Config struct {
	BaseURL string
	// Email is the optional contact address forwarded to the service; it
	// raises the free daily quota.
	Email string
	// MinInterval is the pacing delay between consecutive calls.
	MinInterval time.Duration
}

// Client calls the MyMemory translation API.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu       sync.Mutex
	lastCall time.Time
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

// NewClient constructs a MyMemory client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	client := &Client{
		cfg: Config{
			BaseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Email:       strings.TrimSpace(cfg.Email),
			MinInterval: cfg.MinInterval,
		},
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.MinInterval <= 0 {
		client.cfg.MinInterval = defaultMinInterval
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Result is a single translation response.
type Result struct {
	TranslatedText string
	// Match is the service's own quality score for the returned memory entry,
	// in [0, 1].
	Match float64
}

type apiResponse struct {
	ResponseStatus  json.Number `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
	ResponseData    struct {
		TranslatedText string  `json:"translatedText"`
		Match          float64 `json:"match"`
	} `json:"responseData"`
}

// Translate requests a single translation. Callers inside a batch are paced
// so consecutive requests respect the free tier's rate limits.
func (c *Client) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (Result, error) {
	var empty Result
	if strings.TrimSpace(text) == "" {
		return empty, errors.New("mymemory translate: text required")
	}
	if strings.TrimSpace(sourceLanguage) == "" || strings.TrimSpace(targetLanguage) == "" {
		return empty, errors.New("mymemory translate: language pair required")
	}

	if err := c.waitForWindow(ctx); err != nil {
		return empty, err
	}
	defer c.markCall()

	query := url.Values{}
	query.Set("q", text)
	query.Set("langpair", sourceLanguage+"|"+targetLanguage)
	if c.cfg.Email != "" {
		query.Set("de", c.cfg.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/get?"+query.Encode(), nil)
	if err != nil {
		return empty, fmt.Errorf("mymemory request: new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("mymemory request: http error: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("mymemory request: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return empty, fmt.Errorf("mymemory request: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return empty, fmt.Errorf("mymemory request: decode response: %w", err)
	}
	// responseStatus arrives as a number or a quoted string depending on the
	// failure mode, hence json.Number.
	if payload.ResponseStatus.String() != "200" {
		detail := strings.TrimSpace(payload.ResponseDetails)
		if detail == "" {
			detail = "status " + payload.ResponseStatus.String()
		}
		return empty, fmt.Errorf("mymemory request: api error: %s", detail)
	}
	translated := strings.TrimSpace(payload.ResponseData.TranslatedText)
	if translated == "" {
		return empty, errors.New("mymemory request: empty translation")
	}
	return Result{TranslatedText: translated, Match: payload.ResponseData.Match}, nil
}

func (c *Client) waitForWindow(ctx context.Context) error {
	c.mu.Lock()
	lastCall := c.lastCall
	c.mu.Unlock()
	if lastCall.IsZero() {
		return nil
	}
	elapsed := time.Since(lastCall)
	if elapsed >= c.cfg.MinInterval {
		return nil
	}
	return sleepWithContext(ctx, c.cfg.MinInterval-elapsed)
}

func (c *Client) markCall() {
	c.mu.Lock()
	c.lastCall = time.Now()
	c.mu.Unlock()
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
