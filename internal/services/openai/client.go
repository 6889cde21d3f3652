package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultHTTPTimeout = 300 * time.Second

// Config captures the runtime settings required to talk to the provider.
type Config struct {
	APIKey         string
	BaseURL        string
	WhisperModel   string
	TimeoutSeconds int
}

// Client wraps the chat completion and audio transcription APIs.
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

// NewClient constructs a provider client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			WhisperModel:   strings.TrimSpace(cfg.WhisperModel),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "https://api.openai.com/v1"
	}
	if client.cfg.WhisperModel == "" {
		client.cfg.WhisperModel = "whisper-1"
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

// Configured reports whether the client holds an API key.
func (c *Client) Configured() bool {
	return c != nil && c.cfg.APIKey != ""
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("openai request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// IsStatus reports whether err carries the given upstream HTTP status.
func IsStatus(err error, status int) bool {
	var statusErr *httpStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == status
}

type emptyContentError struct {
	Op           string
	FinishReason string
}

func (e *emptyContentError) Error() string {
	return fmt.Sprintf("%s: empty content (finish_reason=%q)", e.Op, e.FinishReason)
}

// CompletionRequest describes a single chat completion call.
type CompletionRequest struct {
	Model            string
	SystemPrompt     string
	UserPrompt       string
	MaxTokens        int
	Temperature      float64
	PresencePenalty  float64
	FrequencyPenalty float64
}

// Complete issues a chat completion request and returns the trimmed message
// content produced by the model.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if strings.TrimSpace(req.SystemPrompt) == "" {
		return "", errors.New("openai complete: system prompt required")
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		return "", errors.New("openai complete: user prompt required")
	}
	if c.cfg.APIKey == "" {
		return "", errors.New("openai complete: api key required")
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		return "", errors.New("openai complete: model required")
	}

	payload := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:        req.MaxTokens,
		Temperature:      req.Temperature,
		PresencePenalty:  req.PresencePenalty,
		FrequencyPenalty: req.FrequencyPenalty,
	}

	completion, err := c.sendChatRequest(ctx, payload)
	if err != nil {
		return "", err
	}
	content, finishReason := extractCompletionPayload(completion)
	if content == "" {
		if len(completion.Choices) == 0 {
			return "", errors.New("openai complete: empty choices")
		}
		return "", &emptyContentError{Op: "openai complete", FinishReason: finishReason}
	}
	return content, nil
}

type chatCompletionRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens,omitempty"`
	Temperature      float64       `json:"temperature"`
	PresencePenalty  float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64       `json:"frequency_penalty,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
		// Some gateways return the streaming schema (delta) even when
		// stream=false, so tolerate it as a fallback.
		Delta chatCompletionMessage `json:"delta"`
		// Legacy "text" field (completion-style responses).
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type chatCompletionMessage struct {
	Content string `json:"content"`
	Refusal string `json:"refusal"`
}

func extractCompletionPayload(completion chatCompletionResponse) (string, string) {
	var finishReason string
	for _, choice := range completion.Choices {
		if finishReason == "" {
			finishReason = strings.TrimSpace(choice.FinishReason)
		}
		if content := firstNonEmpty(
			choice.Message.Content,
			choice.Delta.Content,
			choice.Text,
		); content != "" {
			return content, finishReason
		}
	}
	return "", finishReason
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func (c *Client) sendChatRequest(ctx context.Context, payload chatCompletionRequest) (chatCompletionResponse, error) {
	var completion chatCompletionResponse
	encoded, err := json.Marshal(payload)
	if err != nil {
		return completion, fmt.Errorf("openai request: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(encoded))
	if err != nil {
		return completion, fmt.Errorf("openai request: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return completion, fmt.Errorf("openai request: http error: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return completion, fmt.Errorf("openai request: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return completion, &httpStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return completion, fmt.Errorf("openai request: decode response: %w", err)
	}
	if completion.Error != nil {
		return completion, fmt.Errorf("openai request: api error: %s", strings.TrimSpace(completion.Error.Message))
	}
	return completion, nil
}

// TranscriptionSegment is one timed speech unit from the verbose response.
type TranscriptionSegment struct {
	ID           int     `json:"id"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Text         string  `json:"text"`
	AvgLogProb   float64 `json:"avg_logprob"`
	NoSpeechProb float64 `json:"no_speech_prob"`
}

// Transcription is the provider's verbose_json transcription payload.
type Transcription struct {
	Text     string                 `json:"text"`
	Language string                 `json:"language"`
	Duration float64                `json:"duration"`
	Segments []TranscriptionSegment `json:"segments"`
}

// Transcribe uploads the media stream to the transcription endpoint requesting
// the verbose response format. The provider handles media decoding; video
// containers are accepted as-is. A language hint is forwarded only when
// non-empty; callers are responsible for checking provider support first.
func (c *Client) Transcribe(ctx context.Context, filename string, media io.Reader, language string) (Transcription, error) {
	var empty Transcription
	if c.cfg.APIKey == "" {
		return empty, errors.New("openai transcribe: api key required")
	}
	if media == nil {
		return empty, errors.New("openai transcribe: media stream required")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", c.cfg.WhisperModel); err != nil {
		return empty, fmt.Errorf("openai transcribe: write model field: %w", err)
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return empty, fmt.Errorf("openai transcribe: write format field: %w", err)
	}
	if language = strings.TrimSpace(language); language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return empty, fmt.Errorf("openai transcribe: write language field: %w", err)
		}
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return empty, fmt.Errorf("openai transcribe: create file part: %w", err)
	}
	if _, err := io.Copy(part, media); err != nil {
		return empty, fmt.Errorf("openai transcribe: copy media: %w", err)
	}
	if err := mw.Close(); err != nil {
		return empty, fmt.Errorf("openai transcribe: close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/audio/transcriptions", &body)
	if err != nil {
		return empty, fmt.Errorf("openai transcribe: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("openai transcribe: http error: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("openai transcribe: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, &httpStatusError{StatusCode: resp.StatusCode, Body: string(payload)}
	}
	var transcription Transcription
	if err := json.Unmarshal(payload, &transcription); err != nil {
		return empty, fmt.Errorf("openai transcribe: decode response: %w", err)
	}
	return transcription, nil
}
