package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// apiClient talks to a running captiond over its JSON API.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 330 * time.Second},
	}
}

type apiError struct {
	Status     int
	Message    string
	Details    string
	Suggestion string
}

func (e *apiError) Error() string {
	msg := fmt.Sprintf("captiond: %s (http %d)", e.Message, e.Status)
	if e.Suggestion != "" {
		msg += ": " + e.Suggestion
	}
	return msg
}

func (c *apiClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *apiClient) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *apiClient) sendFile(ctx context.Context, path, filePath string, fields map[string]string, out any) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := mw.WriteField(key, value); err != nil {
			return fmt.Errorf("write field %q: %w", key, err)
		}
	}
	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	file, err := openFile(filePath)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}

func (c *apiClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("captiond unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var failure struct {
			Error      string `json:"error"`
			Details    string `json:"details"`
			Suggestion string `json:"suggestion"`
		}
		if err := json.Unmarshal(payload, &failure); err != nil || failure.Error == "" {
			failure.Error = strings.TrimSpace(string(payload))
		}
		return &apiError{
			Status:     resp.StatusCode,
			Message:    failure.Error,
			Details:    failure.Details,
			Suggestion: failure.Suggestion,
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
