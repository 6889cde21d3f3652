package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompleteReturnsMessageContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("authorization = %q", auth)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"  Hola  "},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	content, err := client.Complete(context.Background(), CompletionRequest{
		Model:        "gpt-4o",
		SystemPrompt: "translate",
		UserPrompt:   "Hello",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "Hola" {
		t.Fatalf("content = %q, want Hola", content)
	}
}

func TestCompleteToleratesDeltaAndTextFields(t *testing.T) {
	cases := []string{
		`{"choices":[{"delta":{"content":"Hola"},"finish_reason":"stop"}]}`,
		`{"choices":[{"text":"Hola","finish_reason":"stop"}]}`,
	}
	for _, body := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		}))
		client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
		content, err := client.Complete(context.Background(), CompletionRequest{
			Model: "gpt-4o", SystemPrompt: "s", UserPrompt: "u",
		})
		server.Close()
		if err != nil {
			t.Fatalf("Complete(%s): %v", body, err)
		}
		if content != "Hola" {
			t.Fatalf("content = %q for %s", content, body)
		}
	}
}

func TestCompleteEmptyContentError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"content":""},"finish_reason":"length"}]}`)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), CompletionRequest{
		Model: "gpt-4o", SystemPrompt: "s", UserPrompt: "u",
	})
	if err == nil {
		t.Fatal("expected error for empty content")
	}
	if !strings.Contains(err.Error(), "length") {
		t.Fatalf("error should carry finish_reason: %v", err)
	}
}

func TestCompleteStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), CompletionRequest{
		Model: "gpt-4o", SystemPrompt: "s", UserPrompt: "u",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsStatus(err, http.StatusTooManyRequests) {
		t.Fatalf("IsStatus(429) = false for %v", err)
	}
	if IsStatus(err, http.StatusInternalServerError) {
		t.Fatal("IsStatus matched the wrong code")
	}
}

func TestCompleteValidation(t *testing.T) {
	client := NewClient(Config{APIKey: "sk-test"})
	if _, err := client.Complete(context.Background(), CompletionRequest{Model: "m", UserPrompt: "u"}); err == nil {
		t.Fatal("expected error without system prompt")
	}
	unconfigured := NewClient(Config{})
	if _, err := unconfigured.Complete(context.Background(), CompletionRequest{Model: "m", SystemPrompt: "s", UserPrompt: "u"}); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestTranscribeSendsVerboseMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("response_format = %q", got)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q", got)
		}
		if got := r.FormValue("language"); got != "es" {
			t.Errorf("language = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "clip.mp4" {
			t.Errorf("filename = %q", header.Filename)
		}
		fmt.Fprint(w, `{"text":"hi","language":"spanish","duration":1.5,"segments":[{"id":0,"start":0,"end":1.5,"text":"hi","avg_logprob":-0.3}]}`)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
	transcription, err := client.Transcribe(context.Background(), "clip.mp4", strings.NewReader("bytes"), "es")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if transcription.Language != "spanish" || transcription.Duration != 1.5 {
		t.Fatalf("transcription = %+v", transcription)
	}
	if len(transcription.Segments) != 1 || transcription.Segments[0].AvgLogProb != -0.3 {
		t.Fatalf("segments = %+v", transcription.Segments)
	}
}
