package mymemory

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTranslateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("langpair"); got != "en|es" {
			t.Errorf("langpair = %q", got)
		}
		if got := r.URL.Query().Get("de"); got != "ops@example.com" {
			t.Errorf("de = %q", got)
		}
		fmt.Fprint(w, `{"responseStatus":200,"responseData":{"translatedText":"Hola mundo","match":0.85}}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Email: "ops@example.com", MinInterval: time.Millisecond})
	result, err := client.Translate(context.Background(), "Hello world", "en", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if result.TranslatedText != "Hola mundo" || result.Match != 0.85 {
		t.Fatalf("result = %+v", result)
	}
}

func TestTranslateQuotedStatusError(t *testing.T) {
	// The service reports failures with responseStatus as a quoted string.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"responseStatus":"403","responseDetails":"invalid language pair"}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, MinInterval: time.Millisecond})
	if _, err := client.Translate(context.Background(), "Hello", "en", "zz"); err == nil {
		t.Fatal("expected api error")
	}
}

func TestTranslateValidation(t *testing.T) {
	client := NewClient(Config{MinInterval: time.Millisecond})
	if _, err := client.Translate(context.Background(), "  ", "en", "es"); err == nil {
		t.Fatal("expected error for empty text")
	}
	if _, err := client.Translate(context.Background(), "Hello", "", "es"); err == nil {
		t.Fatal("expected error for missing language pair")
	}
}

func TestTranslatePacesConsecutiveCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"responseStatus":200,"responseData":{"translatedText":"hola","match":0.5}}`)
	}))
	defer server.Close()

	interval := 30 * time.Millisecond
	client := NewClient(Config{BaseURL: server.URL, MinInterval: interval})

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := client.Translate(context.Background(), "Hello", "en", "es"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Fatalf("three calls completed in %v, want at least %v of pacing", elapsed, 2*interval)
	}
}

func TestTranslatePacingHonorsCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"responseStatus":200,"responseData":{"translatedText":"hola","match":0.5}}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, MinInterval: time.Minute})
	if _, err := client.Translate(context.Background(), "Hello", "en", "es"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := client.Translate(ctx, "Hello again", "en", "es"); err == nil {
		t.Fatal("expected context error while waiting for the pacing window")
	}
}
