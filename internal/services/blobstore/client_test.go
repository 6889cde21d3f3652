package blobstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadReturnsHandle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %q", r.Method)
		}
		if r.URL.Path != "/uploads/clip.mp4" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token-1" {
			t.Errorf("authorization = %q", auth)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "media bytes" {
			t.Errorf("body = %q", body)
		}
		fmt.Fprintf(w, `{"url":"https://blobs.example/uploads/clip.mp4","pathname":"uploads/clip.mp4","contentType":"video/mp4"}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Token: "token-1"})
	handle, err := client.Upload(context.Background(), "uploads/clip.mp4", "video/mp4", strings.NewReader("media bytes"), 11)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if handle.URL != "https://blobs.example/uploads/clip.mp4" {
		t.Fatalf("URL = %q", handle.URL)
	}
	if handle.Size != 11 {
		t.Fatalf("Size = %d, want backfilled 11", handle.Size)
	}
}

func TestUploadRequiresConfiguration(t *testing.T) {
	client := NewClient(Config{})
	if client.Configured() {
		t.Fatal("empty config reported as configured")
	}
	if _, err := client.Upload(context.Background(), "p", "t", strings.NewReader("x"), 1); err == nil {
		t.Fatal("expected error for unconfigured backend")
	}
}

func TestUploadSingleAttemptOnFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "storage offline", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Token: "t"})
	if _, err := client.Upload(context.Background(), "p", "t", strings.NewReader("x"), 1); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want exactly 1 (no retry)", attempts)
	}
}

func TestFetchDownloadsObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("object bytes"))
	}))
	defer server.Close()

	client := NewClient(Config{})
	data, err := client.Fetch(context.Background(), server.URL+"/uploads/clip.mp4")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "object bytes" {
		t.Fatalf("data = %q", data)
	}
}

func TestFetchPropagatesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(Config{})
	if _, err := client.Fetch(context.Background(), server.URL+"/missing"); err == nil {
		t.Fatal("expected error for 404")
	}
}
