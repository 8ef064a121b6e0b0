package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"-150"}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL, "gemini-2.0-flash")
	text, err := client.Generate(context.Background(), "suggest an adjustment")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if text != "-150" {
		t.Errorf("Generate() = %q, want %q", text, "-150")
	}
	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("x-goog-api-key = %q, want %q", gotKey, "test-key")
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "suggest an adjustment" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestGeminiGenerate_MissingKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewGeminiClient("", server.URL, "gemini-2.0-flash")
	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrExternalService) {
		t.Errorf("expected ErrExternalService, got %v", err)
	}
	if called {
		t.Error("no HTTP request may be made without an api key")
	}
}

func TestGeminiGenerate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL, "gemini-2.0-flash")
	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrExternalService) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error %q does not report the upstream status", err)
	}
}

func TestGeminiGenerate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL, "gemini-2.0-flash")
	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrExternalService) {
		t.Errorf("expected ErrExternalService, got %v", err)
	}
}

func TestGeminiGenerate_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewGeminiClient("test-key", server.URL, "gemini-2.0-flash")
	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrExternalService) {
		t.Errorf("expected ErrExternalService, got %v", err)
	}
}

func TestGeminiGenerate_UnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewGeminiClient("test-key", server.URL, "gemini-2.0-flash")
	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, domain.ErrExternalService) {
		t.Errorf("expected ErrExternalService, got %v", err)
	}
}
