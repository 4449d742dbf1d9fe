package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("expected x-api-key test-key, got %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != "2023-06-01" {
			t.Errorf("expected anthropic-version 2023-06-01, got %q", r.Header.Get("anthropic-version"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %q", r.Header.Get("Content-Type"))
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "문장: \"가을\"" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		if req.MaxTokens != 100 {
			t.Errorf("expected max_tokens 100, got %d", req.MaxTokens)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "4.5점"},
				{"type": "text", "text": "입니다."},
			},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model", WithAPIURL(server.URL), WithMaxTokens(100))

	result, err := c.Complete(context.Background(), "문장: \"가을\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "4.5점입니다." {
		t.Errorf("expected joined text, got %q", result)
	}
	if c.Model() != "test-model" {
		t.Errorf("expected model test-model, got %q", c.Model())
	}
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "rate_limit_error",
				"message": "slow down",
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model", WithAPIURL(server.URL))

	_, err := c.Complete(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for API error response")
	}
}

func TestComplete_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"content":     []any{},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "test-model", WithAPIURL(server.URL))

	_, err := c.Complete(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for empty content response")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("k", "m", WithMaxTokens(0))
	if c.apiURL != defaultAPIURL {
		t.Errorf("expected default api url, got %q", c.apiURL)
	}
	if c.maxTokens != defaultMaxTokens {
		t.Errorf("expected default max tokens, got %d", c.maxTokens)
	}
}
