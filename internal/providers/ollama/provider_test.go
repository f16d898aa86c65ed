// internal/providers/ollama/provider_test.go
package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
	"github.com/pangyo-qna/kbqa/internal/providers"
)

func newProvider(url string) *Provider {
	cfg := &appconfig.Config{
		TimeoutSeconds: 5,
		Generator:      appconfig.GeneratorConfig{Type: appconfig.GeneratorOllama, URL: url + "/", Model: "test-model"},
	}
	return New(cfg)
}

// TestProviderGenerate verifies that a single non-streaming request is made
// and the message content is returned.
func TestProviderGenerate(t *testing.T) {
	t.Parallel()

	var capturedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		capturedBody = body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"test-model","message":{"role":"assistant","content":"final"},"done":true}`))
	}))
	defer server.Close()

	reply, err := newProvider(server.URL).Generate(context.Background(), providers.GenerateRequest{System: "sys", Message: "hello"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if reply != "final" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	var payload struct {
		Model    string                  `json:"model"`
		Stream   bool                    `json:"stream"`
		Messages []providers.ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(capturedBody, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Stream {
		t.Fatal("expected stream=false")
	}
	if payload.Model != "test-model" {
		t.Fatalf("expected configured model, got %q", payload.Model)
	}
	if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" || payload.Messages[1].Content != "hello" {
		t.Fatalf("unexpected messages: %+v", payload.Messages)
	}
}

func TestProviderGenerateErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"non-200", http.StatusInternalServerError, `{"error":"boom"}`, providers.ErrUnexpectedStatus},
		{"not json", http.StatusOK, `<html>`, providers.ErrMalformedReply},
		{"no message", http.StatusOK, `{"done":true}`, providers.ErrMalformedReply},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := newProvider(server.URL).Generate(context.Background(), providers.GenerateRequest{Message: "hi"})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestProviderName(t *testing.T) {
	if got := newProvider("http://localhost:11434").Name(); got != "ollama" {
		t.Fatalf("unexpected name %q", got)
	}
}
