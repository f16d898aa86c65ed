// internal/providers/ollama/provider.go
// Package ollama provides a Generator backed by Ollama-compatible HTTP endpoints.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
	"github.com/pangyo-qna/kbqa/internal/logging"
	"github.com/pangyo-qna/kbqa/internal/providers"
)

// Provider implements the providers.Generator interface using the Ollama chat API.
type Provider struct {
	client  *http.Client
	baseURL string
	model   string
	timeout time.Duration
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.Generator.URL), "/"),
		model:   strings.TrimSpace(cfg.Generator.Model),
		timeout: timeout,
	}
}

// chatResponse is the non-streaming /api/chat response.
type chatResponse struct {
	Model   string `json:"model"`
	Message *struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Name identifies the generator in logs.
func (p *Provider) Name() string { return "ollama" }

// Generate issues a single non-streaming chat request.
func (p *Provider) Generate(ctx context.Context, req providers.GenerateRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	messages := []providers.ChatMessage{}
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, providers.ChatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, providers.ChatMessage{Role: "user", Content: req.Message})

	payload := map[string]any{
		"model":    model,
		"messages": messages,
		"stream":   false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	hostID := providers.HostIdentifier(p.baseURL)
	logging.LogRequest("kbqa->ollama", hostID, model, body)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logging.LogRequest("ollama->kbqa", hostID, model, respBody)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: /api/chat returned %s: %s: %w", resp.Status, strings.TrimSpace(string(respBody)), providers.ErrUnexpectedStatus)
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("ollama: decode reply: %v: %w", err, providers.ErrMalformedReply)
	}
	if result.Message == nil || strings.TrimSpace(result.Message.Content) == "" {
		return "", fmt.Errorf("ollama: empty message: %w", providers.ErrMalformedReply)
	}
	return result.Message.Content, nil
}
