// internal/providers/remote/provider.go
// Package remote provides a Generator backed by the chat backend's JSON API:
// POST {system, message} to /api/chat and read {reply}.
package remote

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

const chatPath = "/api/chat"

// Provider implements providers.Generator against the chat backend.
type Provider struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.Generator.URL), "/"),
		timeout: timeout,
	}
}

type chatRequest struct {
	System  string `json:"system"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply *string `json:"reply"`
}

// Name identifies the generator in logs.
func (p *Provider) Name() string { return "remote" }

// Generate posts the composed message and returns the reply text. A 2xx
// response must declare a JSON content type; anything else, even a JSON body,
// is ErrMalformedReply.
func (p *Provider) Generate(ctx context.Context, req providers.GenerateRequest) (string, error) {
	body, err := json.Marshal(chatRequest{System: req.System, Message: req.Message})
	if err != nil {
		return "", err
	}
	endpoint := p.baseURL + chatPath
	hostID := providers.HostIdentifier(p.baseURL)
	logging.LogRequest("kbqa->remote", hostID, req.Model, body)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("remote: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logging.LogRequest("remote->kbqa", hostID, req.Model, respBody)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("remote: %s returned %s: %w", chatPath, resp.Status, providers.ErrUnexpectedStatus)
	}
	if !providers.IsJSONContentType(resp.Header.Get("Content-Type")) {
		return "", fmt.Errorf("remote: content type %q: %w", resp.Header.Get("Content-Type"), providers.ErrMalformedReply)
	}

	var decoded chatResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("remote: decode reply: %v: %w", err, providers.ErrMalformedReply)
	}
	if decoded.Reply == nil || strings.TrimSpace(*decoded.Reply) == "" {
		return "", fmt.Errorf("remote: missing reply field: %w", providers.ErrMalformedReply)
	}
	return *decoded.Reply, nil
}
