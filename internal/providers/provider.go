// internal/providers/provider.go

// Package providers defines the boundary to external text generators. A
// generator receives a system prompt plus one composed message and returns a
// single reply string; any failure is reported as an error so the caller can
// fall back to the local answer.
package providers

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrUnexpectedStatus is returned when the generator answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status from generator")
	// ErrMalformedReply is returned when the body is not JSON or lacks the reply text.
	ErrMalformedReply = errors.New("malformed generator reply")
)

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest is one generation call.
type GenerateRequest struct {
	System  string
	Message string
	Model   string
}

// Generator is implemented by every remote text generator.
type Generator interface {
	// Name identifies the generator in logs.
	Name() string
	// Generate returns the generated reply for req.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// HostIdentifier returns the host part of rawURL for logging, or rawURL itself.
func HostIdentifier(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(rawURL)
	}
	return u.Host
}

// IsJSONContentType reports whether a Content-Type header announces JSON.
func IsJSONContentType(header string) bool {
	return strings.Contains(strings.ToLower(header), "application/json")
}
