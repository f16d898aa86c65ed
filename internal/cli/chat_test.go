// internal/cli/chat_test.go
package kbqa

import (
	"context"
	"testing"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
	"github.com/pangyo-qna/kbqa/internal/assistant"
)

// TestChatCmd ensures the chat command loads the configuration, builds an
// assistant over the corpus and hands both to the terminal UI.
func TestChatCmd(t *testing.T) {
	configPath := writeTempFile(t, "config.json", `{"searchLimit": 2, "maxHistoryTurns": 4}`)

	originalStartChat := startChat
	defer func() { startChat = originalStartChat }()

	startCalled := false
	var receivedCfg *appconfig.Config
	var receivedAssistant *assistant.Assistant
	startChat = func(ctx context.Context, cfg *appconfig.Config, a *assistant.Assistant) error {
		startCalled = true
		receivedCfg = cfg
		receivedAssistant = a
		return nil
	}

	if _, err := executeCommand(t, "chat", "--config", configPath); err != nil {
		t.Fatalf("chat returned error: %v", err)
	}

	if !startCalled {
		t.Fatal("expected startChat to be invoked")
	}
	if receivedCfg == nil || receivedCfg != getConfig() {
		t.Fatal("expected startChat to receive the loaded configuration")
	}
	if receivedCfg.SearchLimit != 2 || receivedCfg.MaxHistoryTurns != 4 {
		t.Fatalf("unexpected config values: %+v", receivedCfg)
	}
	if receivedAssistant == nil || receivedAssistant.Engine().Index().Len() != 12 {
		t.Fatal("expected an assistant over the embedded corpus")
	}
}
