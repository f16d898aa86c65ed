// internal/cli/chat.go
package kbqa

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pangyo-qna/kbqa/internal/appconfig"
	"github.com/pangyo-qna/kbqa/internal/assistant"
	"github.com/pangyo-qna/kbqa/internal/tui"
)

var startChat = func(ctx context.Context, cfg *appconfig.Config, a *assistant.Assistant) error {
	return tui.Start(ctx, cfg, a)
}

// chatCmd represents the 'chat' command.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a chat session",
	Long:  `The 'chat' command starts an interactive chat session over the corpus. Tab switches to a browsable list of the corpus questions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		a, err := buildAssistant(cfg)
		if err != nil {
			return err
		}
		return startChat(cmd.Context(), cfg, a)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
