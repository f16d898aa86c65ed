// internal/cli/answer.go
package kbqa

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// answerCmd implements 'answer', which prints the reply to a single question.
var answerCmd = &cobra.Command{
	Use:   "answer <question>",
	Short: "Answer a question from the corpus",
	Long: `The 'answer' command replies to one question. With a generator configured the reply is generated from the best matching entries and falls back to the local answer on failure; --local always uses the local answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		a, err := buildAssistant(cfg)
		if err != nil {
			return err
		}

		question := strings.Join(args, " ")
		out := cmd.OutOrStdout()
		local, _ := cmd.Flags().GetBool("local")
		if local {
			answer := a.Answer(question)
			if cfg.JSONMode {
				return writeJSON(out, map[string]string{"question": question, "reply": answer})
			}
			fmt.Fprintln(out, answer)
			return nil
		}

		resp := a.Reply(commandContext(cmd), question, nil)
		if cfg.JSONMode {
			return writeJSON(out, resp)
		}
		fmt.Fprintln(out, resp.Reply)
		if cfg.Debug {
			dump(out, "response", resp)
		}
		return nil
	},
}

func init() {
	answerCmd.Flags().Bool("local", false, "skip the generator and use the local answer")
	rootCmd.AddCommand(answerCmd)
}
