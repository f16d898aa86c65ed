// internal/cli/validate.go
package kbqa

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pangyo-qna/kbqa/internal/knowledge"
)

// validateCmd implements 'validate', which checks a corpus file against the
// corpus schema and entry rules without serving it.
var validateCmd = &cobra.Command{
	Use:   "validate <corpus-file>",
	Short: "Validate a corpus file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := knowledge.Load(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if getConfig().JSONMode {
			return writeJSON(out, map[string]any{
				"file":    args[0],
				"entries": len(entries),
				"tags":    knowledge.Tags(entries),
			})
		}
		scoreColor.Fprint(out, "OK ")
		fmt.Fprintf(out, "%s: %d entries, %d tags\n", args[0], len(entries), len(knowledge.Tags(entries)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
