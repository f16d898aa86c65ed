// internal/cli/search.go
package kbqa

import (
	"strings"

	"github.com/spf13/cobra"
)

// searchCmd implements 'search', which prints the ranked entries for a query.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank corpus entries against a query",
	Long:  `The 'search' command ranks the corpus against the query and prints the entries that pass the dynamic threshold, best first.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		a, err := buildAssistant(cfg)
		if err != nil {
			return err
		}

		limit := cfg.SearchLimit
		if cmd.Flags().Changed("limit") {
			limit, _ = cmd.Flags().GetInt("limit")
		}
		query := strings.Join(args, " ")
		results := a.Search(query, limit)

		out := cmd.OutOrStdout()
		if cfg.JSONMode {
			return writeJSON(out, map[string]any{"query": query, "results": results})
		}
		printResults(out, query, results)
		if cfg.Debug {
			dump(out, "policy", a.Engine().Policy())
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("limit", "n", 0, "maximum number of results (default from config)")
	rootCmd.AddCommand(searchCmd)
}
