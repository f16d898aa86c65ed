// internal/cli/list.go
package kbqa

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/pangyo-qna/kbqa/internal/knowledge"
	"github.com/pangyo-qna/kbqa/internal/util"
)

const questionColumnWidth = 60

// listCmd lists corpus entries and groups the other listing subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List corpus entries",
	Long:  `The 'list' command prints the corpus entries, optionally filtered by tag or by a case-insensitive term, and groups the other listing subcommands.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		entries, err := knowledge.Load(cfg.CorpusPath)
		if err != nil {
			return err
		}
		tag, _ := cmd.Flags().GetString("tag")
		term, _ := cmd.Flags().GetString("filter")
		matched := knowledge.Browse(entries, tag, term)

		out := cmd.OutOrStdout()
		if cfg.JSONMode {
			return writeJSON(out, map[string]any{"total": len(matched), "entries": matched})
		}
		printEntries(out, matched)
		return nil
	},
}

// tagsCmd implements 'list tags'.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the distinct corpus tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		entries, err := knowledge.Load(cfg.CorpusPath)
		if err != nil {
			return err
		}
		tags := knowledge.Tags(entries)
		out := cmd.OutOrStdout()
		if cfg.JSONMode {
			return writeJSON(out, tags)
		}
		for _, t := range tags {
			fmt.Fprintln(out, t)
		}
		return nil
	},
}

// printEntries prints one aligned row per entry, widths measured in cells.
func printEntries(out io.Writer, entries []knowledge.Entry) {
	if len(entries) == 0 {
		warnColor.Fprintln(out, "No entries match.")
		return
	}
	idWidth, categoryWidth := len("ID"), len("CATEGORY")
	for _, e := range entries {
		idWidth = util.Max(idWidth, runewidth.StringWidth(e.ID))
		categoryWidth = util.Max(categoryWidth, runewidth.StringWidth(e.Category))
	}

	headingColor.Fprintf(out, "%s  %s  %s\n",
		runewidth.FillRight("ID", idWidth), runewidth.FillRight("CATEGORY", categoryWidth), "QUESTION")
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %s  %s\n",
			runewidth.FillRight(e.ID, idWidth),
			runewidth.FillRight(e.Category, categoryWidth),
			util.TruncateWidth(e.Question, questionColumnWidth))
	}
	mutedColor.Fprintf(out, "%d entries\n", len(entries))
}

func init() {
	listCmd.Flags().String("tag", "", "only entries carrying this tag")
	listCmd.Flags().StringP("filter", "f", "", "only entries whose question, answer or category contains this term")
	listCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(listCmd)
}
