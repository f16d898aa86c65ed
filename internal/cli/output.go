// internal/cli/output.go
package kbqa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/pangyo-qna/kbqa/internal/search"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	scoreColor   = color.New(color.FgGreen)
	mutedColor   = color.New(color.FgHiBlack)
	warnColor    = color.New(color.FgYellow)
)

// writeJSON prints v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResults renders ranked results as numbered blocks.
func printResults(out io.Writer, query string, results []search.Result) {
	if len(results) == 0 {
		warnColor.Fprintf(out, "No matching entries for %q.\n", query)
		return
	}
	for i, r := range results {
		headingColor.Fprintf(out, "%d. %s", i+1, r.Entry.Question)
		scoreColor.Fprintf(out, " [%d]\n", r.Score)
		fmt.Fprintf(out, "   %s (%s)\n", r.Entry.Category, r.Entry.ID)
		if len(r.MatchedTokens) > 0 {
			mutedColor.Fprintf(out, "   matched: %s\n", strings.Join(r.MatchedTokens, ", "))
		}
		if len(r.Entry.Sources) > 0 {
			mutedColor.Fprintf(out, "   sources: %s\n", strings.Join(r.Entry.Sources, ", "))
		}
	}
}

// dump pretty-prints v for --debug output.
func dump(out io.Writer, label string, v any) {
	mutedColor.Fprintf(out, "--- %s ---\n", label)
	pp.Fprintln(out, v)
}

// commandContext returns the command's context, or Background when run
// outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
