// internal/cli/list_commands.go
package kbqa

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/pangyo-qna/kbqa/internal/util"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List every kbqa command with its description",
	Run: func(cmd *cobra.Command, args []string) {
		printCommandTree(cmd.OutOrStdout(), cmd.Root())
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

type commandRow struct {
	label string
	short string
}

// commandRows flattens the tree under c depth-first. Nested commands are
// indented two spaces per level; hidden, help and completion are skipped.
func commandRows(c *cobra.Command, parent string, depth int) []commandRow {
	path := strings.TrimSpace(parent + " " + c.Name())
	rows := []commandRow{{label: strings.Repeat("  ", depth) + path, short: c.Short}}
	for _, sub := range c.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
			continue
		}
		rows = append(rows, commandRows(sub, path, depth+1)...)
	}
	return rows
}

func printCommandTree(out io.Writer, root *cobra.Command) {
	rows := commandRows(root, "", 0)
	width := 0
	for _, r := range rows {
		width = util.Max(width, runewidth.StringWidth(r.label))
	}
	headingColor.Fprintln(out, "Commands and Subcommands:")
	for _, r := range rows {
		fmt.Fprintf(out, "  %s  %s\n", runewidth.FillRight(r.label, width), r.short)
	}
}
