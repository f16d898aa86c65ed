// Package util holds terminal text helpers. Widths are measured in display
// cells, so wide Hangul runes count as two.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateWidth truncates text to at most maxCells display cells,
// appending an ellipsis if truncated.
func TruncateWidth(text string, maxCells int) string {
	if runewidth.StringWidth(text) <= maxCells {
		return text
	}
	return runewidth.Truncate(text, maxCells, "…")
}

// WrapToWidth wraps text to width display cells, breaking words that do not
// fit on a line of their own.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		curWidth := 0
		for _, w := range words {
			wWidth := runewidth.StringWidth(w)
			if curWidth > 0 && curWidth+1+wWidth <= width {
				cur.WriteByte(' ')
				cur.WriteString(w)
				curWidth += 1 + wWidth
				continue
			}
			if curWidth > 0 {
				out = append(out, cur.String())
				cur.Reset()
				curWidth = 0
			}
			for wWidth > width {
				head := splitAtWidth(w, width)
				out = append(out, head)
				w = w[len(head):]
				wWidth = runewidth.StringWidth(w)
			}
			cur.WriteString(w)
			curWidth = wWidth
		}
		if cur.Len() > 0 {
			out = append(out, cur.String())
		}
	}
	return strings.Join(out, "\n")
}

// splitAtWidth returns the longest prefix of s that fits in width cells,
// always at least one rune.
func splitAtWidth(s string, width int) string {
	used := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if used+rw > width && i > 0 {
			return s[:i]
		}
		used += rw
	}
	return s
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
