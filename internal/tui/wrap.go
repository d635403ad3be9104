package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapItems joins items with sep, breaking lines before they exceed width.
func wrapItems(items []string, sep string, width int) string {
	if width <= 0 {
		return strings.Join(items, sep)
	}
	var out strings.Builder
	lineWidth := 0
	sepWidth := runewidth.StringWidth(sep)
	for _, item := range items {
		itemWidth := runewidth.StringWidth(item)
		if lineWidth > 0 && lineWidth+sepWidth+itemWidth > width {
			out.WriteByte('\n')
			lineWidth = 0
		}
		if lineWidth > 0 {
			out.WriteString(sep)
			lineWidth += sepWidth
		}
		out.WriteString(item)
		lineWidth += itemWidth
	}
	return out.String()
}
