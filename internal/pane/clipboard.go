package pane

import (
	"strings"

	"github.com/atotto/clipboard"
)

// writeClipboard sends text to the system clipboard.
func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// joinPaths formats yanked paths one per line.
func joinPaths(paths []string) string {
	return strings.Join(paths, "\n")
}
