package components

import "github.com/prostheticlab/myoctl/internal/ui/theme"

// Notice renders the last operator-facing failure, or nothing.
func Notice(text string) string {
	if text == "" {
		return ""
	}
	return theme.Notice.Render("⚠ " + text)
}
