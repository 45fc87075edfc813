package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// SafeIcon pads an icon so wide glyphs do not swallow the next character:
// one space after single-cell icons, two after double-cell ones.
func SafeIcon(icon string) string {
	spaces := 1
	if runewidth.StringWidth(icon) >= 2 {
		spaces = 2
	}
	return icon + strings.Repeat(" ", spaces)
}

// IconText formats an icon followed by text.
func IconText(icon, text string) string {
	return fmt.Sprintf("%s%s", SafeIcon(icon), text)
}
