// Package label formats short display labels shared by the CLI and the TUI.
package label

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Progress renders "<name> (<current>/<total>)".
// current is clamped into [1, max(total, 1)]; total is printed as given.
func Progress(name string, current, total int) string {
	upper := total
	if upper < 1 {
		upper = 1
	}
	if current < 1 {
		current = 1
	}
	if current > upper {
		current = upper
	}
	return fmt.Sprintf("%s (%d/%d)", name, current, total)
}

// PadRight pads s with spaces to width terminal cells. Strings already at or
// over width are returned unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}
