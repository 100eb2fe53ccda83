package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorDim).
	Padding(1, 2)

// RenderBox frames content, with title above it when title is set.
func RenderBox(title, content string) string {
	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, StyleHeader.Render(strings.ToUpper(title)), "", content))
}

const shortIDLen = 8

// TruncID shows the leading characters of a server ID, enough to tell
// rows apart.
func TruncID(id string) string {
	if r := []rune(id); len(r) > shortIDLen {
		id = string(r[:shortIDLen])
	}
	return Dim(id)
}

// Truncate shortens s to width runes, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 {
		return ""
	}
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// PadRight pads s with spaces to width runes, truncating if needed.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	n := len([]rune(s))
	return s + strings.Repeat(" ", width-n)
}

// Percent renders a pin coordinate as "12.5%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// PinTitle returns the task title of p, or a dim placeholder when the
// backend did not send one.
func PinTitle(p domain.Pin) string {
	if t := p.TaskTitle(); t != "" {
		return t
	}
	return Dim("(untitled)")
}

// Placeholder returns s, or a dim "--" when s is empty.
func Placeholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
