package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Site palette, adapting to light and dark terminals.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#2f7d32", Dark: "#7ccf7f"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#9a6b00", Dark: "#ffd54f"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#ff6b6b"}
	ColorBlue   = lipgloss.AdaptiveColor{Light: "#1565c0", Dark: "#64b5f6"}
	ColorPurple = lipgloss.AdaptiveColor{Light: "#6a1b9a", Dark: "#ce93d8"}
	ColorDim    = lipgloss.AdaptiveColor{Light: "#8a8a8a", Dark: "#7a7a7a"}
	ColorFg     = lipgloss.AdaptiveColor{Light: "#1f1f1f", Dark: "#e8e8e8"}
	ColorHeader = lipgloss.AdaptiveColor{Light: "#d84315", Dark: "#ff8a3d"} // safety orange
)

func fg(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	StyleGreen  = fg(ColorGreen)
	StyleYellow = fg(ColorYellow)
	StyleRed    = fg(ColorRed)
	StyleBlue   = fg(ColorBlue)
	StylePurple = fg(ColorPurple)
	StyleDim    = fg(ColorDim)
	StyleFg     = fg(ColorFg)
	StyleHeader = fg(ColorHeader).Bold(true)
	StyleBold   = fg(ColorFg).Bold(true)
)

// NoticeKind selects the color of a transient notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice renders a one-line status notice such as "✔ Pin placed".
func Notice(kind NoticeKind, text string) string {
	switch kind {
	case NoticeSuccess:
		return StyleGreen.Render("✔ " + text)
	case NoticeError:
		return StyleRed.Render("✖ " + text)
	default:
		return StyleBlue.Render("● " + text)
	}
}

// PlacementBadge renders the pin placement mode for the plan header.
func PlacementBadge(state string) string {
	switch state {
	case "armed":
		return StyleYellow.Render("▲ PLACING") + Dim(" · move and press enter")
	case "placing":
		return StyleHeader.Render("◎ NEW PIN") + Dim(" · describe the task")
	default:
		return StyleDim.Render("○ VIEWING")
	}
}

// Header upper-cases text and underlines it to its own width.
func Header(text string) string {
	title := strings.ToUpper(text)
	return StyleHeader.Render(title) + "\n" + Dim(strings.Repeat("─", lipgloss.Width(title)))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
