package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const cellGap = 2

// RenderTable lays rows out under headers with only a rule beneath the
// header row. Cells may already be styled; widths are measured on visible
// text. Short rows are padded with empty cells.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	body := lipgloss.NewStyle().PaddingRight(cellGap)
	head := StyleHeader.PaddingRight(cellGap)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return body
		})

	for _, r := range rows {
		cells := make([]string, len(headers))
		copy(cells, r)
		t.Row(cells...)
	}

	return t.Render() + "\n"
}
