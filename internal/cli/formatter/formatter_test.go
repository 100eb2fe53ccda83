package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"çalışma", 4, "çal…"},
		{"x", 0, ""},
		{"xy", 1, "…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.width), "%q/%d", tt.in, tt.width)
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcd…", PadRight("abcdefgh", 5))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{
		{StyleGreen.Render("long value"), "x"},
		{"s", "y"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatPinList(t *testing.T) {
	plan := &domain.Plan{ID: "p1", Code: "A-101"}
	pins := []domain.Pin{
		{ID: "1", Position: domain.Position{X: 12.5, Y: 40}, Task: &domain.TaskRef{ID: "t1", Title: "Paint wall"}},
		{ID: "2", Position: domain.Position{X: 80, Y: 5}},
	}

	out := FormatPinList(plan, pins, "")
	assert.Contains(t, out, "PINS · A-101")
	assert.Contains(t, out, "Paint wall")
	assert.Contains(t, out, "12.5%")
	assert.Contains(t, out, "(untitled)")

	empty := FormatPinList(plan, nil, "roof")
	assert.Contains(t, empty, "No pins match.")
	assert.Contains(t, empty, `"ROOF"`)
}

func TestFormatPlanList(t *testing.T) {
	out := FormatPlanList([]*domain.Plan{{ID: "0123456789", Code: "A-1", Name: "Ground floor"}})
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "Ground floor")

	assert.Contains(t, FormatPlanList(nil), "No plans")
}

func TestFormatTaskList(t *testing.T) {
	out := FormatTaskList([]*domain.Task{{ID: "t1", Title: "Electrical", Category: "MEP"}})
	assert.Contains(t, out, "Electrical")
	assert.Contains(t, out, "MEP")
	assert.Contains(t, out, "--")
}

func TestFormatSession(t *testing.T) {
	out := FormatSession(nil, "")
	assert.Contains(t, out, "not signed in")

	out = FormatSession(&domain.Session{Token: "x", User: domain.User{Name: "Ada"}}, "co-1")
	assert.Contains(t, out, "co-1")
	assert.Contains(t, out, "Ada")
}

func TestNotice(t *testing.T) {
	assert.Contains(t, Notice(NoticeSuccess, "Pin placed"), "✔ Pin placed")
	assert.Contains(t, Notice(NoticeError, "failed"), "✖ failed")
	assert.Contains(t, Notice(NoticeInfo, "hi"), "● hi")
}
