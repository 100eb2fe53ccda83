package cli

import (
	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Help & Support

## About

planpin shows the floor plans of your construction projects and the tasks
pinned on them. Every pin marks the spot a task refers to.

## Frequently asked questions

**How do I pin a task?**
Open a plan, press **p** to turn on placement, move the cursor with the
arrow keys and press **enter**. Fill in the task and the pin is saved where
the cursor was.

**Why can't I place pins on a plan?**
Placement needs the plan image's size. Plans uploaded as PDF or in another
format that cannot be measured are shown, but take no new pins.

**The task was created but the pin was not. What now?**
Press **c** on the plan to retry. The same pin is sent again, so retrying
never creates a duplicate.

**How do I find a pin?**
Press **/** on a plan and type part of the task title. Matching pins are
highlighted and listed below the plan.

**What does zoom do?**
**z** toggles zoom. Pins keep their place on the plan either way.

## Contact & support

Contact your company administrator for a new account or a password reset.
Run ` + "`planpin company clear`" + ` to sign in to a different company.
`

// helpView renders the help and support centre in a scrollable viewport.
type helpView struct {
	state    *SharedState
	vp       viewport.Model
	rendered int // width the content was last rendered at
}

func newHelpView(state *SharedState) *helpView {
	return &helpView{state: state, vp: viewport.New(0, 0)}
}

func (v *helpView) ID() ViewID    { return ViewHelp }
func (v *helpView) Title() string { return "Help" }

func (v *helpView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}

func (v *helpView) Init() tea.Cmd {
	v.resize()
	return nil
}

func (v *helpView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		v.resize()
		return v, nil
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *helpView) resize() {
	width := max(v.state.Width, 40)
	v.vp.Width = width
	v.vp.Height = v.state.ContentHeight()
	if v.rendered != width {
		v.vp.SetContent(renderMarkdown(helpMarkdown, width-4))
		v.rendered = width
	}
}

func (v *helpView) View() string {
	return v.vp.View()
}

// renderMarkdown renders md for the terminal, falling back to the raw
// text when glamour cannot build a renderer.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return formatter.Dim(md)
	}
	out, err := r.Render(md)
	if err != nil {
		return formatter.Dim(md)
	}
	return out
}
