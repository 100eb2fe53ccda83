package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// plansLoadedMsg signals that plan list data has been loaded.
type plansLoadedMsg struct {
	plans []*domain.Plan
	err   error
}

// planListView shows an interactive, navigable list of the project's plans.
type planListView struct {
	state   *SharedState
	plans   []*domain.Plan
	cursor  int
	loading bool
	err     error

	// Filtering
	filtering bool
	filter    string
}

func newPlanListView(state *SharedState) *planListView {
	return &planListView{
		state:   state,
		loading: true,
	}
}

func (v *planListView) ID() ViewID    { return ViewPlanList }
func (v *planListView) Title() string { return "Plans" }

func (v *planListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

func (v *planListView) CapturesInput() bool { return v.filtering }

func (v *planListView) Init() tea.Cmd {
	return v.loadPlans()
}

func (v *planListView) loadPlans() tea.Cmd {
	app := v.state.App
	projectID := v.state.ProjectID
	return func() tea.Msg {
		plans, err := app.Plans.ListPlans(context.Background(), projectID)
		return plansLoadedMsg{plans: plans, err: err}
	}
}

func (v *planListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case plansLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.plans = msg.plans
		if v.cursor >= len(v.plans) {
			v.cursor = max(len(v.plans)-1, 0)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadPlans()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *planListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visiblePlans()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(visible) {
			return v, pushView(newPlanDetailView(v.state, visible[v.cursor].ID))
		}
	case "/":
		v.filtering = true
		v.filter = ""
	}
	return v, nil
}

func (v *planListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if r := []rune(v.filter); len(r) > 0 {
			v.filter = string(r[:len(r)-1])
			v.cursor = 0
		}
	case tea.KeySpace:
		v.filter += " "
		v.cursor = 0
	case tea.KeyRunes:
		v.filter += string(msg.Runes)
		v.cursor = 0
	}
	return v, nil
}

func (v *planListView) visiblePlans() []*domain.Plan {
	if v.filter == "" {
		return v.plans
	}
	lf := strings.ToLower(v.filter)
	var filtered []*domain.Plan
	for _, p := range v.plans {
		if strings.Contains(strings.ToLower(p.Name), lf) ||
			strings.Contains(strings.ToLower(p.Code), lf) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (v *planListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading plans...")
	}
	if errors.Is(v.err, service.ErrNoProject) {
		return "\n  " + formatter.StyleYellow.Render("No project selected.") + "\n  " +
			formatter.Dim("Start with 'planpin view --project <id>'.")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	visible := v.visiblePlans()

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering || v.filter != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter)
		if v.filtering {
			b.WriteString("█")
		}
		b.WriteString("\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No plans found.") + "\n")
		return b.String()
	}

	for i, p := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		b.WriteString(fmt.Sprintf("%s%s %s  %s\n",
			cursor,
			formatter.StyleGreen.Render(formatter.PadRight(domain.CoalesceStr(p.Code, "--"), 8)),
			nameStyle.Render(formatter.PadRight(p.Name, 28)),
			formatter.Dim(formatter.Truncate(p.ImageURL, 30)),
		))
	}

	return b.String()
}
