package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/planpin/internal/api"
	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/form"
	"github.com/alexanderramin/planpin/internal/pinmap"
	"github.com/alexanderramin/planpin/internal/pins"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// planLoadedMsg carries the plan and the people tasks can be assigned to.
type planLoadedMsg struct {
	plan  *domain.Plan
	users []domain.User
	err   error
}

// pinsRefreshedMsg reports the end of a pin refresh.
type pinsRefreshedMsg struct {
	err error
}

// placementDoneMsg reports the task dialog's create-and-commit. taskID is
// empty when the task itself could not be created.
type placementDoneMsg struct {
	taskID string
	title  string
	err    error
}

// planDetailView draws a plan as a character grid with its pins and lets
// the user place new pins with a cursor.
type planDetailView struct {
	state  *SharedState
	planID string
	ctrl   *pins.Controller

	plan    *domain.Plan
	users   []domain.User
	loading bool
	err     error

	// Cursor cell; -1 until the grid size is known.
	col, row int
	zoom     bool

	search    textinput.Model
	searching bool

	// retryTaskID is a created task whose pin failed to save.
	retryTaskID string
}

func newPlanDetailView(state *SharedState, planID string) *planDetailView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "task title"
	ti.CharLimit = 80

	return &planDetailView{
		state:   state,
		planID:  planID,
		ctrl:    state.App.Plans.NewPinController(planID),
		loading: true,
		col:     -1,
		row:     -1,
		search:  ti,
	}
}

func (v *planDetailView) ID() ViewID { return ViewPlanDetail }

func (v *planDetailView) Title() string {
	if v.plan != nil {
		return v.plan.DisplayName()
	}
	return "Plan"
}

func (v *planDetailView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep filter")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "place mode")),
	}
	if v.ctrl.Active() {
		bindings = append(bindings, key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pin here")))
	}
	if v.retryTaskID != "" {
		bindings = append(bindings, key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "retry pin")))
	}
	return append(bindings,
		key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	)
}

func (v *planDetailView) CapturesInput() bool { return v.searching }

// Close releases the pin controller when the view leaves the stack.
func (v *planDetailView) Close() { v.ctrl.Close() }

func (v *planDetailView) Init() tea.Cmd {
	return tea.Batch(v.loadPlan(), v.refreshPins())
}

func (v *planDetailView) loadPlan() tea.Cmd {
	app := v.state.App
	planID := v.planID
	return func() tea.Msg {
		ctx := context.Background()
		plan, err := app.Plans.GetPlan(ctx, planID)
		if err != nil {
			return planLoadedMsg{err: err}
		}
		// Without a company the dialog just skips the person select.
		users, _ := app.Tasks.ListUsers(ctx)
		return planLoadedMsg{plan: plan, users: users}
	}
}

func (v *planDetailView) refreshPins() tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		return pinsRefreshedMsg{err: ctrl.OnViewActivated(context.Background())}
	}
}

func (v *planDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.plan = msg.plan
			v.users = msg.users
			v.resetCursor()
		}
		return v, nil

	case pinsRefreshedMsg:
		if ignorable(msg.err) {
			return v, nil
		}
		return v, showNotice(formatter.NoticeError, "Could not load pins: "+api.Message(msg.err))

	case refreshViewMsg:
		return v, v.refreshPins()

	case placementDoneMsg:
		return v, v.placementDone(msg)

	case tea.WindowSizeMsg:
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *planDetailView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.plan == nil {
		return v, nil
	}
	cols, rows := v.gridSize()

	switch msg.String() {
	case "up", "k":
		v.row = max(v.row-1, 0)
	case "down", "j":
		v.row = min(v.row+1, rows-1)
	case "left", "h":
		v.col = max(v.col-1, 0)
	case "right", "l":
		v.col = min(v.col+1, cols-1)
	case "p":
		if v.ctrl.ToggleActive() {
			return v, showNotice(formatter.NoticeInfo, "Placement on: move the cursor and press enter")
		}
		v.retryTaskID = ""
		return v, showNotice(formatter.NoticeInfo, "Placement off")
	case "z":
		v.zoom = !v.zoom
	case "enter", " ":
		return v, v.place()
	case "c":
		if v.retryTaskID != "" {
			return v, v.commit(v.retryTaskID, "")
		}
	case "r":
		return v, v.refreshPins()
	case "/":
		v.searching = true
		return v, v.search.Focus()
	}
	return v, nil
}

func (v *planDetailView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		return v, nil
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

// place turns the cursor cell into a pending pin and opens the task dialog.
func (v *planDetailView) place() tea.Cmd {
	if !v.ctrl.Active() {
		return showNotice(formatter.NoticeInfo, "Press p to start placing pins")
	}
	v.clampCursor()
	cols, rows := v.gridSize()
	if _, err := v.ctrl.BeginPlacement(pinmap.TouchAt(v.col, v.row, cols, rows), v.plan.Size, v.zoom); err != nil {
		return showNotice(formatter.NoticeError, placementErrorText(err))
	}
	v.retryTaskID = ""
	return pushView(v.newTaskDialog())
}

func (v *planDetailView) newTaskDialog() View {
	vals := &taskValues{planID: v.plan.ID}
	ctrl := v.ctrl
	return newWizardView("New task", taskForm(vals, v.users, nil),
		func() tea.Cmd { return v.createPinnedTask(vals) },
		func() tea.Cmd {
			ctrl.AbandonPlacement()
			return nil
		},
	)
}

// createPinnedTask creates the task from the dialog and binds the pending
// pin to it.
func (v *planDetailView) createPinnedTask(vals *taskValues) tea.Cmd {
	tasks := v.state.App.Tasks
	ctrl := v.ctrl
	projectID := v.plan.ProjectID
	return func() tea.Msg {
		ctx := context.Background()
		t, err := tasks.CreateTask(ctx, projectID, vals.form())
		if err != nil {
			ctrl.AbandonPlacement()
			return placementDoneMsg{err: err}
		}
		return placementDoneMsg{taskID: t.ID, title: t.Title, err: ctrl.CommitPlacement(ctx, t.ID)}
	}
}

// commit retries binding the pending pin to an existing task.
func (v *planDetailView) commit(taskID, title string) tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		return placementDoneMsg{taskID: taskID, title: title, err: ctrl.CommitPlacement(context.Background(), taskID)}
	}
}

func (v *planDetailView) placementDone(msg placementDoneMsg) tea.Cmd {
	switch {
	case msg.taskID == "":
		text := api.Message(msg.err)
		var fe form.FieldErrors
		if errors.As(msg.err, &fe) {
			text = fe.Error()
		}
		return showNotice(formatter.NoticeError, "Task not created: "+text)
	case errors.Is(msg.err, pins.ErrCreateFailure):
		v.retryTaskID = msg.taskID
		return showNotice(formatter.NoticeError, "Task created but the pin was not saved. Press c to retry.")
	case errors.Is(msg.err, pins.ErrCommitInFlight):
		return showNotice(formatter.NoticeInfo, "Still saving the pin")
	case errors.Is(msg.err, pins.ErrNoPendingPin):
		v.retryTaskID = ""
		return showNotice(formatter.NoticeError, "No pending pin to save")
	case !ignorable(msg.err):
		v.retryTaskID = ""
		return showNotice(formatter.NoticeError, "Pin saved, but refreshing failed: "+api.Message(msg.err))
	}
	v.retryTaskID = ""
	text := "Pin placed"
	if msg.title != "" {
		text += " for " + msg.title
	}
	return showNotice(formatter.NoticeSuccess, text)
}

// ignorable reports errors that need no notice: superseded refreshes and
// completions after the view closed.
func ignorable(err error) bool {
	return err == nil || errors.Is(err, pins.ErrStale) || errors.Is(err, pins.ErrClosed)
}

func placementErrorText(err error) string {
	switch {
	case errors.Is(err, pins.ErrLoadFailure):
		return "Plan image is not loaded; pins cannot be placed"
	case errors.Is(err, pins.ErrNotArmed):
		return "Press p to start placing pins"
	}
	return err.Error()
}

// gridSize returns the grid used as the plan's viewport. Its aspect ratio
// follows the image, with terminal cells counted as twice as tall as wide.
func (v *planDetailView) gridSize() (cols, rows int) {
	cols = min(max(v.state.Width-4, 10), 80)
	avail := max(v.state.ContentHeight()-9, 3)
	rows = min(avail, 12)
	if v.plan != nil && v.plan.Size.Loaded() {
		rows = int(math.Round(float64(cols) * v.plan.Size.Height / v.plan.Size.Width / 2))
		rows = min(max(rows, 3), avail)
	}
	return cols, rows
}

func (v *planDetailView) resetCursor() {
	cols, rows := v.gridSize()
	v.col, v.row = cols/2, rows/2
}

func (v *planDetailView) clampCursor() {
	if v.col < 0 || v.row < 0 {
		v.resetCursor()
		return
	}
	cols, rows := v.gridSize()
	v.col = min(v.col, cols-1)
	v.row = min(v.row, rows-1)
}

func (v *planDetailView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading plan...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+api.Message(v.err))
	}

	cols, rows := v.gridSize()

	var b strings.Builder
	b.WriteString("\n  " + formatter.Bold(v.plan.DisplayName()))
	if v.plan.Name != "" && v.plan.Name != v.plan.DisplayName() {
		b.WriteString("  " + formatter.Dim(v.plan.Name))
	}
	b.WriteString("  " + formatter.PlacementBadge(v.ctrl.State().String()))
	if v.zoom {
		b.WriteString("  " + formatter.StyleBlue.Render("⊕ zoom"))
	}
	if !v.plan.Size.Loaded() {
		b.WriteString("  " + formatter.StyleRed.Render("image not loaded"))
	}
	b.WriteString("\n")

	grid := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		MarginLeft(1).
		Render(v.renderGrid(cols, rows))
	b.WriteString(grid + "\n")

	if v.searching || v.search.Value() != "" {
		b.WriteString("  " + v.search.View() + "\n")
	}

	b.WriteString(v.renderPinStrip(max(v.state.ContentHeight()-rows-9, 1)))
	return b.String()
}

func (v *planDetailView) renderGrid(cols, rows int) string {
	query := v.search.Value()
	matched := make(map[string]bool)
	for _, p := range v.ctrl.Search(query) {
		matched[p.ID] = true
	}

	type cell struct{ c, r int }
	marks := make(map[cell]string)
	for _, p := range v.ctrl.Pins() {
		c, r := pinmap.Cell(p.Position, cols, rows)
		k := cell{c, r}
		switch {
		case query != "" && matched[p.ID]:
			marks[k] = formatter.StyleYellow.Render("●")
		case query != "":
			if _, taken := marks[k]; !taken {
				marks[k] = formatter.Dim("∘")
			}
		default:
			marks[k] = formatter.StyleGreen.Render("●")
		}
	}
	if pending, ok := v.ctrl.Pending(); ok {
		c, r := pinmap.Cell(pending.Position, cols, rows)
		marks[cell{c, r}] = formatter.StyleHeader.Render("◎")
	}

	armed := v.ctrl.Active()
	dot := formatter.Dim("·")
	cursorStyle := formatter.StyleFg
	if armed {
		cursorStyle = formatter.StyleYellow.Bold(true)
	}

	var b strings.Builder
	for r := range rows {
		for c := range cols {
			mark, hasPin := marks[cell{c, r}]
			switch {
			case c == v.col && r == v.row && hasPin:
				b.WriteString(cursorStyle.Render("⊕"))
			case c == v.col && r == v.row:
				b.WriteString(cursorStyle.Render("+"))
			case hasPin:
				b.WriteString(mark)
			default:
				b.WriteString(dot)
			}
		}
		if r < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (v *planDetailView) renderPinStrip(maxLines int) string {
	if !v.ctrl.Loaded() {
		return "  " + formatter.Dim("Loading pins...") + "\n"
	}

	query := v.search.Value()
	shown := v.ctrl.Search(query)

	var b strings.Builder
	if query == "" {
		b.WriteString("  " + formatter.StyleHeader.Render(fmt.Sprintf("Pins (%d)", len(shown))) + "\n")
	} else {
		b.WriteString("  " + formatter.StyleHeader.Render(fmt.Sprintf("Matches for %q (%d of %d)", query, len(shown), len(v.ctrl.Pins()))) + "\n")
	}
	if len(shown) == 0 {
		b.WriteString("  " + formatter.Dim("No pins.") + "\n")
		return b.String()
	}

	for i, p := range shown {
		if i == maxLines {
			b.WriteString("  " + formatter.Dim(fmt.Sprintf("… and %d more", len(shown)-i)) + "\n")
			break
		}
		title := formatter.Dim(formatter.PadRight("(untitled)", 32))
		if t := p.TaskTitle(); t != "" {
			title = formatter.PadRight(t, 32)
		}
		fmt.Fprintf(&b, "  %s %s  %s\n",
			formatter.StyleGreen.Render("●"),
			title,
			formatter.Dim(formatter.Percent(p.Position.X)+", "+formatter.Percent(p.Position.Y)))
	}
	return b.String()
}
