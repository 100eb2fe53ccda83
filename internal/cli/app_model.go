package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/alexanderramin/planpin/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack, the tab bar and a transient notice line.
type appModel struct {
	state     *SharedState
	viewStack []View
	notice    noticeBar
	quitting  bool
}

// newAppModel starts on the Plans tab. A non-empty planID opens that plan
// on top of the plan list.
func newAppModel(app *App, projectID, planID string) appModel {
	state := &SharedState{
		App:       app,
		ProjectID: projectID,
	}

	m := appModel{state: state}
	m.viewStack = []View{newPlanListView(state)}
	if planID != "" {
		m.viewStack = append(m.viewStack, newPlanDetailView(state, planID))
	}

	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// popTop removes the top view and releases it. The root view stays.
func (m *appModel) popTop() bool {
	if len(m.viewStack) <= 1 {
		return false
	}
	top := m.viewStack[len(m.viewStack)-1]
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
	closeView(top)
	return true
}

func closeView(v View) {
	if c, ok := v.(closer); ok {
		c.Close()
	}
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.checkSession()}
	for _, v := range m.viewStack {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) checkSession() tea.Cmd {
	auth := m.state.App.Auth
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := auth.Company(ctx); err != nil {
			return sessionCheckedMsg{err: err}
		}
		_, err := auth.CurrentSession(ctx)
		return sessionCheckedMsg{signedIn: err == nil, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
		return m.forward(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionCheckedMsg:
		if !msg.signedIn {
			return m, pushView(newLoginView(m.state, errors.Is(msg.err, service.ErrNoCompany)))
		}
		m.state.Session, _ = m.state.App.Auth.CurrentSession(context.Background())
		return m, nil

	case loginResultMsg:
		if msg.err != nil {
			return m, tea.Batch(
				showNotice(formatter.NoticeError, msg.err.Error()),
				pushView(newLoginView(m.state, msg.needCompany)),
			)
		}
		m.state.Session = msg.sess
		signedIn := showNotice(formatter.NoticeSuccess, "Signed in as "+msg.sess.User.DisplayName())
		return m, tea.Batch(signedIn, refreshViews)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case switchTabMsg:
		return m, m.resetTo(msg.tab)

	case refreshViewMsg:
		// Every view reloads, not just the top one: a closed dialog may
		// have changed what the views beneath it show.
		cmds := make([]tea.Cmd, 0, len(m.viewStack))
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case wizardCompleteMsg:
		m.popTop()
		return m, tea.Batch(msg.nextCmd, refreshViews)

	case showNoticeMsg:
		return m, m.notice.show(m.state, msg)

	case noticeExpiredMsg:
		m.notice.expire(msg)
		return m, nil
	}

	return m.forward(msg)
}

// forward hands msg to the top view.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	v := m.activeView()
	if v == nil {
		return m, nil
	}
	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return m, cmd
}

// resetTo closes the whole stack and starts over on the tab's root view.
func (m *appModel) resetTo(tab Tab) tea.Cmd {
	for _, v := range m.viewStack {
		closeView(v)
	}
	m.state.Tab = tab
	root := rootView(m.state, tab)
	if m.state.Width > 0 {
		sized, _ := root.Update(tea.WindowSizeMsg{Width: m.state.Width, Height: m.state.Height})
		root = sized.(View)
	}
	m.viewStack = []View{root}
	return root.Init()
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// q and esc belong to a view that is taking text.
	if viewCapturesInput(m.activeView()) {
		return m.forward(msg)
	}

	n := len(tabNames)
	switch k := msg.String(); {
	case k == "q":
		m.quitting = true
		return m, tea.Quit
	case msg.Type == tea.KeyTab:
		return m, switchTab(Tab((int(m.state.Tab) + 1) % n))
	case msg.Type == tea.KeyShiftTab:
		return m, switchTab(Tab((int(m.state.Tab) + n - 1) % n))
	case len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < n:
		return m, switchTab(Tab(k[0] - '1'))
	case msg.Type == tea.KeyEsc:
		if m.popTop() {
			return m, refreshViews
		}
		return m, nil
	}

	return m.forward(msg)
}

func switchTab(t Tab) tea.Cmd {
	return func() tea.Msg { return switchTabMsg{tab: t} }
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{m.header(), m.tabBar()}
	if v := m.activeView(); v != nil {
		parts = append(parts, v.View())
	}
	parts = append(parts, m.rule(), m.statusLine())
	out := strings.Join(parts, "\n")

	// The alt-screen renderer diffs by line; a short frame would leave
	// the previous frame's tail on screen.
	if missing := m.state.Height - (strings.Count(out, "\n") + 1); missing > 0 {
		out += strings.Repeat("\n", missing)
	}
	return out
}

func (m *appModel) rule() string {
	return lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", max(m.state.Width, 20)))
}

// header is the product name, the breadcrumb of view titles and the
// signed-in user.
func (m *appModel) header() string {
	var b strings.Builder
	b.WriteString(formatter.StylePurple.Render("planpin"))

	titles := make([]string, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) > 0 {
		b.WriteString(" " + formatter.Dim("› "+strings.Join(titles, " › ")))
	}

	if s := m.state.Session; s.Authenticated() {
		b.WriteString("  " + formatter.Dim("[") + formatter.StyleGreen.Render(s.User.DisplayName()) + formatter.Dim("]"))
	}
	return b.String() + "\n" + m.rule()
}

func (m *appModel) tabBar() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.state.Tab {
			tabs[i] = formatter.StyleHeader.Render("[ " + name + " ]")
			continue
		}
		tabs[i] = formatter.Dim("  " + name + "  ")
	}
	return strings.Join(tabs, " ")
}

// statusLine holds the notice, the active view's key hints and the global
// keys. Global keys are hidden while a view is taking text.
func (m *appModel) statusLine() string {
	var hints []string
	if m.notice.visible() {
		hints = append(hints, m.notice.View())
	}

	v := m.activeView()
	if v != nil {
		for _, b := range v.ShortHelp() {
			h := b.Help()
			hints = append(hints, formatter.Dim(h.Key+": "+h.Desc))
		}
	}
	if !viewCapturesInput(v) {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim("tab: switch"), formatter.Dim("q: quit"))
	}
	return strings.Join(hints, "  ")
}

// viewCapturesInput reports whether v takes every key itself. Forms always
// do; other views opt in through inputCapturer.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if v.ID() == ViewForm {
		return true
	}
	c, ok := v.(inputCapturer)
	return ok && c.CapturesInput()
}
