package cli

import (
	"testing"

	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
	captures   bool
	closed     bool
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func (v *stubView) CapturesInput() bool      { return v.captures }
func (v *stubView) Close()                   { v.closed = true }
func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func testApp(t *testing.T) *App {
	t.Helper()
	return newTestEnv(t).app
}

func TestNewAppModelStartsAtPlanList(t *testing.T) {
	m := newAppModel(testApp(t), "proj", "")

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewPlanList, m.activeView().ID())
	assert.Equal(t, TabPlans, m.state.Tab)
	assert.Equal(t, "proj", m.state.ProjectID)
}

func TestNewAppModelOpensPlan(t *testing.T) {
	m := newAppModel(testApp(t), "proj", "plan-1")

	require.Len(t, m.viewStack, 2)
	assert.Equal(t, ViewPlanDetail, m.activeView().ID())
	assert.Equal(t, "plan-1", m.activeView().(*planDetailView).planID)
}

func TestAppModel_PushAndPop(t *testing.T) {
	m := newAppModel(testApp(t), "proj", "")
	v2 := newStubView(ViewPlanDetail, "Plan", "plan view")

	model, cmd := m.Update(pushViewMsg{view: v2})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, v2, m.activeView())

	model, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(appModel)
	require.NotNil(t, cmd)
	assert.IsType(t, refreshViewMsg{}, cmd())
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewPlanList, m.activeView().ID())
	assert.True(t, v2.closed, "a popped view is closed")

	// The root view is never popped.
	model, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(appModel)
	assert.Nil(t, cmd)
	assert.Len(t, m.viewStack, 1)
}

func TestAppModel_WindowResizeForwardsToActiveView(t *testing.T) {
	m := newAppModel(testApp(t), "proj", "")
	v := newStubView(ViewPlanList, "Plans", "plans")
	m.viewStack = []View{v}

	model, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)
	require.Nil(t, cmd)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	assert.Equal(t, 25, m.state.ContentHeight())
	require.Len(t, v.updateSeen, 1)
	_, ok := v.updateSeen[0].(tea.WindowSizeMsg)
	assert.True(t, ok)
}

func TestAppModel_KeyHandling_GlobalAndCaptured(t *testing.T) {
	t.Run("q quits when active view does not capture input", func(t *testing.T) {
		m := newAppModel(testApp(t), "proj", "")
		m.viewStack = []View{newStubView(ViewPlanList, "Plans", "plans")}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("capturing view receives q and does not quit", func(t *testing.T) {
		m := newAppModel(testApp(t), "proj", "")
		v := newStubView(ViewPlanDetail, "Plan", "plan")
		v.captures = true
		m.viewStack = []View{v}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.Nil(t, cmd)
		assert.False(t, m.quitting)
		require.Len(t, v.updateSeen, 1)
		assert.Equal(t, "q", v.updateSeen[0].(tea.KeyMsg).String())
	})

	t.Run("ctrl+c quits even while capturing", func(t *testing.T) {
		m := newAppModel(testApp(t), "proj", "")
		m.viewStack = []View{newStubView(ViewForm, "Form", "form")}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m = model.(appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
	})

	t.Run("esc pops back stack", func(t *testing.T) {
		m := newAppModel(testApp(t), "proj", "")
		top := newStubView(ViewPlanDetail, "Plan", "plan")
		m.viewStack = []View{newStubView(ViewPlanList, "Plans", "plans"), top}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.NotNil(t, cmd)
		require.Len(t, m.viewStack, 1)
		assert.True(t, top.closed)
	})

	t.Run("number keys switch tabs", func(t *testing.T) {
		m := newAppModel(testApp(t), "proj", "")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
		require.NotNil(t, cmd)
		assert.Equal(t, switchTabMsg{tab: TabTasks}, cmd())
	})

	t.Run("shift+tab wraps to the last tab", func(t *testing.T) {
		m := newAppModel(testApp(t), "proj", "")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
		require.NotNil(t, cmd)
		assert.Equal(t, switchTabMsg{tab: TabHelp}, cmd())
	})
}

func TestAppModel_SwitchTabClosesStack(t *testing.T) {
	m := newAppModel(testApp(t), "proj", "")
	bottom := newStubView(ViewPlanList, "Plans", "plans")
	top := newStubView(ViewPlanDetail, "Plan", "plan")
	m.viewStack = []View{bottom, top}
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)

	model, _ = m.Update(switchTabMsg{tab: TabHelp})
	m = model.(appModel)

	assert.True(t, bottom.closed)
	assert.True(t, top.closed)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewHelp, m.activeView().ID())
	assert.Equal(t, TabHelp, m.state.Tab)
}

func TestAppModel_WizardComplete(t *testing.T) {
	m := newAppModel(testApp(t), "proj", "")
	m.viewStack = []View{
		newStubView(ViewPlanList, "Plans", "plans"),
		newStubView(ViewForm, "Wizard", "wizard"),
	}

	next := showNotice(formatter.NoticeSuccess, "done")

	model, cmd := m.Update(wizardCompleteMsg{nextCmd: next})
	m = model.(appModel)
	require.NotNil(t, cmd)
	require.Len(t, m.viewStack, 1)

	batchMsg := cmd()
	batch, ok := batchMsg.(tea.BatchMsg)
	require.True(t, ok, "expected tea.BatchMsg, got %T", batchMsg)
	var gotNotice, gotRefresh bool
	for _, c := range batch {
		if c == nil {
			continue
		}
		switch c().(type) {
		case showNoticeMsg:
			gotNotice = true
		case refreshViewMsg:
			gotRefresh = true
		}
	}
	assert.True(t, gotNotice, "batch should contain the follow-up command")
	assert.True(t, gotRefresh, "batch should contain refreshViewMsg")
}

func TestAppModel_RefreshIsBroadcast(t *testing.T) {
	m := newAppModel(testApp(t), "proj", "")
	bottom := newStubView(ViewPlanList, "Plans", "plans")
	top := newStubView(ViewPlanDetail, "Plan", "plan")
	m.viewStack = []View{bottom, top}

	m.Update(refreshViewMsg{})

	require.Len(t, bottom.updateSeen, 1)
	require.Len(t, top.updateSeen, 1)
}

func TestAppModel_NoticeLifecycle(t *testing.T) {
	m := newAppModel(testApp(t), "proj", "")
	m.viewStack = []View{newStubView(ViewPlanList, "Plans", "plans")}

	model, cmd := m.Update(showNoticeMsg{kind: formatter.NoticeInfo, text: "first"})
	m = model.(appModel)
	require.NotNil(t, cmd, "a notice schedules its own expiry")
	assert.Contains(t, m.View(), "first")

	model, _ = m.Update(showNoticeMsg{kind: formatter.NoticeError, text: "second"})
	m = model.(appModel)

	// The first notice's timer fires after the second notice replaced it.
	model, _ = m.Update(noticeExpiredMsg{seq: 1})
	m = model.(appModel)
	assert.Contains(t, m.View(), "second")

	model, _ = m.Update(noticeExpiredMsg{seq: 2})
	m = model.(appModel)
	assert.NotContains(t, m.View(), "second")
	assert.False(t, m.notice.visible())
}

func TestAppModel_ViewShowsBreadcrumbAndHints(t *testing.T) {
	m := newAppModel(testApp(t), "proj", "")
	m.viewStack = []View{
		newStubView(ViewPlanList, "Plans", "plans body"),
		newStubView(ViewPlanDetail, "GF-01", "detail body"),
	}
	model, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)

	out := m.View()
	assert.Contains(t, out, "planpin")
	assert.Contains(t, out, "Plans › GF-01")
	assert.Contains(t, out, "detail body")
	assert.NotContains(t, out, "plans body")
	assert.Contains(t, out, "esc: back")
	assert.Contains(t, out, "q: quit")
}

func TestViewCapturesInput(t *testing.T) {
	assert.False(t, viewCapturesInput(nil))
	assert.True(t, viewCapturesInput(newStubView(ViewForm, "Form", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewPlanList, "Plans", "")))

	searching := newStubView(ViewPlanDetail, "Plan", "")
	searching.captures = true
	assert.True(t, viewCapturesInput(searching))
}
