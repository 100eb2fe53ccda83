package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewPlanList ViewID = iota
	ViewPlanDetail
	ViewTaskList
	ViewHelp
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// closer is implemented by views that hold resources released when the
// view leaves the stack.
type closer interface {
	Close()
}

// inputCapturer is implemented by views whose key handling depends on
// state, such as an open search box.
type inputCapturer interface {
	CapturesInput() bool
}

// Tab is one entry of the tab bar.
type Tab int

const (
	TabPlans Tab = iota
	TabTasks
	TabHelp
)

var tabNames = []string{"Plans", "Tasks", "Help"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "?"
}

// rootView builds the first view of tab t.
func rootView(state *SharedState, t Tab) View {
	switch t {
	case TabTasks:
		return newTaskListView(state)
	case TabHelp:
		return newHelpView(state)
	default:
		return newPlanListView(state)
	}
}
