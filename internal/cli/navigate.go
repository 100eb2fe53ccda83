package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// refreshViewMsg is broadcast to every view on the stack when the view
// below a closed dialog regains focus.
type refreshViewMsg struct{}

// switchTabMsg resets the stack to the root view of a tab.
type switchTabMsg struct {
	tab Tab
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// sessionCheckedMsg reports whether a stored session exists at startup.
type sessionCheckedMsg struct {
	signedIn bool
	err      error
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func refreshViews() tea.Msg { return refreshViewMsg{} }
