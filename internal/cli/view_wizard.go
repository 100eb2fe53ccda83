package cli

import (
	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// wizardView hosts a huh.Form on the view stack. Whether the form is
// submitted or abandoned, the view ends by sending one wizardCompleteMsg
// so the appModel pops it and runs the follow-up in the same step.
type wizardView struct {
	title    string
	form     *huh.Form
	onSubmit func() tea.Cmd
	onCancel func() tea.Cmd
}

func newWizardView(title string, form *huh.Form, onSubmit, onCancel func() tea.Cmd) *wizardView {
	return &wizardView{title: title, form: form, onSubmit: onSubmit, onCancel: onCancel}
}

func (v *wizardView) Init() tea.Cmd { return v.form.Init() }

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return v, v.cancelled()
	}

	next, cmd := v.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		return v, finish(cmd, call(v.onSubmit))
	case huh.StateAborted:
		return v, v.cancelled()
	default:
		return v, cmd
	}
}

func (v *wizardView) cancelled() tea.Cmd {
	return finish(call(v.onCancel), showNotice(formatter.NoticeInfo, "Cancelled."))
}

func finish(cmds ...tea.Cmd) tea.Cmd {
	next := tea.Batch(cmds...)
	return func() tea.Msg { return wizardCompleteMsg{nextCmd: next} }
}

func call(f func() tea.Cmd) tea.Cmd {
	if f == nil {
		return nil
	}
	return f()
}

func (v *wizardView) View() string  { return "\n" + v.form.View() }
func (v *wizardView) ID() ViewID    { return ViewForm }
func (v *wizardView) Title() string { return v.title }

func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
