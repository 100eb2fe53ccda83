package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/planpin/internal/api"
	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/form"
	"github.com/alexanderramin/planpin/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// taskListLoadedMsg signals that the project's tasks have been loaded,
// along with the plans and people offered by the new-task dialog.
type taskListLoadedMsg struct {
	tasks []*domain.Task
	plans []*domain.Plan
	users []domain.User
	err   error
}

// taskCreatedMsg reports a task created from the Tasks tab.
type taskCreatedMsg struct {
	task *domain.Task
	err  error
}

// taskListView lists the tasks of the active project.
type taskListView struct {
	state   *SharedState
	tasks   []*domain.Task
	plans   []*domain.Plan
	users   []domain.User
	cursor  int
	loading bool
	err     error
}

func newTaskListView(state *SharedState) *taskListView {
	return &taskListView{
		state:   state,
		loading: true,
	}
}

func (v *taskListView) ID() ViewID    { return ViewTaskList }
func (v *taskListView) Title() string { return "Tasks" }

func (v *taskListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *taskListView) Init() tea.Cmd {
	return v.loadTasks()
}

func (v *taskListView) loadTasks() tea.Cmd {
	app := v.state.App
	projectID := v.state.ProjectID
	return func() tea.Msg {
		ctx := context.Background()
		tasks, err := app.Tasks.ListTasks(ctx, projectID)
		if err != nil {
			return taskListLoadedMsg{err: err}
		}
		plans, _ := app.Plans.ListPlans(ctx, projectID)
		users, _ := app.Tasks.ListUsers(ctx)
		return taskListLoadedMsg{tasks: tasks, plans: plans, users: users}
	}
}

func (v *taskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskListLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.tasks, v.plans, v.users = msg.tasks, msg.plans, msg.users
		if v.cursor >= len(v.tasks) {
			v.cursor = max(len(v.tasks)-1, 0)
		}
		return v, nil

	case taskCreatedMsg:
		if msg.err != nil {
			text := api.Message(msg.err)
			var fe form.FieldErrors
			if errors.As(msg.err, &fe) {
				text = fe.Error()
			}
			return v, showNotice(formatter.NoticeError, "Task not created: "+text)
		}
		return v, tea.Batch(
			showNotice(formatter.NoticeSuccess, "Created "+msg.task.Title),
			v.loadTasks(),
		)

	case refreshViewMsg:
		return v, v.loadTasks()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.tasks)-1 {
				v.cursor++
			}
		case "r":
			return v, v.loadTasks()
		case "n":
			if v.err != nil {
				return v, nil
			}
			return v, pushView(v.newTaskDialog())
		}
	}
	return v, nil
}

// newTaskDialog creates a task without a pin; the plan is chosen in the form.
func (v *taskListView) newTaskDialog() View {
	vals := &taskValues{}
	return newWizardView("New task", taskForm(vals, v.users, v.plans),
		func() tea.Cmd { return v.createTask(vals) },
		nil,
	)
}

func (v *taskListView) createTask(vals *taskValues) tea.Cmd {
	tasks := v.state.App.Tasks
	projectID := v.state.ProjectID
	return func() tea.Msg {
		t, err := tasks.CreateTask(context.Background(), projectID, vals.form())
		return taskCreatedMsg{task: t, err: err}
	}
}

func (v *taskListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading tasks...")
	}
	if errors.Is(v.err, service.ErrNoProject) {
		return "\n  " + formatter.StyleYellow.Render("No project selected.") + "\n  " +
			formatter.Dim("Open a project's plans first, or start with 'planpin view --project <id>'.")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+api.Message(v.err))
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(v.tasks) == 0 {
		b.WriteString("  " + formatter.Dim("No tasks yet. Press n to create one.") + "\n")
		return b.String()
	}

	planNames := make(map[string]string, len(v.plans))
	for _, p := range v.plans {
		planNames[p.ID] = p.DisplayName()
	}

	for i, t := range v.tasks {
		cursor := "  "
		titleStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			titleStyle = formatter.StyleBold
		}
		plan := planNames[t.PlanID]
		if plan == "" {
			plan = formatter.Truncate(t.PlanID, 8)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			cursor,
			titleStyle.Render(formatter.PadRight(t.Title, 32)),
			formatter.StylePurple.Render(formatter.PadRight(domain.CoalesceStr(t.Category, "--"), 14)),
			formatter.Dim(domain.CoalesceStr(plan, "--")),
		))
	}

	return b.String()
}
