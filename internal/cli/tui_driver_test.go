package cli

import (
	"testing"

	"github.com/alexanderramin/planpin/internal/teatest"
)

// TestDriver wraps teatest.Driver with planpin-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// notice bar) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver on the plan list of project "proj".
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	return newTestDriverAt(t, app, "proj", "")
}

// newTestDriverAt constructs the appModel, sets terminal size, and drains
// Init() (which checks the session and loads data synchronously against
// the fake backend). A non-empty planID opens that plan on start.
func newTestDriverAt(t *testing.T, app *App, projectID, planID string) *TestDriver {
	t.Helper()

	m := newAppModel(app, projectID, planID)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── planpin-specific inspection ──────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveViewTitle returns the Title() of the top view on the stack.
func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ""
	}
	return v.Title()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// PlanDetail returns the plan detail view on the stack, or nil.
func (d *TestDriver) PlanDetail() *planDetailView {
	for _, v := range d.appModel().viewStack {
		if pv, ok := v.(*planDetailView); ok {
			return pv
		}
	}
	return nil
}

// TaskList returns the task list view on the stack, or nil.
func (d *TestDriver) TaskList() *taskListView {
	for _, v := range d.appModel().viewStack {
		if tv, ok := v.(*taskListView); ok {
			return tv
		}
	}
	return nil
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Notice returns the text of the notice currently shown, if any.
func (d *TestDriver) Notice() string {
	return d.appModel().notice.text
}

// IsQuitting returns whether the app has signaled a quit.
// Checks model.quitting (q/Ctrl+C) and the driver's Quitting flag
// (tea.QuitMsg from tea.Quit).
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
