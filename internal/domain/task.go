package domain

// Task is a unit of site work, optionally tied to a plan and a person.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Category    string
	PlanID      string
	PersonID    string
	CreatorID   string
}

// Ref returns the pin-facing view of the task.
func (t *Task) Ref() *TaskRef {
	return &TaskRef{ID: t.ID, Title: t.Title}
}
