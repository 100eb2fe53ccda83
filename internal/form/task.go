package form

import (
	"strings"

	"github.com/alexanderramin/planpin/internal/domain"
)

// TitleMaxLen is the longest task title the form accepts.
const TitleMaxLen = 120

var (
	TitleField       = Field(Required("task title is required"), MaxLen(TitleMaxLen))
	DescriptionField = Field(Required("task description is required"))
)

// Task is the task-creation dialog opened after a pin is placed. PlanID and
// PersonID are optional selections.
type Task struct {
	Title       string
	Description string
	Category    string
	PlanID      string
	PersonID    string
}

// Validate checks the required fields.
func (t Task) Validate() Result {
	return run(
		check{FieldTitle, strings.TrimSpace(t.Title), TitleField},
		check{FieldDescription, strings.TrimSpace(t.Description), DescriptionField},
	)
}

// ToTask builds the domain task for projectID, created by creatorID.
func (t Task) ToTask(projectID, creatorID string) *domain.Task {
	return &domain.Task{
		ProjectID:   projectID,
		Title:       strings.TrimSpace(t.Title),
		Description: strings.TrimSpace(t.Description),
		Category:    strings.TrimSpace(t.Category),
		PlanID:      t.PlanID,
		PersonID:    t.PersonID,
		CreatorID:   creatorID,
	}
}
