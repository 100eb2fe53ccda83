package domain

import "strings"

// Position is a normalized pin location: percentage offsets from the
// image's top-left corner, each in [0, 100].
type Position struct {
	X float64
	Y float64
}

// Valid reports whether both coordinates lie inside the image.
func (p Position) Valid() bool {
	return p.X >= 0 && p.X <= 100 && p.Y >= 0 && p.Y <= 100
}

// TaskRef is the slice of a task a pin carries for display and search.
type TaskRef struct {
	ID    string
	Title string
}

// Pin is a marker on a plan linked to a task.
type Pin struct {
	ID       string
	PlanID   string
	Position Position
	Task     *TaskRef // nil when the backend did not populate the task
}

// TaskTitle returns the linked task's title, or "" when unlinked.
func (p Pin) TaskTitle() string {
	if p.Task == nil {
		return ""
	}
	return p.Task.Title
}

// TaskID returns the linked task's ID, or "" when unlinked.
func (p Pin) TaskID() string {
	if p.Task == nil {
		return ""
	}
	return p.Task.ID
}

// MatchesTitle reports whether the pin's task title contains query,
// ignoring case. The caller decides what an empty query means.
func (p Pin) MatchesTitle(query string) bool {
	return strings.Contains(strings.ToLower(p.TaskTitle()), strings.ToLower(query))
}

// PendingPin is a placed pin whose task has not been created yet.
// Key identifies the placement across create retries.
type PendingPin struct {
	Position Position
	Key      string
}
