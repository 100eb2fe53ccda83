package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/google/uuid"
)

var testCodeCounter atomic.Int64

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanSize(w, h float64) PlanOption {
	return func(p *domain.Plan) {
		p.Size = domain.ImageSize{Width: w, Height: h}
	}
}

func WithPlanCode(code string) PlanOption {
	return func(p *domain.Plan) {
		p.Code = code
	}
}

// NewTestPlan returns a plan with a unique code and a 1000x500 image.
func NewTestPlan(projectID, name string, opts ...PlanOption) *domain.Plan {
	id := uuid.New().String()
	p := &domain.Plan{
		ID:        id,
		ProjectID: projectID,
		Code:      fmt.Sprintf("P-%03d", testCodeCounter.Add(1)),
		Name:      name,
		ImageURL:  "/files/" + id + ".png",
		Size:      domain.ImageSize{Width: 1000, Height: 500},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pin options
type PinOption func(*domain.Pin)

func WithTask(id, title string) PinOption {
	return func(p *domain.Pin) {
		p.Task = &domain.TaskRef{ID: id, Title: title}
	}
}

func WithoutTask() PinOption {
	return func(p *domain.Pin) {
		p.Task = nil
	}
}

// NewTestPin returns a pin at (x, y) linked to a task titled like the pin.
func NewTestPin(planID string, x, y float64, opts ...PinOption) domain.Pin {
	p := domain.Pin{
		ID:       uuid.New().String(),
		PlanID:   planID,
		Position: domain.Position{X: x, Y: y},
		Task:     &domain.TaskRef{ID: uuid.New().String(), Title: fmt.Sprintf("Task at %.0f,%.0f", x, y)},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithCategory(c string) TaskOption {
	return func(t *domain.Task) {
		t.Category = c
	}
}

func WithTaskPlan(planID string) TaskOption {
	return func(t *domain.Task) {
		t.PlanID = planID
	}
}

func WithAssignee(userID string) TaskOption {
	return func(t *domain.Task) {
		t.PersonID = userID
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Title:       title,
		Description: title + " description",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestUser(companyID, name string) domain.User {
	return domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     fmt.Sprintf("user%d@example.com", testCodeCounter.Add(1)),
		CompanyID: companyID,
	}
}
