package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/planpin/internal/api"
	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/form"
	"github.com/alexanderramin/planpin/internal/pins"
)

var (
	// ErrNoCompany means no company has been chosen on this device yet.
	ErrNoCompany = errors.New("no company selected")

	// ErrNotLoggedIn means there is no stored session.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNoProject means no project was given and none was used before.
	ErrNoProject = errors.New("no project selected")
)

// AuthBackend is the slice of the remote API used for sign-in.
type AuthBackend interface {
	Login(ctx context.Context, cred api.Credentials) (*domain.Session, error)
	SetToken(token string)
}

// PlanBackend is the slice of the remote API used for plans and pins.
type PlanBackend interface {
	pins.Store
	ListPlans(ctx context.Context, projectID string) ([]*domain.Plan, error)
	GetPlan(ctx context.Context, planID string) (*domain.Plan, error)
	ImageSize(ctx context.Context, imageURL string) (domain.ImageSize, error)
}

// TaskBackend is the slice of the remote API used for tasks and people.
type TaskBackend interface {
	CreateTask(ctx context.Context, t *domain.Task) (*domain.Task, error)
	ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error)
	ListUsers(ctx context.Context, companyID string) ([]domain.User, error)
}

var (
	_ AuthBackend = (*api.Client)(nil)
	_ PlanBackend = (*api.Client)(nil)
	_ TaskBackend = (*api.Client)(nil)
)

type AuthService interface {
	Login(ctx context.Context, f form.Login) (*domain.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*domain.Session, error)
	Company(ctx context.Context) (string, error)
	SetCompany(ctx context.Context, companyID string) error
	// ClearCompany forgets the company and signs out, so the next login
	// starts from company selection.
	ClearCompany(ctx context.Context) error
}

type PlanService interface {
	// ListPlans lists the plans of projectID, or of the last used project
	// when projectID is empty.
	ListPlans(ctx context.Context, projectID string) ([]*domain.Plan, error)
	// GetPlan returns the plan with its image size filled in when the image
	// can be probed.
	GetPlan(ctx context.Context, planID string) (*domain.Plan, error)
	// SearchPins fetches the pins of a plan once and filters them by task title.
	SearchPins(ctx context.Context, planID, query string) ([]domain.Pin, error)
	NewPinController(planID string) *pins.Controller
	LastProject(ctx context.Context) (string, error)
}

type TaskService interface {
	// CreateTask validates f and creates the task in projectID (or the last
	// used project) on behalf of the signed-in user.
	CreateTask(ctx context.Context, projectID string, f form.Task) (*domain.Task, error)
	ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error)
	// ListUsers lists the members of the device's company.
	ListUsers(ctx context.Context) ([]domain.User, error)
}
