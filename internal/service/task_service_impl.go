package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/form"
	"github.com/alexanderramin/planpin/internal/repository"
)

type taskService struct {
	backend  TaskBackend
	settings repository.SettingsRepo
	observer UseCaseObserver
}

func NewTaskService(
	backend TaskBackend,
	settings repository.SettingsRepo,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		backend:  backend,
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) CreateTask(ctx context.Context, projectID string, f form.Task) (created *domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan_id": f.PlanID}
	defer func() { observe(ctx, s.observer, "create-task", startedAt, fields, err) }()

	if err = f.Validate().Err(); err != nil {
		return nil, err
	}
	projectID, err = s.project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	fields["project_id"] = projectID

	creatorID, err := s.settings.Get(ctx, repository.KeyUserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}

	created, err = s.backend.CreateTask(ctx, f.ToTask(projectID, creatorID))
	if err != nil {
		return nil, err
	}
	fields["task_id"] = created.ID
	return created, nil
}

func (s *taskService) ListTasks(ctx context.Context, projectID string) (tasks []*domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "list-tasks", startedAt, fields, err) }()

	projectID, err = s.project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	fields["project_id"] = projectID

	tasks, err = s.backend.ListTasks(ctx, projectID)
	fields["count"] = len(tasks)
	return tasks, err
}

func (s *taskService) ListUsers(ctx context.Context) (users []domain.User, err error) {
	startedAt := time.Now().UTC()
	defer func() { observe(ctx, s.observer, "list-users", startedAt, nil, err) }()

	companyID, err := s.settings.Get(ctx, repository.KeyCompanyID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoCompany
	}
	if err != nil {
		return nil, err
	}
	return s.backend.ListUsers(ctx, companyID)
}

func (s *taskService) project(ctx context.Context, projectID string) (string, error) {
	if projectID != "" {
		return projectID, nil
	}
	id, err := s.settings.Get(ctx, repository.KeyLastProjectID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNoProject
	}
	return id, err
}
