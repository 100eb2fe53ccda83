package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/pins"
	"github.com/alexanderramin/planpin/internal/repository"
)

type planService struct {
	backend     PlanBackend
	settings    repository.SettingsRepo
	pinObserver pins.Observer
	observer    UseCaseObserver
}

// NewPlanService creates a PlanService. pinObserver is handed to every pin
// controller it creates; nil disables controller telemetry.
func NewPlanService(
	backend PlanBackend,
	settings repository.SettingsRepo,
	pinObserver pins.Observer,
	observers ...UseCaseObserver,
) PlanService {
	if pinObserver == nil {
		pinObserver = pins.NoopObserver{}
	}
	return &planService{
		backend:     backend,
		settings:    settings,
		pinObserver: pinObserver,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *planService) ListPlans(ctx context.Context, projectID string) (plans []*domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "list-plans", startedAt, fields, err) }()

	projectID, err = s.resolveProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	fields["project_id"] = projectID

	plans, err = s.backend.ListPlans(ctx, projectID)
	if err != nil {
		return nil, err
	}
	fields["count"] = len(plans)
	return plans, nil
}

func (s *planService) GetPlan(ctx context.Context, planID string) (plan *domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan_id": planID}
	defer func() { observe(ctx, s.observer, "get-plan", startedAt, fields, err) }()

	plan, err = s.backend.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	// A plan whose image cannot be probed is still shown; placement on it
	// fails until the size is known.
	size, sizeErr := s.backend.ImageSize(ctx, plan.ImageURL)
	if sizeErr != nil {
		fields["image_error"] = sizeErr.Error()
		return plan, nil
	}
	plan.Size = size
	fields["image_w"] = size.Width
	fields["image_h"] = size.Height
	return plan, nil
}

func (s *planService) SearchPins(ctx context.Context, planID, query string) (found []domain.Pin, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan_id": planID, "query": query}
	defer func() { observe(ctx, s.observer, "search-pins", startedAt, fields, err) }()

	c := s.NewPinController(planID)
	defer c.Close()
	if err = c.Refresh(ctx); err != nil {
		return nil, err
	}
	found = c.Search(query)
	fields["count"] = len(found)
	return found, nil
}

func (s *planService) NewPinController(planID string) *pins.Controller {
	return pins.New(planID, s.backend, s.pinObserver)
}

func (s *planService) LastProject(ctx context.Context) (string, error) {
	id, err := s.settings.Get(ctx, repository.KeyLastProjectID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNoProject
	}
	return id, err
}

// resolveProject returns projectID, remembering it for next time, or the
// last used project when projectID is empty.
func (s *planService) resolveProject(ctx context.Context, projectID string) (string, error) {
	if projectID == "" {
		return s.LastProject(ctx)
	}
	if err := s.settings.Set(ctx, repository.KeyLastProjectID, projectID); err != nil {
		return "", fmt.Errorf("remembering project: %w", err)
	}
	return projectID, nil
}
