package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/pins"
)

var _ pins.Store = (*Client)(nil)

// Credentials are submitted by the login form.
type Credentials struct {
	Email     string
	Password  string
	CompanyID string
}

// Login exchanges credentials for a session. The client keeps the returned
// token for subsequent calls.
func (c *Client) Login(ctx context.Context, cred Credentials) (*domain.Session, error) {
	var resp loginResponse
	err := c.do(ctx, request{
		call:   "login",
		method: http.MethodPost,
		path:   "/users/login",
		body:   loginBody{Email: cred.Email, Password: cred.Password, CompanyID: cred.CompanyID},
		decode: decodeJSON(&resp),
	})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response carried no token")
	}
	c.SetToken(resp.Token)
	return &domain.Session{Token: resp.Token, User: resp.User.toDomain()}, nil
}

// ListPlans returns the plans of a project.
func (c *Client) ListPlans(ctx context.Context, projectID string) ([]*domain.Plan, error) {
	var resp []wirePlan
	err := c.do(ctx, request{
		call:   "list_plans",
		method: http.MethodGet,
		path:   "/projects/" + url.PathEscape(projectID) + "/plans",
		decode: decodeJSON(&resp),
	})
	if err != nil {
		return nil, err
	}
	plans := make([]*domain.Plan, 0, len(resp))
	for _, w := range resp {
		plans = append(plans, w.toDomain())
	}
	return plans, nil
}

// GetPlan returns one plan. Its Size is left zero; see ImageSize.
func (c *Client) GetPlan(ctx context.Context, planID string) (*domain.Plan, error) {
	var resp wirePlan
	err := c.do(ctx, request{
		call:   "get_plan",
		method: http.MethodGet,
		path:   "/plans/" + url.PathEscape(planID),
		decode: decodeJSON(&resp),
	})
	if err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

// FetchPins returns the pins of a plan in server order.
func (c *Client) FetchPins(ctx context.Context, planID string) ([]domain.Pin, error) {
	var resp []wirePin
	err := c.do(ctx, request{
		call:   "fetch_pins",
		method: http.MethodGet,
		path:   "/plans/" + url.PathEscape(planID) + "/pins",
		decode: decodeJSON(&resp),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Pin, 0, len(resp))
	for _, w := range resp {
		out = append(out, w.toDomain())
	}
	return out, nil
}

// CreatePin binds a position on a plan to a task. It is never retried by
// the client; req.Key is sent as the Idempotency-Key so a manual retry of
// the same placement can be deduplicated by the server.
func (c *Client) CreatePin(ctx context.Context, req pins.CreatePinRequest) (*domain.Pin, error) {
	headers := map[string]string{}
	if req.Key != "" {
		headers["Idempotency-Key"] = req.Key
	}
	var resp wirePin
	err := c.do(ctx, request{
		call:   "create_pin",
		method: http.MethodPost,
		path:   "/plans/" + url.PathEscape(req.PlanID) + "/pins",
		body: createPinBody{
			PlanID: req.PlanID,
			X:      req.Position.X,
			Y:      req.Position.Y,
			Task:   req.TaskID,
		},
		headers: headers,
		decode:  decodeJSON(&resp),
	})
	if err != nil {
		return nil, err
	}
	p := resp.toDomain()
	return &p, nil
}

// CreateTask creates a task in t.ProjectID and returns it with its new ID.
func (c *Client) CreateTask(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	if t.ProjectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}
	var resp wireTask
	err := c.do(ctx, request{
		call:   "create_task",
		method: http.MethodPost,
		path:   "/projects/" + url.PathEscape(t.ProjectID) + "/tasks",
		body: createTaskBody{
			ProjectID:    t.ProjectID,
			TaskTitle:    t.Title,
			TaskDesc:     t.Description,
			TaskCategory: t.Category,
			Persons:      t.PersonID,
			Plan:         t.PlanID,
			TaskCreator:  t.CreatorID,
		},
		decode: decodeJSON(&resp),
	})
	if err != nil {
		return nil, err
	}
	created := resp.toDomain()
	if created.ProjectID == "" {
		created.ProjectID = t.ProjectID
	}
	return created, nil
}

// ListTasks returns the tasks of a project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error) {
	var resp []wireTask
	err := c.do(ctx, request{
		call:   "list_tasks",
		method: http.MethodGet,
		path:   "/projects/" + url.PathEscape(projectID) + "/tasks",
		decode: decodeJSON(&resp),
	})
	if err != nil {
		return nil, err
	}
	tasks := make([]*domain.Task, 0, len(resp))
	for _, w := range resp {
		tasks = append(tasks, w.toDomain())
	}
	return tasks, nil
}

// ListUsers returns the members of a company, for task assignment.
func (c *Client) ListUsers(ctx context.Context, companyID string) ([]domain.User, error) {
	var resp []wireUser
	err := c.do(ctx, request{
		call:   "list_users",
		method: http.MethodGet,
		path:   "/companies/" + url.PathEscape(companyID) + "/users",
		decode: decodeJSON(&resp),
	})
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(resp))
	for _, w := range resp {
		users = append(users, w.toDomain())
	}
	return users, nil
}
