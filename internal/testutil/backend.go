package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/alexanderramin/planpin/internal/api"
	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/pins"
	"github.com/google/uuid"
)

// FakeBackend is an in-memory stand-in for the remote API. It honors the
// Idempotency-Key semantics of CreatePin: a repeated key returns the pin
// created the first time.
type FakeBackend struct {
	mu sync.Mutex

	plans    map[string]*domain.Plan
	pins     map[string][]domain.Pin
	byKey    map[string]domain.Pin
	tasks    map[string][]*domain.Task
	users    map[string][]domain.User
	accounts map[string]account
	failNext map[string]error
	calls    []string
	token    string

	// FetchHook, when set, runs before FetchPins reads the pin set. It may
	// block on ctx to simulate a slow network.
	FetchHook func(ctx context.Context, planID string) error
}

type account struct {
	password string
	user     domain.User
}

// NewFakeBackend returns an empty backend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		plans:    make(map[string]*domain.Plan),
		pins:     make(map[string][]domain.Pin),
		byKey:    make(map[string]domain.Pin),
		tasks:    make(map[string][]*domain.Task),
		users:    make(map[string][]domain.User),
		accounts: make(map[string]account),
		failNext: make(map[string]error),
	}
}

// AddPlan stores p. Its Size is what ImageSize reports for p.ImageURL.
func (b *FakeBackend) AddPlan(p *domain.Plan) *FakeBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := *p
	b.plans[p.ID] = &cp
	return b
}

// AddPins appends pins to planID in order.
func (b *FakeBackend) AddPins(planID string, ps ...domain.Pin) *FakeBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pins[planID] = append(b.pins[planID], ps...)
	return b
}

// AddAccount registers credentials that Login accepts.
func (b *FakeBackend) AddAccount(email, password string, user domain.User) *FakeBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[email] = account{password: password, user: user}
	b.users[user.CompanyID] = append(b.users[user.CompanyID], user)
	return b
}

// AddTask stores t in its project.
func (b *FakeBackend) AddTask(t *domain.Task) *FakeBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks[t.ProjectID] = append(b.tasks[t.ProjectID], t)
	return b
}

// FailNext makes the next call named call return err. Names match the API
// client's call names, e.g. "fetch_pins" or "create_pin".
func (b *FakeBackend) FailNext(call string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext[call] = err
}

// Calls returns the call names seen so far, in order.
func (b *FakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// CallCount returns how many times call was made.
func (b *FakeBackend) CallCount(call string) int {
	n := 0
	for _, c := range b.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

// Token returns the bearer token last set.
func (b *FakeBackend) Token() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

// PinsOf returns the stored pins of planID.
func (b *FakeBackend) PinsOf(planID string) []domain.Pin {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Pin(nil), b.pins[planID]...)
}

// TasksOf returns the stored tasks of projectID.
func (b *FakeBackend) TasksOf(projectID string) []*domain.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*domain.Task(nil), b.tasks[projectID]...)
}

// begin records call and returns an injected failure, if any. Callers hold mu.
func (b *FakeBackend) begin(call string) error {
	b.calls = append(b.calls, call)
	if err, ok := b.failNext[call]; ok {
		delete(b.failNext, call)
		return err
	}
	return nil
}

func (b *FakeBackend) Login(_ context.Context, cred api.Credentials) (*domain.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("login"); err != nil {
		return nil, err
	}
	acc, ok := b.accounts[cred.Email]
	if !ok || acc.password != cred.Password || (cred.CompanyID != "" && acc.user.CompanyID != cred.CompanyID) {
		return nil, &api.Error{Status: 400, Message: "Invalid email or password"}
	}
	b.token = "tok-" + acc.user.ID
	return &domain.Session{Token: b.token, User: acc.user}, nil
}

func (b *FakeBackend) SetToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

func (b *FakeBackend) ListPlans(_ context.Context, projectID string) ([]*domain.Plan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("list_plans"); err != nil {
		return nil, err
	}
	var out []*domain.Plan
	for _, p := range b.plans {
		if p.ProjectID == projectID {
			cp := *p
			cp.Size = domain.ImageSize{}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (b *FakeBackend) GetPlan(_ context.Context, planID string) (*domain.Plan, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("get_plan"); err != nil {
		return nil, err
	}
	p, ok := b.plans[planID]
	if !ok {
		return nil, &api.Error{Status: 404, Message: "plan not found"}
	}
	cp := *p
	cp.Size = domain.ImageSize{}
	return &cp, nil
}

func (b *FakeBackend) ImageSize(_ context.Context, imageURL string) (domain.ImageSize, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("image_size"); err != nil {
		return domain.ImageSize{}, err
	}
	for _, p := range b.plans {
		if p.ImageURL == imageURL && p.Size.Loaded() {
			return p.Size, nil
		}
	}
	return domain.ImageSize{}, fmt.Errorf("%w: %s", api.ErrUnsupportedImage, imageURL)
}

func (b *FakeBackend) FetchPins(ctx context.Context, planID string) ([]domain.Pin, error) {
	b.mu.Lock()
	err := b.begin("fetch_pins")
	hook := b.FetchHook
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if hook != nil {
		if err := hook(ctx, planID); err != nil {
			return nil, err
		}
	}
	return b.PinsOf(planID), nil
}

func (b *FakeBackend) CreatePin(_ context.Context, req pins.CreatePinRequest) (*domain.Pin, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("create_pin"); err != nil {
		return nil, err
	}
	if req.Key != "" {
		if p, ok := b.byKey[req.Key]; ok {
			return &p, nil
		}
	}
	p := domain.Pin{
		ID:       uuid.New().String(),
		PlanID:   req.PlanID,
		Position: req.Position,
		Task:     &domain.TaskRef{ID: req.TaskID, Title: b.taskTitle(req.TaskID)},
	}
	b.pins[req.PlanID] = append(b.pins[req.PlanID], p)
	if req.Key != "" {
		b.byKey[req.Key] = p
	}
	return &p, nil
}

func (b *FakeBackend) taskTitle(id string) string {
	for _, ts := range b.tasks {
		for _, t := range ts {
			if t.ID == id {
				return t.Title
			}
		}
	}
	return ""
}

func (b *FakeBackend) CreateTask(_ context.Context, t *domain.Task) (*domain.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("create_task"); err != nil {
		return nil, err
	}
	cp := *t
	cp.ID = uuid.New().String()
	b.tasks[cp.ProjectID] = append(b.tasks[cp.ProjectID], &cp)
	out := cp
	return &out, nil
}

func (b *FakeBackend) ListTasks(_ context.Context, projectID string) ([]*domain.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("list_tasks"); err != nil {
		return nil, err
	}
	out := make([]*domain.Task, 0, len(b.tasks[projectID]))
	for _, t := range b.tasks[projectID] {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (b *FakeBackend) ListUsers(_ context.Context, companyID string) ([]domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.begin("list_users"); err != nil {
		return nil, err
	}
	return append([]domain.User(nil), b.users[companyID]...), nil
}
