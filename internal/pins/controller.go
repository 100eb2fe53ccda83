// Package pins owns the pin list of one displayed plan: refresh, placement
// of new pins and search by task title.
package pins

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/pinmap"
	"github.com/google/uuid"
)

// State is the placement state of a controller.
type State int

const (
	// StateIdle ignores touches on the image.
	StateIdle State = iota
	// StateArmed turns the next touch into a pending pin.
	StateArmed
	// StatePlacing holds a pending pin while its task is being created.
	StatePlacing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StatePlacing:
		return "placing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// CreatePinRequest binds a placed position to a created task.
type CreatePinRequest struct {
	PlanID   string
	Position domain.Position
	TaskID   string

	// Key is stable across retries of the same placement.
	Key string
}

// Store is the remote source of pins.
type Store interface {
	FetchPins(ctx context.Context, planID string) ([]domain.Pin, error)
	CreatePin(ctx context.Context, req CreatePinRequest) (*domain.Pin, error)
}

// Controller holds the pins of one plan view. It is safe for concurrent use;
// network calls run without holding the lock.
type Controller struct {
	planID   string
	store    Store
	observer Observer

	mu            sync.Mutex
	pins          []domain.Pin
	loaded        bool
	pending       *domain.PendingPin
	state         State
	refreshSeq    uint64
	cancelRefresh context.CancelFunc
	cancelCommit  context.CancelFunc
	committing    bool
	closed        bool
}

// New creates a controller for planID. The pin set is empty until the first
// Refresh; hosts call OnViewActivated on mount.
func New(planID string, store Store, observers ...Observer) *Controller {
	return &Controller{
		planID:   planID,
		store:    store,
		observer: observerOrNoop(observers),
		pins:     []domain.Pin{},
	}
}

// PlanID returns the plan this controller is bound to.
func (c *Controller) PlanID() string { return c.planID }

// Pins returns a copy of the current pin set in source order.
func (c *Controller) Pins() []domain.Pin {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clonePins(c.pins)
}

// Loaded reports whether at least one refresh has been applied.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Pending returns the pending pin, if any.
func (c *Controller) Pending() (domain.PendingPin, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return domain.PendingPin{}, false
	}
	return *c.pending, true
}

// State returns the placement state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Active reports whether placement mode is armed (or a placement is open).
func (c *Controller) Active() bool {
	return c.State() != StateIdle
}

// OnViewActivated is called by the host when the view mounts or regains
// focus, e.g. when returning from task creation.
func (c *Controller) OnViewActivated(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh replaces the pin set with the store's current list. A newer
// Refresh cancels an older in-flight one, and the older result is dropped
// with ErrStale. On failure the previous set is kept.
func (c *Controller) Refresh(ctx context.Context) error {
	start := time.Now()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.cancelRefresh != nil {
		c.cancelRefresh()
	}
	c.refreshSeq++
	seq := c.refreshSeq
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelRefresh = cancel
	c.mu.Unlock()
	defer cancel()

	fetched, fetchErr := c.store.FetchPins(fetchCtx, c.planID)

	c.mu.Lock()
	var err error
	switch {
	case c.closed || seq != c.refreshSeq:
		err = ErrStale
	case fetchErr != nil:
		c.cancelRefresh = nil
		err = fmt.Errorf("%w: %v", ErrFetchFailure, fetchErr)
	default:
		c.cancelRefresh = nil
		c.pins = clonePins(fetched)
		c.loaded = true
	}
	count := len(c.pins)
	c.mu.Unlock()

	c.observe(ctx, OpRefresh, start, err, map[string]any{"pins": count})
	return err
}

// BeginPlacement maps a touch to a pending pin and enters StatePlacing.
// A pending pin left over from an earlier touch is discarded.
func (c *Controller) BeginPlacement(t pinmap.Touch, image domain.ImageSize, zoom bool) (domain.PendingPin, error) {
	start := time.Now()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.PendingPin{}, ErrClosed
	}
	if c.state == StateIdle {
		c.mu.Unlock()
		return domain.PendingPin{}, ErrNotArmed
	}

	pos, err := pinmap.Map(t, image, zoom)
	if err != nil {
		c.mu.Unlock()
		if errors.Is(err, pinmap.ErrImageNotLoaded) {
			err = fmt.Errorf("%w: %w", ErrLoadFailure, err)
		}
		c.observe(context.Background(), OpBegin, start, err, nil)
		return domain.PendingPin{}, err
	}

	replaced := c.pending != nil
	p := domain.PendingPin{Position: pos, Key: uuid.NewString()}
	c.pending = &p
	c.state = StatePlacing
	c.mu.Unlock()

	c.observe(context.Background(), OpBegin, start, nil, map[string]any{
		"x": pos.X, "y": pos.Y, "zoom": zoom, "replaced": replaced,
	})
	return p, nil
}

// CommitPlacement creates a pin for the pending position and taskID, then
// refreshes. If creation fails the pending pin is kept and ErrCreateFailure
// is returned; the task already exists at that point and is not rolled back.
// A refresh error after a successful create is returned as is. Only one
// commit runs at a time; an overlapping call gets ErrCommitInFlight.
func (c *Controller) CommitPlacement(ctx context.Context, taskID string) error {
	start := time.Now()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.pending == nil {
		c.mu.Unlock()
		return ErrNoPendingPin
	}
	if taskID == "" {
		c.mu.Unlock()
		return ErrMissingTask
	}
	if c.committing {
		c.mu.Unlock()
		return ErrCommitInFlight
	}
	c.committing = true
	pending := *c.pending
	commitCtx, cancel := context.WithCancel(ctx)
	c.cancelCommit = cancel
	c.mu.Unlock()
	defer cancel()

	_, createErr := c.store.CreatePin(commitCtx, CreatePinRequest{
		PlanID:   c.planID,
		Position: pending.Position,
		TaskID:   taskID,
		Key:      pending.Key,
	})

	c.mu.Lock()
	c.committing = false
	if c.closed {
		c.mu.Unlock()
		c.observe(ctx, OpCommit, start, ErrStale, nil)
		return ErrStale
	}
	c.cancelCommit = nil
	if createErr != nil {
		c.mu.Unlock()
		err := fmt.Errorf("%w: %v", ErrCreateFailure, createErr)
		c.observe(ctx, OpCommit, start, err, map[string]any{"task_id": taskID})
		return err
	}
	// A newer touch may have replaced the pending pin while the request ran.
	if c.pending != nil && c.pending.Key == pending.Key {
		c.pending = nil
		if c.state == StatePlacing {
			c.state = StateArmed
		}
	}
	c.mu.Unlock()

	c.observe(ctx, OpCommit, start, nil, map[string]any{"task_id": taskID})
	return c.Refresh(ctx)
}

// AbandonPlacement drops the pending pin without creating anything.
func (c *Controller) AbandonPlacement() {
	start := time.Now()

	c.mu.Lock()
	had := c.pending != nil
	c.pending = nil
	if c.state == StatePlacing {
		c.state = StateArmed
	}
	c.mu.Unlock()

	if had {
		c.observe(context.Background(), OpAbandon, start, nil, nil)
	}
}

// ToggleActive arms or disarms placement mode and returns the new value.
// Disarming while a placement is open abandons it.
func (c *Controller) ToggleActive() bool {
	start := time.Now()

	c.mu.Lock()
	switch c.state {
	case StateIdle:
		c.state = StateArmed
	default:
		c.pending = nil
		c.state = StateIdle
	}
	active := c.state != StateIdle
	c.mu.Unlock()

	c.observe(context.Background(), OpToggle, start, nil, map[string]any{"active": active})
	return active
}

// Search returns pins whose task title contains query, ignoring case, in
// source order. An empty query means no filter and returns every pin; a
// query that matches nothing returns an empty, non-nil slice.
func (c *Controller) Search(query string) []domain.Pin {
	c.mu.Lock()
	defer c.mu.Unlock()

	if query == "" {
		return clonePins(c.pins)
	}
	matched := make([]domain.Pin, 0)
	for _, p := range c.pins {
		if p.MatchesTitle(query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Close detaches the controller from its view. In-flight calls are
// cancelled and their results are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancelRefresh != nil {
		c.cancelRefresh()
		c.cancelRefresh = nil
	}
	if c.cancelCommit != nil {
		c.cancelCommit()
		c.cancelCommit = nil
	}
}

func (c *Controller) observe(ctx context.Context, op Op, start time.Time, err error, fields map[string]any) {
	c.observer.ObservePins(ctx, Event{
		Op:       op,
		PlanID:   c.planID,
		Duration: time.Since(start),
		Err:      err,
		Fields:   fields,
	})
}

func clonePins(src []domain.Pin) []domain.Pin {
	out := make([]domain.Pin, len(src))
	copy(out, src)
	return out
}
