package pins

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Op names a controller operation in telemetry.
type Op string

const (
	OpRefresh Op = "refresh"
	OpBegin   Op = "begin_placement"
	OpCommit  Op = "commit_placement"
	OpAbandon Op = "abandon_placement"
	OpToggle  Op = "toggle_active"
)

// Event captures one controller operation.
type Event struct {
	Op       Op
	PlanID   string
	Duration time.Duration
	Err      error
	Fields   map[string]any
}

// Observer receives controller events.
type Observer interface {
	ObservePins(ctx context.Context, event Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObservePins(context.Context, Event) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes controller events to w as slog text records.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObservePins(ctx context.Context, event Event) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"op", string(event.Op),
		"plan_id", event.PlanID,
		"duration_ms", event.Duration.Milliseconds(),
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.WarnContext(ctx, "pins", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "pins", attrs...)
}

func observerOrNoop(observers []Observer) Observer {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopObserver{}
}
