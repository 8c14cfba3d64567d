package canvas

import (
	"context"
	"time"
)

// ActivityEventType enumerates canvas audit categories.
type ActivityEventType string

const (
	ActivityEventCanvasSuccess  ActivityEventType = "canvas.auth.success"
	ActivityEventCanvasRejected ActivityEventType = "canvas.auth.rejected"
)

// ActivityEvent captures audit information about one canvas request.
type ActivityEvent struct {
	ID             string
	EventType      ActivityEventType
	UserID         string
	OrganizationID string
	TextCode       string
	Reason         string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// ActivitySink consumes activity events for auditing.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
