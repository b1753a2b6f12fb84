// Package notifications fans order events out to the realtime transports.
// Commands publish through the dispatcher after their transaction commits;
// delivery is best effort and never propagates back into the business flow.
package notifications

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// Sink delivers events over one transport, such as the websocket hub or
// the Kafka order stream.
type Sink interface {
	// Name identifies the sink in logs.
	Name() string

	// Deliver pushes one event. Implementations must respect the context
	// deadline and return quickly.
	Deliver(ctx context.Context, event ports.Event) error
}

// Dispatcher implements ports.NotificationPublisher over a set of sinks.
// Every sink gets every event; a failing sink is logged and skipped so one
// slow or broken transport cannot take the others down with it.
type Dispatcher struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher over the given sinks.
func NewDispatcher(logger *slog.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		sinks:  sinks,
		logger: logger.With("component", "notification_dispatcher"),
	}
}

// Publish fans the event out to all sinks.
// Runs detached from the caller: the originating request does not wait for
// delivery and never observes sink errors.
func (d *Dispatcher) Publish(_ context.Context, event ports.Event) {
	go func() {
		ctx := context.Background()
		for _, sink := range d.sinks {
			if err := sink.Deliver(ctx, event); err != nil {
				d.logger.WarnContext(ctx, "event delivery failed",
					"sink", sink.Name(),
					"event", event.Name,
					"rooms", event.Rooms,
					"error", err)
			}
		}
	}()
}
