// Package events dispatches the domain events a board command produced to the
// registered side-effect handlers (action log, realtime notifications, email).
// Dispatch runs after the board has been persisted: handler failures are
// logged and swallowed so side effects can never fail or roll back a command.
package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/L968/trecco-api/internal/board/models"
)

// Handler reacts to a single domain event. Implementations must tolerate
// events they do not care about (return nil).
type Handler interface {
	// Name identifies the handler in failure logs.
	Name() string
	Handle(ctx context.Context, event models.DomainEvent) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc struct {
	HandlerName string
	Func        func(ctx context.Context, event models.DomainEvent) error
}

func (f HandlerFunc) Name() string { return f.HandlerName }

func (f HandlerFunc) Handle(ctx context.Context, event models.DomainEvent) error {
	return f.Func(ctx, event)
}

// Dispatcher fans each drained event out to every handler, in registration
// order. One handler failing (error or panic) never stops the others and
// never surfaces to the caller.
type Dispatcher struct {
	handlers []Handler
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given handlers.
func NewDispatcher(logger *slog.Logger, handlers ...Handler) *Dispatcher {
	return &Dispatcher{
		handlers: handlers,
		logger:   logger,
	}
}

// Dispatch drains the board's event buffer and delivers every event to every
// handler. It must be called exactly once per command, after the board has
// been written to the store.
func (d *Dispatcher) Dispatch(ctx context.Context, board *models.Board) {
	for _, event := range board.PullEvents() {
		for _, handler := range d.handlers {
			d.deliver(ctx, handler, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, handler Handler, event models.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "event handler panicked",
				"handler", handler.Name(),
				"event_type", fmt.Sprintf("%T", event),
				"board_id", event.EventBoardID(),
				"panic", r,
			)
		}
	}()

	if err := handler.Handle(ctx, event); err != nil {
		d.logger.ErrorContext(ctx, "event handler failed",
			"handler", handler.Name(),
			"event_type", fmt.Sprintf("%T", event),
			"board_id", event.EventBoardID(),
			"error", err,
		)
	}
}
