package notify

import (
	"context"
	"log/slog"

	boardmodels "github.com/L968/trecco-api/internal/board/models"
)

// CardMovedBroadcaster is the event handler that pushes card moves to
// clients. Other event types pass through untouched; they reach clients via
// the action-log feed instead.
type CardMovedBroadcaster struct {
	notifier Notifier
	logger   *slog.Logger
}

// NewCardMovedBroadcaster constructs the broadcaster.
func NewCardMovedBroadcaster(notifier Notifier, logger *slog.Logger) *CardMovedBroadcaster {
	return &CardMovedBroadcaster{notifier: notifier, logger: logger}
}

func (b *CardMovedBroadcaster) Name() string { return "card-moved-broadcaster" }

func (b *CardMovedBroadcaster) Handle(ctx context.Context, event boardmodels.DomainEvent) error {
	moved, ok := event.(boardmodels.CardMoved)
	if !ok {
		return nil
	}
	return b.notifier.CardMoved(ctx, moved.EventBoardID(), CardMovedPayload{
		CardID:         moved.CardID,
		CardTitle:      moved.CardTitle,
		TargetListID:   moved.TargetListID,
		TargetListName: moved.TargetListName,
		TargetPosition: moved.TargetPosition,
	})
}
