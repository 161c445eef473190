package notify

import (
	"context"
	"encoding/json"
	"fmt"

	actionlogmodels "github.com/L968/trecco-api/internal/actionlog/models"
	id "github.com/L968/trecco-api/pkg/domain"
)

// LocalNotifier feeds frames straight into the in-process hub, bypassing
// redis. Used when no redis is configured: single-process deployments, tests
// and local development.
type LocalNotifier struct {
	hub *Hub
}

// NewLocalNotifier creates a notifier over the given hub.
func NewLocalNotifier(hub *Hub) *LocalNotifier {
	return &LocalNotifier{hub: hub}
}

func (n *LocalNotifier) CardMoved(ctx context.Context, boardID id.BoardID, payload CardMovedPayload) error {
	return n.broadcast(boardID, TypeCardMoved, payload)
}

func (n *LocalNotifier) BoardLogged(ctx context.Context, boardID id.BoardID, entry *actionlogmodels.BoardActionLog) error {
	return n.broadcast(boardID, TypeBoardLogged, entry)
}

func (n *LocalNotifier) broadcast(boardID id.BoardID, msgType string, payload any) error {
	msg, err := NewMessage(msgType, boardID, payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification frame: %w", err)
	}
	n.hub.Broadcast(boardID, frame)
	return nil
}
