// Package redis publishes notification frames to per-board redis channels.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	actionlogmodels "github.com/L968/trecco-api/internal/actionlog/models"
	"github.com/L968/trecco-api/internal/notify"
	id "github.com/L968/trecco-api/pkg/domain"
)

// Publisher implements notify.Notifier over redis pub/sub.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a redis-backed notifier.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) CardMoved(ctx context.Context, boardID id.BoardID, payload notify.CardMovedPayload) error {
	return p.publish(ctx, boardID, notify.TypeCardMoved, payload)
}

func (p *Publisher) BoardLogged(ctx context.Context, boardID id.BoardID, entry *actionlogmodels.BoardActionLog) error {
	return p.publish(ctx, boardID, notify.TypeBoardLogged, entry)
}

func (p *Publisher) publish(ctx context.Context, boardID id.BoardID, msgType string, payload any) error {
	msg, err := notify.NewMessage(msgType, boardID, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification frame: %w", err)
	}
	if err := p.client.Publish(ctx, notify.Channel(boardID), data).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
