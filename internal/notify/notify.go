// Package notify pushes board changes to connected clients in real time.
// Mutating commands publish typed frames to a redis channel per board; the
// in-process hub subscribes and fans the frames out to SSE streams.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	actionlogmodels "github.com/L968/trecco-api/internal/actionlog/models"
	id "github.com/L968/trecco-api/pkg/domain"
)

// Frame types pushed to clients.
const (
	TypeCardMoved   = "CardMoved"
	TypeBoardLogged = "BoardLogged"
)

const channelPrefix = "board:"

// Message is the wire frame published to redis and forwarded verbatim to SSE
// clients.
type Message struct {
	Type    string          `json:"type"`
	BoardID id.BoardID      `json:"board_id"`
	Payload json.RawMessage `json:"payload"`
}

// CardMovedPayload mirrors the CardMoved domain event for clients that apply
// moves optimistically.
type CardMovedPayload struct {
	CardID         id.CardID `json:"card_id"`
	CardTitle      string    `json:"card_title"`
	TargetListID   id.ListID `json:"target_list_id"`
	TargetListName string    `json:"target_list_name"`
	TargetPosition int       `json:"target_position"`
}

// NewMessage builds a frame with the payload marshalled in place.
func NewMessage(msgType string, boardID id.BoardID, payload any) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	return &Message{Type: msgType, BoardID: boardID, Payload: raw}, nil
}

// Channel returns the redis channel carrying one board's frames.
func Channel(boardID id.BoardID) string {
	return channelPrefix + boardID.String()
}

// ChannelPattern matches every board channel, for PSUBSCRIBE.
func ChannelPattern() string {
	return channelPrefix + "*"
}

// BoardIDFromChannel parses the board id out of a channel name.
func BoardIDFromChannel(channel string) (id.BoardID, error) {
	raw, ok := strings.CutPrefix(channel, channelPrefix)
	if !ok {
		return id.BoardID{}, fmt.Errorf("not a board channel: %q", channel)
	}
	return id.ParseBoardID(raw)
}

// Notifier is what command-side code depends on. Both methods are
// best-effort: callers log failures and move on.
type Notifier interface {
	CardMoved(ctx context.Context, boardID id.BoardID, payload CardMovedPayload) error
	BoardLogged(ctx context.Context, boardID id.BoardID, entry *actionlogmodels.BoardActionLog) error
}
