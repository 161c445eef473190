package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	id "github.com/L968/trecco-api/pkg/domain"
)

const subscriberBuffer = 16

// Hub fans notification frames out to SSE subscribers, keyed by board. It can
// be fed directly via Broadcast (single-process deployments, tests) or from
// redis via Run (multi-process deployments).
type Hub struct {
	mu     sync.RWMutex
	subs   map[id.BoardID]map[chan []byte]struct{}
	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[id.BoardID]map[chan []byte]struct{}),
		logger: logger,
	}
}

// Subscribe registers a subscriber for one board's frames. The returned
// cancel func must be called when the client disconnects; after cancel the
// channel is closed.
func (h *Hub) Subscribe(boardID id.BoardID) (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBuffer)

	h.mu.Lock()
	if h.subs[boardID] == nil {
		h.subs[boardID] = make(map[chan []byte]struct{})
	}
	h.subs[boardID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[boardID], ch)
			if len(h.subs[boardID]) == 0 {
				delete(h.subs, boardID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Broadcast delivers a frame to every subscriber of the board. Subscribers
// that cannot keep up have the frame dropped rather than blocking the hub.
func (h *Hub) Broadcast(boardID id.BoardID, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[boardID] {
		select {
		case ch <- frame:
		default:
			h.logger.Warn("dropping frame for slow subscriber", "board_id", boardID)
		}
	}
}

// SubscriberCount reports how many clients are watching the board.
func (h *Hub) SubscriberCount(boardID id.BoardID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[boardID])
}

// Run bridges redis pub/sub into the hub: it pattern-subscribes to every
// board channel and broadcasts each message locally. Blocks until ctx is
// cancelled.
func (h *Hub) Run(ctx context.Context, client *redis.Client) error {
	pubsub := client.PSubscribe(ctx, ChannelPattern())
	defer func() { _ = pubsub.Close() }()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			boardID, err := BoardIDFromChannel(msg.Channel)
			if err != nil {
				h.logger.Warn("dropping frame from unexpected channel", "channel", msg.Channel)
				continue
			}
			h.Broadcast(boardID, []byte(msg.Payload))
		}
	}
}
