package notify

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "github.com/L968/trecco-api/pkg/domain"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.DiscardHandler))
}

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case frame := <-ch:
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func TestBroadcastReachesAllBoardSubscribers(t *testing.T) {
	hub := newTestHub()
	boardID := id.NewBoardID()

	ch1, cancel1 := hub.Subscribe(boardID)
	defer cancel1()
	ch2, cancel2 := hub.Subscribe(boardID)
	defer cancel2()

	hub.Broadcast(boardID, []byte("frame"))

	assert.Equal(t, []byte("frame"), receive(t, ch1))
	assert.Equal(t, []byte("frame"), receive(t, ch2))
}

func TestBroadcastIsScopedToBoard(t *testing.T) {
	hub := newTestHub()
	watched := id.NewBoardID()
	other := id.NewBoardID()

	ch, cancel := hub.Subscribe(watched)
	defer cancel()

	hub.Broadcast(other, []byte("frame"))

	select {
	case frame := <-ch:
		t.Fatalf("unexpected frame: %s", frame)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelUnsubscribesAndClosesChannel(t *testing.T) {
	hub := newTestHub()
	boardID := id.NewBoardID()

	ch, cancel := hub.Subscribe(boardID)
	require.Equal(t, 1, hub.SubscriberCount(boardID))

	cancel()
	assert.Equal(t, 0, hub.SubscriberCount(boardID))

	_, open := <-ch
	assert.False(t, open)

	// Idempotent.
	cancel()
}

func TestSlowSubscriberDropsFramesInsteadOfBlocking(t *testing.T) {
	hub := newTestHub()
	boardID := id.NewBoardID()

	_, cancel := hub.Subscribe(boardID)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Broadcast(boardID, []byte("frame"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}
}

func TestChannelRoundTrip(t *testing.T) {
	boardID := id.NewBoardID()
	parsed, err := BoardIDFromChannel(Channel(boardID))
	require.NoError(t, err)
	assert.Equal(t, boardID, parsed)

	_, err = BoardIDFromChannel("sessions:abc")
	assert.Error(t, err)
}
