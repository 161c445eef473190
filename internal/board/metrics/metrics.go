package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the board module.
// Tracks board/card activity counts and command durations on the hot paths.
type Metrics struct {
	BoardsCreated    prometheus.Counter
	CardsCreated     prometheus.Counter
	CardsMoved       prometheus.Counter
	MoveCardDuration prometheus.Histogram
	GetBoardDuration prometheus.Histogram
}

// New creates a new Metrics instance with all board module metrics registered.
func New() *Metrics {
	return &Metrics{
		BoardsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trecco_boards_created_total",
			Help: "Total number of boards created",
		}),
		CardsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trecco_cards_created_total",
			Help: "Total number of cards created",
		}),
		CardsMoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trecco_cards_moved_total",
			Help: "Total number of card moves",
		}),
		MoveCardDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trecco_move_card_duration_seconds",
			Help:    "Duration of MoveCard commands (drag-and-drop critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		GetBoardDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trecco_get_board_duration_seconds",
			Help:    "Duration of GetBoard reads (board open path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementBoardsCreated records a successful board creation.
func (m *Metrics) IncrementBoardsCreated() {
	m.BoardsCreated.Inc()
}

// IncrementCardsCreated records a successful card creation.
func (m *Metrics) IncrementCardsCreated() {
	m.CardsCreated.Inc()
}

// IncrementCardsMoved records a successful card move.
func (m *Metrics) IncrementCardsMoved() {
	m.CardsMoved.Inc()
}

// ObserveMoveCard records the duration of a MoveCard command.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveMoveCard(start time.Time) {
	m.MoveCardDuration.Observe(time.Since(start).Seconds())
}

// ObserveGetBoard records the duration of a GetBoard read.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveGetBoard(start time.Time) {
	m.GetBoardDuration.Observe(time.Since(start).Seconds())
}
