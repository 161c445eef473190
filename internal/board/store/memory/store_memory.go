// Package memory provides the in-memory BoardStore used by unit tests and
// local development.
package memory

import (
	"context"
	"sync"

	"github.com/L968/trecco-api/internal/board/models"
	id "github.com/L968/trecco-api/pkg/domain"
	"github.com/L968/trecco-api/pkg/platform/sentinel"
)

// InMemory stores board snapshots behind an RWMutex. Snapshots are deep
// copies in both directions so callers can never alias store state.
type InMemory struct {
	mu     sync.RWMutex
	boards map[id.BoardID]*models.Board
}

// NewInMemory creates an empty in-memory board store.
func NewInMemory() *InMemory {
	return &InMemory{boards: make(map[id.BoardID]*models.Board)}
}

func (s *InMemory) GetByID(ctx context.Context, boardID id.BoardID) (*models.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.boards[boardID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return board.Clone(), nil
}

func (s *InMemory) GetByUser(ctx context.Context, userID id.UserID) ([]*models.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Board
	for _, board := range s.boards {
		if board.HasAccess(userID) {
			result = append(result, board.Clone())
		}
	}
	return result, nil
}

func (s *InMemory) Insert(ctx context.Context, board *models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[board.ID]; exists {
		return sentinel.ErrConflict
	}
	s.boards[board.ID] = board.Clone()
	return nil
}

func (s *InMemory) Update(ctx context.Context, board *models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[board.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.boards[board.ID] = board.Clone()
	return nil
}

func (s *InMemory) Delete(ctx context.Context, boardID id.BoardID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[boardID]; !exists {
		return sentinel.ErrNotFound
	}
	delete(s.boards, boardID)
	return nil
}
