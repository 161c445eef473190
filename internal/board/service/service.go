package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/L968/trecco-api/internal/board/metrics"
	"github.com/L968/trecco-api/internal/board/models"
	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
	"github.com/L968/trecco-api/pkg/platform/sentinel"
	"github.com/L968/trecco-api/pkg/requestcontext"
)

type BoardStore interface {
	GetByID(ctx context.Context, boardID id.BoardID) (*models.Board, error)
	GetByUser(ctx context.Context, userID id.UserID) ([]*models.Board, error)
	Insert(ctx context.Context, board *models.Board) error
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, boardID id.BoardID) error
}

type Dispatcher interface {
	Dispatch(ctx context.Context, board *models.Board)
}

// Service orchestrates board commands. Every mutating command follows the
// same shape: load the aggregate, check access, apply one aggregate method,
// persist the whole document, then hand the drained events to the dispatcher.
// Side effects run after the write and can never fail the command.
type Service struct {
	boards     BoardStore
	logger     *slog.Logger
	metrics    *metrics.Metrics
	dispatcher Dispatcher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithDispatcher(d Dispatcher) Option {
	return func(s *Service) {
		s.dispatcher = d
	}
}

// New constructs a Service.
func New(boards BoardStore, opts ...Option) *Service {
	s := &Service{
		boards: boards,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBoard creates an empty board owned by the requesting user.
func (s *Service) CreateBoard(ctx context.Context, userID id.UserID, name string) (*models.Board, error) {
	board, err := models.NewBoard(name, userID, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.boards.Insert(ctx, board); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "board already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create board")
	}

	s.logger.InfoContext(ctx, "board created", "board_id", board.ID, "owner_id", userID)
	if s.metrics != nil {
		s.metrics.IncrementBoardsCreated()
	}
	return board, nil
}

// GetBoard returns the board if the user owns it or is a member.
func (s *Service) GetBoard(ctx context.Context, userID id.UserID, boardID id.BoardID) (*models.Board, error) {
	start := time.Now()
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveGetBoard(start)
	}
	return board, nil
}

// GetMyBoards returns every board the user owns or is a member of.
func (s *Service) GetMyBoards(ctx context.Context, userID id.UserID) ([]*models.Board, error) {
	boards, err := s.boards.GetByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list boards")
	}
	return boards, nil
}

// UpdateBoardName renames the board.
func (s *Service) UpdateBoardName(ctx context.Context, userID id.UserID, boardID id.BoardID, name string) error {
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if err := board.UpdateName(name, requestcontext.Now(ctx)); err != nil {
		return err
	}
	return s.save(ctx, board)
}

// DeleteBoard removes the board and everything on it.
func (s *Service) DeleteBoard(ctx context.Context, userID id.UserID, boardID id.BoardID) error {
	if _, err := s.loadAuthorized(ctx, userID, boardID); err != nil {
		return err
	}
	if err := s.boards.Delete(ctx, boardID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.ErrBoardNotFound(boardID)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete board")
	}
	s.logger.InfoContext(ctx, "board deleted", "board_id", boardID, "user_id", userID)
	return nil
}

// AddMember adds memberID to the board. Adding the owner or an existing
// member fails with Board.AlreadyMember so the caller learns nothing changed.
func (s *Service) AddMember(ctx context.Context, userID id.UserID, boardID id.BoardID, memberID id.UserID) error {
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if memberID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "member id is required")
	}
	if memberID == board.OwnerID || board.IsMember(memberID) {
		return dErrors.New(models.CodeBoardAlreadyMember, "user is already a member of this board")
	}
	board.AddMember(memberID, requestcontext.Now(ctx))
	return s.save(ctx, board)
}

// RemoveMember removes memberID from the board, subject to the removal
// policy: the owner cannot be removed, and non-owners may only remove
// themselves.
func (s *Service) RemoveMember(ctx context.Context, userID id.UserID, boardID id.BoardID, memberID id.UserID) error {
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if err := board.CanRemoveMember(userID, memberID); err != nil {
		return err
	}
	if !board.IsMember(memberID) {
		return dErrors.New(models.CodeBoardNotMember, "user is not a member of this board")
	}
	board.RemoveMember(memberID, requestcontext.Now(ctx))
	return s.save(ctx, board)
}

// CreateList appends a new list at the end of the board.
func (s *Service) CreateList(ctx context.Context, userID id.UserID, boardID id.BoardID, name string) (*models.List, error) {
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}
	list, err := board.AddList(name, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, board); err != nil {
		return nil, err
	}
	return list, nil
}

// RenameList renames a list on the board.
func (s *Service) RenameList(ctx context.Context, userID id.UserID, boardID id.BoardID, listID id.ListID, name string) error {
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if err := board.RenameList(listID, name, requestcontext.Now(ctx)); err != nil {
		return err
	}
	return s.save(ctx, board)
}

// DeleteList removes a list and its cards. Deleting an absent list succeeds
// without persisting anything.
func (s *Service) DeleteList(ctx context.Context, userID id.UserID, boardID id.BoardID, listID id.ListID) error {
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if board.ListByID(listID) == nil {
		return nil
	}
	board.RemoveList(listID, requestcontext.Now(ctx))
	return s.save(ctx, board)
}

// CreateCard creates a card at the end of the given list.
func (s *Service) CreateCard(ctx context.Context, userID id.UserID, boardID id.BoardID, listID id.ListID, title, description string) (*models.Card, error) {
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}
	card, err := board.AddCard(listID, title, description, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, board); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementCardsCreated()
	}
	return card, nil
}

// UpdateCard replaces a card's title and description.
func (s *Service) UpdateCard(ctx context.Context, userID id.UserID, boardID id.BoardID, cardID id.CardID, title, description string) error {
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if err := board.UpdateCard(cardID, title, description, requestcontext.Now(ctx)); err != nil {
		return err
	}
	return s.save(ctx, board)
}

// MoveCard moves a card to a target list and position.
func (s *Service) MoveCard(ctx context.Context, userID id.UserID, boardID id.BoardID, cardID id.CardID, targetListID id.ListID, targetPosition int) error {
	start := time.Now()
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if err := board.MoveCard(cardID, targetListID, targetPosition, requestcontext.Now(ctx)); err != nil {
		return err
	}
	if err := s.save(ctx, board); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.IncrementCardsMoved()
		s.metrics.ObserveMoveCard(start)
	}
	return nil
}

// DeleteCard removes a card from its list. Deleting an absent card succeeds
// without persisting anything.
func (s *Service) DeleteCard(ctx context.Context, userID id.UserID, boardID id.BoardID, cardID id.CardID) error {
	board, err := s.loadAuthorized(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if board.GetCardByID(cardID) == nil {
		return nil
	}
	board.DeleteCard(cardID, requestcontext.Now(ctx))
	return s.save(ctx, board)
}

func (s *Service) loadAuthorized(ctx context.Context, userID id.UserID, boardID id.BoardID) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, models.ErrBoardNotFound(boardID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load board")
	}
	if !board.HasAccess(userID) {
		return nil, models.ErrNotAuthorized
	}
	return board, nil
}

// save persists the mutated aggregate and, only on success, dispatches its
// drained events. When no dispatcher is configured the buffer is still
// drained so a reused snapshot cannot leak stale events.
func (s *Service) save(ctx context.Context, board *models.Board) error {
	if err := s.boards.Update(ctx, board); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.ErrBoardNotFound(board.ID)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save board")
	}
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, board)
	} else {
		board.PullEvents()
	}
	return nil
}
