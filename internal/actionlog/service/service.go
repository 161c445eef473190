package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/L968/trecco-api/internal/actionlog/models"
	"github.com/L968/trecco-api/internal/actionlog/store"
	boardmodels "github.com/L968/trecco-api/internal/board/models"
	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
	"github.com/L968/trecco-api/pkg/platform/sentinel"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ActionLogStore interface {
	Insert(ctx context.Context, entry *models.BoardActionLog) error
	GetByBoard(ctx context.Context, boardID id.BoardID, q store.Query) ([]*models.BoardActionLog, int, error)
}

type BoardGetter interface {
	GetByID(ctx context.Context, boardID id.BoardID) (*boardmodels.Board, error)
}

// Service reads a board's activity feed. Access follows board access: anyone
// who can open the board can read its log.
type Service struct {
	logs   ActionLogStore
	boards BoardGetter
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(logs ActionLogStore, boards BoardGetter, opts ...Option) *Service {
	s := &Service{
		logs:   logs,
		boards: boards,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page is one page of a board's activity feed.
type Page struct {
	Entries  []*models.BoardActionLog `json:"entries"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
	Total    int                      `json:"total"`
}

// GetByBoard returns one page of the board's log, newest first. Out-of-range
// paging values are clamped rather than rejected.
func (s *Service) GetByBoard(ctx context.Context, userID id.UserID, boardID id.BoardID, q store.Query) (*Page, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, boardmodels.ErrBoardNotFound(boardID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load board")
	}
	if !board.HasAccess(userID) {
		return nil, boardmodels.ErrNotAuthorized
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}

	entries, total, err := s.logs.GetByBoard(ctx, boardID, q)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load action log")
	}
	return &Page{
		Entries:  entries,
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    total,
	}, nil
}
