package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/L968/trecco-api/internal/board/models"
	"github.com/L968/trecco-api/internal/http/shared"
	"github.com/L968/trecco-api/internal/notify"
	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
	"github.com/L968/trecco-api/pkg/requestcontext"
)

// Service defines the board operations the handler exposes.
type Service interface {
	CreateBoard(ctx context.Context, userID id.UserID, name string) (*models.Board, error)
	GetBoard(ctx context.Context, userID id.UserID, boardID id.BoardID) (*models.Board, error)
	GetMyBoards(ctx context.Context, userID id.UserID) ([]*models.Board, error)
	UpdateBoardName(ctx context.Context, userID id.UserID, boardID id.BoardID, name string) error
	DeleteBoard(ctx context.Context, userID id.UserID, boardID id.BoardID) error
	AddMember(ctx context.Context, userID id.UserID, boardID id.BoardID, memberID id.UserID) error
	RemoveMember(ctx context.Context, userID id.UserID, boardID id.BoardID, memberID id.UserID) error
	CreateList(ctx context.Context, userID id.UserID, boardID id.BoardID, name string) (*models.List, error)
	RenameList(ctx context.Context, userID id.UserID, boardID id.BoardID, listID id.ListID, name string) error
	DeleteList(ctx context.Context, userID id.UserID, boardID id.BoardID, listID id.ListID) error
	CreateCard(ctx context.Context, userID id.UserID, boardID id.BoardID, listID id.ListID, title, description string) (*models.Card, error)
	UpdateCard(ctx context.Context, userID id.UserID, boardID id.BoardID, cardID id.CardID, title, description string) error
	MoveCard(ctx context.Context, userID id.UserID, boardID id.BoardID, cardID id.CardID, targetListID id.ListID, targetPosition int) error
	DeleteCard(ctx context.Context, userID id.UserID, boardID id.BoardID, cardID id.CardID) error
}

// Handler handles board endpoints. All routes require an authenticated user.
type Handler struct {
	boards Service
	hub    *notify.Hub
	logger *slog.Logger
}

// New creates a new board Handler. hub may be nil when the realtime stream is
// disabled; the events route then responds 404.
func New(boards Service, hub *notify.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		boards: boards,
		hub:    hub,
		logger: logger,
	}
}

// Register registers the board routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/boards", h.handleCreateBoard)
	r.Get("/boards", h.handleGetMyBoards)
	r.Get("/boards/{boardID}", h.handleGetBoard)
	r.Put("/boards/{boardID}/name", h.handleUpdateBoardName)
	r.Delete("/boards/{boardID}", h.handleDeleteBoard)

	r.Post("/boards/{boardID}/members", h.handleAddMember)
	r.Delete("/boards/{boardID}/members/{userID}", h.handleRemoveMember)

	r.Post("/boards/{boardID}/lists", h.handleCreateList)
	r.Put("/boards/{boardID}/lists/{listID}/name", h.handleRenameList)
	r.Delete("/boards/{boardID}/lists/{listID}", h.handleDeleteList)

	r.Post("/boards/{boardID}/lists/{listID}/cards", h.handleCreateCard)
	r.Put("/boards/{boardID}/cards/{cardID}", h.handleUpdateCard)
	r.Post("/boards/{boardID}/cards/{cardID}/move", h.handleMoveCard)
	r.Delete("/boards/{boardID}/cards/{cardID}", h.handleDeleteCard)

	if h.hub != nil {
		r.Get("/boards/{boardID}/events", h.handleEvents)
	}
}

func (h *Handler) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)

	var req createBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	board, err := h.boards.CreateBoard(ctx, userID, req.Name)
	if err != nil {
		h.writeServiceError(ctx, w, "create board", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, board)
}

func (h *Handler) handleGetMyBoards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	boards, err := h.boards.GetMyBoards(ctx, requestcontext.UserID(ctx))
	if err != nil {
		h.writeServiceError(ctx, w, "list boards", err)
		return
	}
	if boards == nil {
		boards = []*models.Board{}
	}
	shared.WriteJSON(w, http.StatusOK, boards)
}

func (h *Handler) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	board, err := h.boards.GetBoard(ctx, requestcontext.UserID(ctx), boardID)
	if err != nil {
		h.writeServiceError(ctx, w, "get board", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, board)
}

func (h *Handler) handleUpdateBoardName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req updateBoardNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	if err := h.boards.UpdateBoardName(ctx, requestcontext.UserID(ctx), boardID, req.Name); err != nil {
		h.writeServiceError(ctx, w, "rename board", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.boards.DeleteBoard(ctx, requestcontext.UserID(ctx), boardID); err != nil {
		h.writeServiceError(ctx, w, "delete board", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	memberID, err := id.ParseUserID(req.UserID)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid user id"))
		return
	}

	if err := h.boards.AddMember(ctx, requestcontext.UserID(ctx), boardID, memberID); err != nil {
		h.writeServiceError(ctx, w, "add member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	memberID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid user id"))
		return
	}

	if err := h.boards.RemoveMember(ctx, requestcontext.UserID(ctx), boardID, memberID); err != nil {
		h.writeServiceError(ctx, w, "remove member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req createListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	list, err := h.boards.CreateList(ctx, requestcontext.UserID(ctx), boardID, req.Name)
	if err != nil {
		h.writeServiceError(ctx, w, "create list", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, list)
}

func (h *Handler) handleRenameList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	listID, err := id.ParseListID(chi.URLParam(r, "listID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid list id"))
		return
	}

	var req renameListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	if err := h.boards.RenameList(ctx, requestcontext.UserID(ctx), boardID, listID, req.Name); err != nil {
		h.writeServiceError(ctx, w, "rename list", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	listID, err := id.ParseListID(chi.URLParam(r, "listID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid list id"))
		return
	}

	if err := h.boards.DeleteList(ctx, requestcontext.UserID(ctx), boardID, listID); err != nil {
		h.writeServiceError(ctx, w, "delete list", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	listID, err := id.ParseListID(chi.URLParam(r, "listID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid list id"))
		return
	}

	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	card, err := h.boards.CreateCard(ctx, requestcontext.UserID(ctx), boardID, listID, req.Title, req.Description)
	if err != nil {
		h.writeServiceError(ctx, w, "create card", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, card)
}

func (h *Handler) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	cardID, err := id.ParseCardID(chi.URLParam(r, "cardID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid card id"))
		return
	}

	var req updateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	if err := h.boards.UpdateCard(ctx, requestcontext.UserID(ctx), boardID, cardID, req.Title, req.Description); err != nil {
		h.writeServiceError(ctx, w, "update card", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	cardID, err := id.ParseCardID(chi.URLParam(r, "cardID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid card id"))
		return
	}

	var req moveCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}
	targetListID, err := id.ParseListID(req.TargetListID)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid target list id"))
		return
	}

	if err := h.boards.MoveCard(ctx, requestcontext.UserID(ctx), boardID, cardID, targetListID, req.TargetPosition); err != nil {
		h.writeServiceError(ctx, w, "move card", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	cardID, err := id.ParseCardID(chi.URLParam(r, "cardID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid card id"))
		return
	}

	if err := h.boards.DeleteCard(ctx, requestcontext.UserID(ctx), boardID, cardID); err != nil {
		h.writeServiceError(ctx, w, "delete card", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleEvents streams the board's notification frames over SSE. The caller
// must have board access; the stream stays open until the client disconnects.
func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	boardID, err := boardIDParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if _, err := h.boards.GetBoard(ctx, requestcontext.UserID(ctx), boardID); err != nil {
		h.writeServiceError(ctx, w, "open event stream", err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "streaming unsupported"))
		return
	}

	frames, cancel := h.hub.Subscribe(boardID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", frame); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, "board command failed",
			"op", op,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	shared.WriteError(w, err)
}

func boardIDParam(r *http.Request) (id.BoardID, error) {
	boardID, err := id.ParseBoardID(chi.URLParam(r, "boardID"))
	if err != nil {
		return id.BoardID{}, dErrors.New(dErrors.CodeValidation, "invalid board id")
	}
	return boardID, nil
}
