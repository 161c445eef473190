package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/L968/trecco-api/internal/actionlog/service"
	"github.com/L968/trecco-api/internal/actionlog/store"
	"github.com/L968/trecco-api/internal/http/shared"
	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
	"github.com/L968/trecco-api/pkg/requestcontext"
)

// Service defines the action log read operations the handler exposes.
type Service interface {
	GetByBoard(ctx context.Context, userID id.UserID, boardID id.BoardID, q store.Query) (*service.Page, error)
}

// Handler serves a board's activity feed.
type Handler struct {
	logs   Service
	logger *slog.Logger
}

// New creates a new action log Handler.
func New(logs Service, logger *slog.Logger) *Handler {
	return &Handler{logs: logs, logger: logger}
}

// Register registers the action log routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/boards/{boardID}/logs", h.handleGetLogs)
}

func (h *Handler) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	boardID, err := id.ParseBoardID(chi.URLParam(r, "boardID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid board id"))
		return
	}

	q := store.Query{
		Page:     intQueryParam(r, "page", 1),
		PageSize: intQueryParam(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
	}

	page, err := h.logs.GetByBoard(ctx, requestcontext.UserID(ctx), boardID, q)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to load action log",
				"board_id", boardID,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, page)
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
