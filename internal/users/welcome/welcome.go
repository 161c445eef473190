// Package welcome reacts to members being added to a board by sending a
// welcome email. Delivery is simulated: the rendered mail is written to the
// log, which is where a real provider client would slot in.
package welcome

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	boardmodels "github.com/L968/trecco-api/internal/board/models"
	usermodels "github.com/L968/trecco-api/internal/users/models"
	id "github.com/L968/trecco-api/pkg/domain"
	"github.com/L968/trecco-api/pkg/email"
	"github.com/L968/trecco-api/pkg/platform/sentinel"
)

type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*usermodels.User, error)
}

// Handler is the MemberAdded event handler.
type Handler struct {
	users  UserStore
	logger *slog.Logger
}

// New constructs the welcome email handler.
func New(users UserStore, logger *slog.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

func (h *Handler) Name() string { return "member-added-welcome-email" }

func (h *Handler) Handle(ctx context.Context, event boardmodels.DomainEvent) error {
	added, ok := event.(boardmodels.MemberAdded)
	if !ok {
		return nil
	}

	user, err := h.users.FindByID(ctx, added.UserID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Members are not required to have a local account.
			h.logger.InfoContext(ctx, "skipping welcome email for unknown user",
				"user_id", added.UserID, "board_id", added.EventBoardID())
			return nil
		}
		return fmt.Errorf("load member for welcome email: %w", err)
	}

	first, last := email.DeriveNameFromEmail(user.Email)
	h.logger.InfoContext(ctx, "sending welcome email",
		"to", user.Email,
		"first_name", first,
		"last_name", last,
		"board_id", added.EventBoardID(),
	)
	return nil
}
