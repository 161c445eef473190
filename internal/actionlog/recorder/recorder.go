// Package recorder turns board domain events into action log entries. It is
// registered as an event handler: every recordable event becomes one
// human-readable line, persisted, broadcast to watching clients and mirrored
// to Kafka.
package recorder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/L968/trecco-api/internal/actionlog/models"
	boardmodels "github.com/L968/trecco-api/internal/board/models"
	id "github.com/L968/trecco-api/pkg/domain"
	"github.com/L968/trecco-api/pkg/requestcontext"
)

type Store interface {
	Insert(ctx context.Context, entry *models.BoardActionLog) error
}

// Notifier pushes a freshly recorded entry to clients watching the board.
type Notifier interface {
	BoardLogged(ctx context.Context, boardID id.BoardID, entry *models.BoardActionLog) error
}

// Mirror publishes recorded entries to an external stream. Failures are the
// mirror's problem; the recorder never waits on it.
type Mirror interface {
	Publish(ctx context.Context, entry *models.BoardActionLog)
}

// Recorder is the action-log event handler. The entry write is the only
// operation whose error propagates; notification and mirroring are
// best-effort.
type Recorder struct {
	store    Store
	notifier Notifier
	mirror   Mirror
	logger   *slog.Logger
}

type Option func(r *Recorder)

func WithNotifier(n Notifier) Option {
	return func(r *Recorder) {
		r.notifier = n
	}
}

func WithMirror(m Mirror) Option {
	return func(r *Recorder) {
		r.mirror = m
	}
}

// New constructs a Recorder.
func New(store Store, logger *slog.Logger, opts ...Option) *Recorder {
	r := &Recorder{store: store, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) Name() string { return "actionlog-recorder" }

func (r *Recorder) Handle(ctx context.Context, event boardmodels.DomainEvent) error {
	userID := requestcontext.UserID(ctx)
	details := Describe(event, models.MaskUserID(userID))
	if details == "" {
		return nil
	}

	entry := models.New(event.EventBoardID(), userID, details, event.OccurredAt())
	if err := r.store.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record board action: %w", err)
	}

	if r.notifier != nil {
		if err := r.notifier.BoardLogged(ctx, entry.BoardID, entry); err != nil {
			r.logger.WarnContext(ctx, "failed to notify board log entry",
				"board_id", entry.BoardID, "error", err)
		}
	}
	if r.mirror != nil {
		r.mirror.Publish(ctx, entry)
	}
	return nil
}

// Describe renders the activity-feed line for an event. The actor appears
// masked; an empty string means the event is not recordable.
func Describe(event boardmodels.DomainEvent, actor string) string {
	switch e := event.(type) {
	case boardmodels.BoardRenamed:
		return fmt.Sprintf("User %q renamed the board from %q to %q", actor, e.OldName, e.NewName)
	case boardmodels.MemberAdded:
		return fmt.Sprintf("User %q added user %q to the board", actor, models.MaskUserID(e.UserID))
	case boardmodels.MemberRemoved:
		return fmt.Sprintf("User %q removed user %q from the board", actor, models.MaskUserID(e.UserID))
	case boardmodels.ListAdded:
		return fmt.Sprintf("User %q created list %q", actor, e.ListName)
	case boardmodels.ListRenamed:
		return fmt.Sprintf("User %q renamed list %q to %q", actor, e.OldName, e.NewName)
	case boardmodels.ListDeleted:
		return fmt.Sprintf("User %q deleted list %q", actor, e.ListName)
	case boardmodels.CardCreated:
		return fmt.Sprintf("User %q created card %q in list %q", actor, e.CardTitle, e.ListName)
	case boardmodels.CardUpdated:
		return fmt.Sprintf("User %q updated card %q", actor, e.CardTitle)
	case boardmodels.CardMoved:
		return fmt.Sprintf("User %q moved card %q to list %q at position %d", actor, e.CardTitle, e.TargetListName, e.TargetPosition)
	case boardmodels.CardDeleted:
		return fmt.Sprintf("User %q deleted card %q", actor, e.CardTitle)
	default:
		return ""
	}
}
