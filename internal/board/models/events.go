package models

import (
	"time"

	"github.com/google/uuid"

	id "github.com/L968/trecco-api/pkg/domain"
)

// DomainEvent is an immutable record of one completed state transition on a
// board. Events are appended to the aggregate's buffer at the moment of
// mutation and drained exactly once per command via Board.PullEvents, after
// the write has been persisted. The aggregate never dispatches anything
// itself.
type DomainEvent interface {
	// EventID is the event's own identity, distinct from any entity id.
	EventID() uuid.UUID
	// EventBoardID is the board the transition happened on.
	EventBoardID() id.BoardID
	// OccurredAt is the UTC time the mutation was applied.
	OccurredAt() time.Time
}

// eventBase carries the identity and timestamp shared by all events.
type eventBase struct {
	ID            uuid.UUID
	BoardID       id.BoardID
	OccurredAtUTC time.Time
}

func newEventBase(boardID id.BoardID, now time.Time) eventBase {
	return eventBase{ID: uuid.New(), BoardID: boardID, OccurredAtUTC: now.UTC()}
}

func (e eventBase) EventID() uuid.UUID       { return e.ID }
func (e eventBase) EventBoardID() id.BoardID { return e.BoardID }
func (e eventBase) OccurredAt() time.Time    { return e.OccurredAtUTC }

// MemberAdded records a user joining the board's member set.
type MemberAdded struct {
	eventBase
	UserID id.UserID
}

// MemberRemoved records a user leaving the board's member set.
type MemberRemoved struct {
	eventBase
	UserID id.UserID
}

// BoardRenamed records a board name change.
type BoardRenamed struct {
	eventBase
	OldName string
	NewName string
}

// ListAdded records a new list appended to the board.
type ListAdded struct {
	eventBase
	ListID   id.ListID
	ListName string
}

// ListRenamed records a list name change, carrying both names for
// human-readable audit text.
type ListRenamed struct {
	eventBase
	ListID  id.ListID
	OldName string
	NewName string
}

// ListDeleted records a list removal.
type ListDeleted struct {
	eventBase
	ListID   id.ListID
	ListName string
}

// CardCreated records a card added to a list.
type CardCreated struct {
	eventBase
	ListID    id.ListID
	ListName  string
	CardID    id.CardID
	CardTitle string
}

// CardUpdated records a card title/description change.
type CardUpdated struct {
	eventBase
	CardID    id.CardID
	CardTitle string
}

// CardMoved records a card transfer between lists (or a reorder within one).
// Card title and target list name ride along for audit text.
type CardMoved struct {
	eventBase
	CardID         id.CardID
	CardTitle      string
	TargetListID   id.ListID
	TargetListName string
	TargetPosition int
}

// CardDeleted records a card removal.
type CardDeleted struct {
	eventBase
	ListID    id.ListID
	CardID    id.CardID
	CardTitle string
}
