package models

import (
	"strings"
	"time"

	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
)

// Board is the aggregate root for one collaborative workspace. It owns an
// ordered collection of lists, the member set, and the buffer of domain
// events produced by mutation.
//
// Invariants:
//   - Name is non-empty
//   - OwnerID never appears in MemberIDs (the owner is implicitly a member)
//   - List positions are unique within the board and kept dense: removing a
//     list shifts higher lists down, same as card positions within a list
//   - Every mutating operation with an externally observable effect records
//     exactly one domain event; the buffer is drained once per command by the
//     application layer, after a successful persistence write
//
// The aggregate is pure in-memory logic: no I/O, no locking. One instance is
// loaded per command, mutated in isolation and written back wholesale;
// concurrent commands against the same board race at the persistence layer
// (last write wins), which is an accepted non-goal.
type Board struct {
	ID        id.BoardID  `json:"id"`
	Name      string      `json:"name"`
	OwnerID   id.UserID   `json:"owner_id"`
	MemberIDs []id.UserID `json:"member_ids"`
	Lists     []*List     `json:"lists"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	events []DomainEvent
}

// NewBoard constructs an empty board owned by ownerID.
func NewBoard(name string, ownerID id.UserID, now time.Time) (*Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(CodeBoardNameRequired, "board name cannot be empty")
	}
	if ownerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "board owner is required")
	}
	return &Board{
		ID:        id.NewBoardID(),
		Name:      name,
		OwnerID:   ownerID,
		MemberIDs: []id.UserID{},
		Lists:     []*List{},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// UpdateName renames the board and records a BoardRenamed event.
func (b *Board) UpdateName(newName string, now time.Time) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return dErrors.New(CodeBoardNameRequired, "board name cannot be empty")
	}
	oldName := b.Name
	b.Name = newName
	b.touch(now)
	b.record(BoardRenamed{eventBase: newEventBase(b.ID, now), OldName: oldName, NewName: newName})
	return nil
}

// HasAccess reports whether userID may read or mutate this board: true for
// the owner and for every current member. This is the sole authorization
// gate; every command handler must consult it before proceeding.
func (b *Board) HasAccess(userID id.UserID) bool {
	return userID == b.OwnerID || b.IsMember(userID)
}

// IsMember reports whether userID is in the member set. The owner is not
// stored in the set and is not a "member" in this sense.
func (b *Board) IsMember(userID id.UserID) bool {
	for _, m := range b.MemberIDs {
		if m == userID {
			return true
		}
	}
	return false
}

// AddMember adds userID to the member set and records a MemberAdded event.
// Adding the owner or an existing member is a no-op: the set stays unchanged
// and no event is recorded, so repeated adds are idempotent.
func (b *Board) AddMember(userID id.UserID, now time.Time) {
	if userID == b.OwnerID || b.IsMember(userID) {
		return
	}
	b.MemberIDs = append(b.MemberIDs, userID)
	b.touch(now)
	b.record(MemberAdded{eventBase: newEventBase(b.ID, now), UserID: userID})
}

// RemoveMember removes userID from the member set and records a MemberRemoved
// event. Removing a non-member is a no-op.
func (b *Board) RemoveMember(userID id.UserID, now time.Time) {
	for i, m := range b.MemberIDs {
		if m == userID {
			b.MemberIDs = append(b.MemberIDs[:i], b.MemberIDs[i+1:]...)
			b.touch(now)
			b.record(MemberRemoved{eventBase: newEventBase(b.ID, now), UserID: userID})
			return
		}
	}
}

// CanRemoveMember is the pure policy check applied before RemoveMember:
//   - the owner cannot remove themself (the board would be orphaned)
//   - a non-owner member may only remove themself
//
// It has no side effect; callers apply RemoveMember only after it succeeds.
func (b *Board) CanRemoveMember(requesterID, targetUserID id.UserID) error {
	if requesterID == b.OwnerID && targetUserID == b.OwnerID {
		return dErrors.New(CodeBoardCannotRemoveOwner, "the board owner cannot be removed")
	}
	if requesterID != b.OwnerID && requesterID != targetUserID {
		return dErrors.New(CodeBoardCannotRemoveOther, "members can only remove themselves")
	}
	return nil
}

// AddList appends a named list at the end of the board's ordering and records
// a ListAdded event.
func (b *Board) AddList(name string, now time.Time) (*List, error) {
	nextPosition := 0
	for _, l := range b.Lists {
		if l.Position >= nextPosition {
			nextPosition = l.Position + 1
		}
	}

	list, err := NewList(name, nextPosition)
	if err != nil {
		return nil, err
	}
	b.Lists = append(b.Lists, list)
	b.touch(now)
	b.record(ListAdded{eventBase: newEventBase(b.ID, now), ListID: list.ID, ListName: list.Name})
	return list, nil
}

// RenameList renames the list with the given id and records a ListRenamed
// event carrying both names.
func (b *Board) RenameList(listID id.ListID, newName string, now time.Time) error {
	list := b.ListByID(listID)
	if list == nil {
		return ErrListNotFound(listID)
	}
	oldName := list.Name
	if err := list.UpdateName(newName); err != nil {
		return err
	}
	b.touch(now)
	b.record(ListRenamed{eventBase: newEventBase(b.ID, now), ListID: listID, OldName: oldName, NewName: list.Name})
	return nil
}

// RemoveList removes the list with the given id and records a ListDeleted
// event. Absent lists are a no-op. Higher list positions shift down so board
// ordering stays dense.
func (b *Board) RemoveList(listID id.ListID, now time.Time) {
	idx := -1
	for i, l := range b.Lists {
		if l.ID == listID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	removed := b.Lists[idx]
	b.Lists = append(b.Lists[:idx], b.Lists[idx+1:]...)
	for _, l := range b.Lists {
		if l.Position > removed.Position {
			l.Position--
		}
	}
	b.touch(now)
	b.record(ListDeleted{eventBase: newEventBase(b.ID, now), ListID: removed.ID, ListName: removed.Name})
}

// AddCard creates a card at the end of the given list and records a
// CardCreated event.
func (b *Board) AddCard(listID id.ListID, title, description string, now time.Time) (*Card, error) {
	list := b.ListByID(listID)
	if list == nil {
		return nil, ErrListNotFound(listID)
	}
	card, err := list.AddCard(title, description, now)
	if err != nil {
		return nil, err
	}
	b.touch(now)
	b.record(CardCreated{
		eventBase: newEventBase(b.ID, now),
		ListID:    list.ID,
		ListName:  list.Name,
		CardID:    card.ID,
		CardTitle: card.Title,
	})
	return card, nil
}

// UpdateCard replaces a card's title and description and records a
// CardUpdated event.
func (b *Board) UpdateCard(cardID id.CardID, title, description string, now time.Time) error {
	card := b.GetCardByID(cardID)
	if card == nil {
		return ErrCardNotFound(cardID)
	}
	if err := card.UpdateTitle(title); err != nil {
		return err
	}
	if err := card.UpdateDescription(description); err != nil {
		return err
	}
	b.touch(now)
	b.record(CardUpdated{eventBase: newEventBase(b.ID, now), CardID: card.ID, CardTitle: card.Title})
	return nil
}

// MoveCard moves a card to targetListID at targetPosition. The source and
// target list may be the same (reorder within a list). Removal from the
// source happens before insertion into the target: for a same-list move the
// position must be computed against a list that no longer contains the card,
// or the arithmetic double-counts it.
func (b *Board) MoveCard(cardID id.CardID, targetListID id.ListID, targetPosition int, now time.Time) error {
	sourceList := b.GetListByCardID(cardID)
	if sourceList == nil {
		return ErrCardNotFound(cardID)
	}

	targetList := b.ListByID(targetListID)
	if targetList == nil {
		return ErrListNotFound(targetListID)
	}

	if targetPosition < 0 {
		return dErrors.New(CodeCardNegativePosition, "card position cannot be negative")
	}

	card := sourceList.CardByID(cardID)
	sourceList.RemoveCard(cardID)
	if err := targetList.InsertCard(card, targetPosition); err != nil {
		return err
	}

	b.touch(now)
	b.record(CardMoved{
		eventBase:      newEventBase(b.ID, now),
		CardID:         card.ID,
		CardTitle:      card.Title,
		TargetListID:   targetList.ID,
		TargetListName: targetList.Name,
		TargetPosition: card.Position,
	})
	return nil
}

// DeleteCard removes a card from its owning list (dense renumbering applies)
// and records a CardDeleted event. An unknown card is a no-op.
func (b *Board) DeleteCard(cardID id.CardID, now time.Time) {
	list := b.GetListByCardID(cardID)
	if list == nil {
		return
	}
	card := list.CardByID(cardID)
	list.RemoveCard(cardID)
	b.touch(now)
	b.record(CardDeleted{
		eventBase: newEventBase(b.ID, now),
		ListID:    list.ID,
		CardID:    card.ID,
		CardTitle: card.Title,
	})
}

// ListByID returns the list with the given id, or nil.
func (b *Board) ListByID(listID id.ListID) *List {
	for _, l := range b.Lists {
		if l.ID == listID {
			return l
		}
	}
	return nil
}

// GetListByCardID returns the first list containing the card, or nil. Linear
// scan; fine at the expected scale of tens of lists and low hundreds of
// cards.
func (b *Board) GetListByCardID(cardID id.CardID) *List {
	for _, l := range b.Lists {
		if l.CardByID(cardID) != nil {
			return l
		}
	}
	return nil
}

// GetCardByID returns the card with the given id across all lists, or nil.
func (b *Board) GetCardByID(cardID id.CardID) *Card {
	for _, l := range b.Lists {
		if c := l.CardByID(cardID); c != nil {
			return c
		}
	}
	return nil
}

// PullEvents drains the recorded events: it returns the buffer and clears it.
// Called exactly once per command by the dispatcher, after persistence.
func (b *Board) PullEvents() []DomainEvent {
	events := b.events
	b.events = nil
	return events
}

// Clone returns a deep copy of the board with an empty event buffer. Stores
// use it to hand out snapshots that cannot alias their internal state.
func (b *Board) Clone() *Board {
	cp := *b
	cp.events = nil
	cp.MemberIDs = append([]id.UserID(nil), b.MemberIDs...)
	cp.Lists = make([]*List, len(b.Lists))
	for i, l := range b.Lists {
		cp.Lists[i] = l.clone()
	}
	return &cp
}

func (b *Board) record(event DomainEvent) {
	b.events = append(b.events, event)
}

func (b *Board) touch(now time.Time) {
	b.UpdatedAt = now.UTC()
}
