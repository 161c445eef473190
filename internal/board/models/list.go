package models

import (
	"strings"
	"time"

	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
)

// List is a named, ordered container of cards within a board.
//
// Invariants:
//   - Name is non-empty
//   - Card positions form a dense 0..n-1 permutation (no gaps, no duplicates)
//     after every public mutation, and the Cards slice is kept sorted so that
//     Cards[i].Position == i
type List struct {
	ID       id.ListID `json:"id"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
	Cards    []*Card   `json:"cards"`
}

// NewList constructs a list with no cards at the given board position.
func NewList(name string, position int) (*List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(CodeListNameRequired, "list name cannot be empty")
	}
	if position < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "list position cannot be negative")
	}
	return &List{
		ID:       id.NewListID(),
		Name:     name,
		Position: position,
		Cards:    []*Card{},
	}, nil
}

// UpdateName renames the list. Fails if the new name is empty or whitespace.
func (l *List) UpdateName(newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return dErrors.New(CodeListNameRequired, "list name cannot be empty")
	}
	l.Name = newName
	return nil
}

// AddCard appends a new card at the end of the list's ordering.
func (l *List) AddCard(title, description string, now time.Time) (*Card, error) {
	nextPosition := 0
	for _, c := range l.Cards {
		if c.Position >= nextPosition {
			nextPosition = c.Position + 1
		}
	}

	card, err := NewCard(title, description, nextPosition, now)
	if err != nil {
		return nil, err
	}
	l.Cards = append(l.Cards, card)
	return card, nil
}

// RemoveCard removes the card with the given id. Absent cards are a no-op,
// not an error. Remaining cards above the removed position are shifted down
// so positions stay dense.
func (l *List) RemoveCard(cardID id.CardID) {
	idx := -1
	for i, c := range l.Cards {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	removedPosition := l.Cards[idx].Position
	l.Cards = append(l.Cards[:idx], l.Cards[idx+1:]...)

	for _, c := range l.Cards {
		if c.Position > removedPosition {
			_ = c.SetPosition(c.Position - 1)
		}
	}
}

// InsertCard places a card (arriving from another list, or re-inserted after
// removal for a same-list reorder) at the target position. The position is
// clamped to [0, len(cards)]; a negative position is an argument error. Cards
// at or above the clamped position are shifted up to make room.
func (l *List) InsertCard(card *Card, position int) error {
	if position < 0 {
		return dErrors.New(CodeCardNegativePosition, "card position cannot be negative")
	}

	clamped := position
	if clamped > len(l.Cards) {
		clamped = len(l.Cards)
	}

	for _, c := range l.Cards {
		if c.Position >= clamped {
			_ = c.SetPosition(c.Position + 1)
		}
	}

	if err := card.SetPosition(clamped); err != nil {
		return err
	}
	l.Cards = append(l.Cards, nil)
	copy(l.Cards[clamped+1:], l.Cards[clamped:])
	l.Cards[clamped] = card
	return nil
}

// CardByID returns the card with the given id, or nil.
func (l *List) CardByID(cardID id.CardID) *Card {
	for _, c := range l.Cards {
		if c.ID == cardID {
			return c
		}
	}
	return nil
}

func (l *List) clone() *List {
	cp := *l
	cp.Cards = make([]*Card, len(l.Cards))
	for i, c := range l.Cards {
		cp.Cards[i] = c.clone()
	}
	return &cp
}
