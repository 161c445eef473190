package models

import (
	"strings"
	"time"

	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
)

const (
	maxCardTitleLen       = 100
	maxCardDescriptionLen = 1000
)

// Card is the smallest workflow unit: a title, a description and a position
// within its owning list.
//
// Invariants:
//   - Title is non-empty (after trimming) and at most 100 characters
//   - Description is at most 1000 characters, may be empty
//   - Position is non-negative and unique within the owning list
//
// Position bookkeeping is owned by List; SetPosition exists for the list's
// renumbering logic and is not a user-facing operation.
type Card struct {
	ID          id.CardID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCard constructs a card, validating the title invariant.
func NewCard(title, description string, position int, now time.Time) (*Card, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(CodeCardTitleRequired, "card title cannot be empty")
	}
	if len(title) > maxCardTitleLen {
		return nil, dErrors.Newf(CodeCardTitleRequired, "card title must be %d characters or less", maxCardTitleLen)
	}
	if len(description) > maxCardDescriptionLen {
		return nil, dErrors.Newf(dErrors.CodeValidation, "card description must be %d characters or less", maxCardDescriptionLen)
	}
	if position < 0 {
		return nil, dErrors.New(CodeCardNegativePosition, "card position cannot be negative")
	}
	return &Card{
		ID:          id.NewCardID(),
		Title:       title,
		Description: description,
		Position:    position,
		CreatedAt:   now.UTC(),
	}, nil
}

// UpdateTitle replaces the title in place. Fails if the new title is empty or
// whitespace.
func (c *Card) UpdateTitle(newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return dErrors.New(CodeCardTitleRequired, "card title cannot be empty")
	}
	if len(newTitle) > maxCardTitleLen {
		return dErrors.Newf(CodeCardTitleRequired, "card title must be %d characters or less", maxCardTitleLen)
	}
	c.Title = newTitle
	return nil
}

// UpdateDescription always succeeds; an empty description is valid.
func (c *Card) UpdateDescription(newDescription string) error {
	if len(newDescription) > maxCardDescriptionLen {
		return dErrors.Newf(dErrors.CodeValidation, "card description must be %d characters or less", maxCardDescriptionLen)
	}
	c.Description = newDescription
	return nil
}

// SetPosition reassigns the card's position. Used only by list renumbering;
// a negative position is a caller bug.
func (c *Card) SetPosition(position int) error {
	if position < 0 {
		return dErrors.New(CodeCardNegativePosition, "card position cannot be negative")
	}
	c.Position = position
	return nil
}

func (c *Card) clone() *Card {
	cp := *c
	return &cp
}
