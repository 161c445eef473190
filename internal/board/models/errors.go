package models

import (
	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
)

// Namespaced error codes for the board aggregate. Codes are stable API surface:
// clients branch on them, the HTTP layer maps them to status codes.
const (
	CodeBoardNotFound          dErrors.Code = "Board.NotFound"
	CodeBoardNotAuthorized     dErrors.Code = "Board.NotAuthorized"
	CodeBoardAlreadyMember     dErrors.Code = "Board.AlreadyMember"
	CodeBoardNotMember         dErrors.Code = "Board.NotMember"
	CodeBoardCannotRemoveOwner dErrors.Code = "Board.CannotRemoveOwner"
	CodeBoardCannotRemoveOther dErrors.Code = "Board.CannotRemoveOtherMember"
	CodeBoardCardNotFound      dErrors.Code = "Board.CardNotFound"
	CodeBoardListNotFound      dErrors.Code = "Board.ListNotFound"
	CodeBoardNameRequired      dErrors.Code = "Board.NameRequired"
	CodeListNameRequired       dErrors.Code = "List.NameRequired"
	CodeCardTitleRequired      dErrors.Code = "Card.TitleRequired"
	CodeCardNegativePosition   dErrors.Code = "Card.NegativePosition"
)

// ErrBoardNotFound builds the canonical not-found error for a board id.
func ErrBoardNotFound(boardID id.BoardID) error {
	return dErrors.Newf(CodeBoardNotFound, "board %q was not found", boardID)
}

// ErrListNotFound builds the canonical not-found error for a list id.
func ErrListNotFound(listID id.ListID) error {
	return dErrors.Newf(CodeBoardListNotFound, "list %q was not found in this board", listID)
}

// ErrCardNotFound builds the canonical not-found error for a card id.
func ErrCardNotFound(cardID id.CardID) error {
	return dErrors.Newf(CodeBoardCardNotFound, "card %q was not found in this board", cardID)
}

// ErrNotAuthorized is returned when a requester has no access to a board.
var ErrNotAuthorized = dErrors.New(CodeBoardNotAuthorized, "you do not have access to this board")
