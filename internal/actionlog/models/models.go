// Package models defines the board action log entry: one human-readable line
// per observable board mutation, queryable per board.
package models

import (
	"time"

	id "github.com/L968/trecco-api/pkg/domain"
)

// BoardActionLog is a single audit line for a board. Details is the rendered,
// human-readable description shown in the board's activity feed.
type BoardActionLog struct {
	ID        id.LogID   `json:"id"`
	BoardID   id.BoardID `json:"board_id"`
	UserID    id.UserID  `json:"user_id"`
	Details   string     `json:"details"`
	Timestamp time.Time  `json:"timestamp"`
}

// New creates a log entry for the given board and acting user.
func New(boardID id.BoardID, userID id.UserID, details string, now time.Time) *BoardActionLog {
	return &BoardActionLog{
		ID:        id.NewLogID(),
		BoardID:   boardID,
		UserID:    userID,
		Details:   details,
		Timestamp: now.UTC(),
	}
}

// MaskUserID shortens a user id for display in details text. Full ids stay in
// the user_id column; the rendered line only carries the first 7 characters.
func MaskUserID(userID id.UserID) string {
	s := userID.String()
	if len(s) <= 7 {
		return s
	}
	return s[:7]
}
