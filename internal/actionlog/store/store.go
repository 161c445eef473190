// Package store defines the persistence contract for board action logs.
package store

import (
	"context"

	"github.com/L968/trecco-api/internal/actionlog/models"
	id "github.com/L968/trecco-api/pkg/domain"
)

// Query narrows and pages a board's activity feed. Page is 1-based; Search is
// a case-insensitive substring match on the details text, empty means all.
type Query struct {
	Page     int
	PageSize int
	Search   string
}

// ActionLogStore is implemented by the in-memory store and the postgres
// store. Entries are append-only; there is no update or delete.
type ActionLogStore interface {
	Insert(ctx context.Context, entry *models.BoardActionLog) error
	// GetByBoard returns one page of the board's entries, newest first, and
	// the total number of entries matching the query.
	GetByBoard(ctx context.Context, boardID id.BoardID, q Query) ([]*models.BoardActionLog, int, error)
}
