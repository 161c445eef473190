// Package store defines the persistence contract for the board aggregate.
// The board is the unit of persistence: stores read and replace whole
// documents by id. There is no intra-process lock per board id; two
// concurrent commands against the same board race at this layer and the last
// write wins, an accepted non-goal of the core.
package store

import (
	"context"

	"github.com/L968/trecco-api/internal/board/models"
	id "github.com/L968/trecco-api/pkg/domain"
)

// BoardStore is implemented by the in-memory store (tests, local dev) and the
// postgres document store. Implementations return sentinel.ErrNotFound when a
// board does not exist so services can distinguish it from storage failures.
type BoardStore interface {
	// GetByID returns a snapshot of the board. Mutating the snapshot must
	// not affect the stored state until Update is called.
	GetByID(ctx context.Context, boardID id.BoardID) (*models.Board, error)
	// GetByUser returns all boards the user owns or is a member of.
	GetByUser(ctx context.Context, userID id.UserID) ([]*models.Board, error)
	// Insert stores a new board. Fails with sentinel.ErrConflict if the id
	// already exists.
	Insert(ctx context.Context, board *models.Board) error
	// Update replaces the stored document wholesale.
	Update(ctx context.Context, board *models.Board) error
	// Delete removes the board. Unknown ids fail with sentinel.ErrNotFound.
	Delete(ctx context.Context, boardID id.BoardID) error
}
