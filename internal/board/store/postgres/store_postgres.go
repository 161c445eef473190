// Package postgres provides the PostgreSQL BoardStore. The aggregate is
// persisted as one JSONB document per board, replaced wholesale on update —
// the document-store contract the service layer is written against. Owner and
// member ids are denormalized into columns so access queries stay indexable
// without unpacking the document.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/L968/trecco-api/internal/board/models"
	id "github.com/L968/trecco-api/pkg/domain"
	"github.com/L968/trecco-api/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS boards (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	member_ids TEXT[] NOT NULL DEFAULT '{}',
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS boards_owner_idx ON boards (owner_id);
CREATE INDEX IF NOT EXISTS boards_member_idx ON boards USING GIN (member_ids);
`

// Store is the pgx-backed board document store.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a postgres board store on the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the boards table and indexes if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure boards schema: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, boardID id.BoardID) (*models.Board, error) {
	var document []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM boards WHERE id = $1`,
		boardID.String(),
	).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get board by id: %w", err)
	}
	return unmarshalBoard(document)
}

func (s *Store) GetByUser(ctx context.Context, userID id.UserID) ([]*models.Board, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT document FROM boards WHERE owner_id = $1 OR $1 = ANY(member_ids) ORDER BY updated_at DESC`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("get boards by user: %w", err)
	}
	defer rows.Close()

	var boards []*models.Board
	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("scan board document: %w", err)
		}
		board, err := unmarshalBoard(document)
		if err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate boards: %w", err)
	}
	return boards, nil
}

func (s *Store) Insert(ctx context.Context, board *models.Board) error {
	document, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("marshal board document: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO boards (id, owner_id, member_ids, document, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		board.ID.String(), board.OwnerID.String(), memberStrings(board), document, board.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert board: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, board *models.Board) error {
	document, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("marshal board document: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE boards SET owner_id = $2, member_ids = $3, document = $4, updated_at = $5 WHERE id = $1`,
		board.ID.String(), board.OwnerID.String(), memberStrings(board), document, board.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, boardID id.BoardID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, boardID.String())
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func memberStrings(board *models.Board) []string {
	members := make([]string, len(board.MemberIDs))
	for i, m := range board.MemberIDs {
		members[i] = m.String()
	}
	return members
}

func unmarshalBoard(document []byte) (*models.Board, error) {
	var board models.Board
	if err := json.Unmarshal(document, &board); err != nil {
		return nil, fmt.Errorf("unmarshal board document: %w", err)
	}
	return &board, nil
}
