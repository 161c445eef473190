// Package postgres provides the PostgreSQL ActionLogStore on database/sql.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/L968/trecco-api/internal/actionlog/models"
	"github.com/L968/trecco-api/internal/actionlog/store"
	id "github.com/L968/trecco-api/pkg/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS board_action_logs (
	id        UUID PRIMARY KEY,
	board_id  UUID NOT NULL,
	user_id   UUID NOT NULL,
	details   TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS board_action_logs_board_idx ON board_action_logs (board_id, timestamp DESC);
`

// Store persists action log entries in PostgreSQL. Entries are append-only.
type Store struct {
	db *sql.DB
}

// New creates a postgres action log store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL via lib/pq and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the action log table and index if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure action log schema: %w", err)
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, entry *models.BoardActionLog) error {
	query := `
		INSERT INTO board_action_logs (id, board_id, user_id, details, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(entry.ID),
		uuid.UUID(entry.BoardID),
		uuid.UUID(entry.UserID),
		entry.Details,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert action log entry: %w", err)
	}
	return nil
}

func (s *Store) GetByBoard(ctx context.Context, boardID id.BoardID, q store.Query) ([]*models.BoardActionLog, int, error) {
	search := "%" + q.Search + "%"

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM board_action_logs
		WHERE board_id = $1 AND details ILIKE $2
	`
	if err := s.db.QueryRowContext(ctx, countQuery, uuid.UUID(boardID), search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count action log entries: %w", err)
	}

	query := `
		SELECT id, board_id, user_id, details, timestamp
		FROM board_action_logs
		WHERE board_id = $1 AND details ILIKE $2
		ORDER BY timestamp DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query,
		uuid.UUID(boardID),
		search,
		q.PageSize,
		(q.Page-1)*q.PageSize,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query action log entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.BoardActionLog
	for rows.Next() {
		var (
			entry   models.BoardActionLog
			entryID uuid.UUID
			board   uuid.UUID
			user    uuid.UUID
		)
		if err := rows.Scan(&entryID, &board, &user, &entry.Details, &entry.Timestamp); err != nil {
			return nil, 0, fmt.Errorf("scan action log entry: %w", err)
		}
		entry.ID = id.LogID(entryID)
		entry.BoardID = id.BoardID(board)
		entry.UserID = id.UserID(user)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate action log entries: %w", err)
	}
	return entries, total, nil
}
