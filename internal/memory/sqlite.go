// Package memory persists conversation history in SQLite, keyed by session id.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Turn is one persisted conversation message.
type Turn struct {
	SessionID string
	Index     int64
	Role      string
	Content   string
	CreatedAt time.Time
}

// Store keeps per-session conversation turns in a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
    session_id TEXT NOT NULL,
    turn_index INTEGER NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (session_id, turn_index)
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages (session_id);
`

// Open creates or opens the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores a turn at the next index for the session.
func (s *Store) Append(ctx context.Context, sessionID, role, content string) error {
	var last int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(turn_index), 0) FROM messages WHERE session_id = ?`, sessionID,
	).Scan(&last)
	if err != nil {
		return fmt.Errorf("reading last turn for session %s: %w", sessionID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, turn_index, role, content, created_at)
		 VALUES (?, ?, ?, ?, datetime(?))`,
		sessionID, last+1, role, content, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("appending turn for session %s: %w", sessionID, err)
	}
	return nil
}

// History returns the session's turns in insertion order. A session with no
// turns yields an empty slice.
func (s *Store) History(ctx context.Context, sessionID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, turn_index, role, content, created_at
		 FROM messages
		 WHERE session_id = ?
		 ORDER BY turn_index ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("reading history for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var history []Turn
	for rows.Next() {
		var t Turn
		var createdAt string
		if err := rows.Scan(&t.SessionID, &t.Index, &t.Role, &t.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning turn for session %s: %w", sessionID, err)
		}
		t.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		history = append(history, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// Clear deletes every turn of the session. Clearing an unknown session is not
// an error.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("clearing session %s: %w", sessionID, err)
	}
	return nil
}

const timeLayout = "2006-01-02 15:04:05"
