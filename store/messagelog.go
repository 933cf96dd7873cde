// Package store provides the message audit log backed by SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// MessageLog records the current text of posted ticket messages keyed by
// chat and message id, so lifecycle transitions stay recoverable without
// re-querying the transport.
type MessageLog interface {
	// Record stores or replaces the text for the message.
	Record(ctx context.Context, chatID int64, messageID int, text string) error

	// Text returns the last recorded text for the message.
	Text(ctx context.Context, chatID int64, messageID int) (string, error)
}

// SQLiteLog is a MessageLog backed by a SQLite database file.
type SQLiteLog struct {
	db *sql.DB
}

// OpenMessageLog opens (or creates) the message log database at path and
// runs migrations.
func OpenMessageLog(path string) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open message log: %w", err)
	}

	l := &SQLiteLog{db: db}
	if err := l.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate message log: %w", err)
	}
	return l, nil
}

// migrate creates the messages table.
func (l *SQLiteLog) migrate() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS messages (
		chat_id INTEGER NOT NULL,
		message_id INTEGER NOT NULL,
		text TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (chat_id, message_id)
	)`)
	return err
}

// Record stores or replaces the text for the message.
func (l *SQLiteLog) Record(ctx context.Context, chatID int64, messageID int, text string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO messages (chat_id, message_id, text) VALUES (?, ?, ?)
		 ON CONFLICT (chat_id, message_id)
		 DO UPDATE SET text = excluded.text, updated_at = CURRENT_TIMESTAMP`,
		chatID, messageID, text)
	return err
}

// Text returns the last recorded text for the message.
func (l *SQLiteLog) Text(ctx context.Context, chatID int64, messageID int) (string, error) {
	var text string
	err := l.db.QueryRowContext(ctx,
		`SELECT text FROM messages WHERE chat_id = ? AND message_id = ?`,
		chatID, messageID).Scan(&text)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Close closes the underlying database.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
