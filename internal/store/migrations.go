package store

import (
	"context"
	"database/sql"
	"fmt"
)

// runMigrations creates the schema inside a single transaction.
func (s *Store) runMigrations(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = createMoodsTable(ctx, tx); err != nil {
		return fmt.Errorf("failed to create moods table: %w", err)
	}

	if err = createChatsTable(ctx, tx); err != nil {
		return fmt.Errorf("failed to create chats table: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}

	return nil
}

func createMoodsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS moods (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mood TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)
	`)
	return err
}

func createChatsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS chats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)
	`)
	return err
}
