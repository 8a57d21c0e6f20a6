package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS club (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		admin_id INTEGER
	);

	CREATE TABLE IF NOT EXISTS membership (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		club_id INTEGER NOT NULL,
		member_ref TEXT NOT NULL,
		joined_at TEXT NOT NULL,
		UNIQUE (club_id, member_ref),
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS announcement (
		id TEXT PRIMARY KEY,
		club_id INTEGER,
		date TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		club_id INTEGER,
		title TEXT NOT NULL,
		date TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (club_id) REFERENCES club(id)
	);

	CREATE TABLE IF NOT EXISTS session (
		token TEXT PRIMARY KEY,
		blob TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS theme_preference (
		owner_ref TEXT PRIMARY KEY,
		theme TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS payment (
		id TEXT PRIMARY KEY,
		payer_ref TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		method TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
