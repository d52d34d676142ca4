package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Config selects the database backend. SQLite is the default; Postgres
// is used when DB_TYPE=postgres and a DSN is supplied.
type Config struct {
	Driver string // "sqlite3" or "postgres"
	DSN    string
}

// ConfigFromEnv builds a Config from DB_TYPE and DATABASE_URL.
func ConfigFromEnv() Config {
	if os.Getenv("DB_TYPE") == "postgres" {
		return Config{Driver: "postgres", DSN: os.Getenv("DATABASE_URL")}
	}
	return Config{Driver: "sqlite3", DSN: filepath.Join("data", "speechcoach.db")}
}

// Connect opens the database, applies driver settings and bootstraps the
// schema. The returned handle is passed to repositories explicitly; there
// is no package-level connection.
func Connect(cfg Config) (*sqlx.DB, error) {
	if cfg.Driver == "sqlite3" {
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
	}

	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if cfg.Driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS user_stats (
			user_id INTEGER PRIMARY KEY,
			current_streak INTEGER DEFAULT 0,
			longest_streak INTEGER DEFAULT 0,
			streak_freeze_tokens INTEGER DEFAULT 0,
			last_practice_date TIMESTAMP,
			total_xp INTEGER DEFAULT 0,
			total_practice_seconds INTEGER DEFAULT 0,
			total_exercises_completed INTEGER DEFAULT 0,
			version INTEGER DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create user_stats table: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS technique_outcomes (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			category TEXT NOT NULL,
			confidence_delta REAL,
			self_rated_fluency REAL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create technique_outcomes table: %v", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_technique_outcomes_user_created
		ON technique_outcomes (user_id, created_at)
	`)
	if err != nil {
		return fmt.Errorf("failed to create technique_outcomes index: %v", err)
	}

	return nil
}
