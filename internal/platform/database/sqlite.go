package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"linkguard/internal/platform/config"
)

// NewHistoryDB opens the scan-history sqlite database. The checker's TTL
// cache is deliberately not backed by this store; only history rows persist
// across restarts.
func NewHistoryDB(cfg config.HistoryConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// Schema is the scan_history DDL, applied by cmd/migrate.
const Schema = `
CREATE TABLE IF NOT EXISTS scan_history (
	id TEXT PRIMARY KEY,
	url TEXT NOT NULL,
	structure_status TEXT NOT NULL,
	safety_status TEXT NOT NULL,
	positives INTEGER NOT NULL DEFAULT 0,
	total_scans INTEGER NOT NULL DEFAULT 0,
	redirect_status TEXT NOT NULL,
	hop_count INTEGER NOT NULL DEFAULT 0,
	checked_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_history_checked_at ON scan_history(checked_at);
CREATE INDEX IF NOT EXISTS idx_scan_history_url ON scan_history(url);
`
