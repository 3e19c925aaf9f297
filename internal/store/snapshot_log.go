// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// snapshot_log.go records every artifact overwrite for audit and
// debugging. Each entry captures what was written and when.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// SnapshotLogStore handles snapshot audit log operations.
type SnapshotLogStore struct {
	db *sql.DB
}

// NewSnapshotLogStore creates a new SnapshotLogStore.
func NewSnapshotLogStore(db *sql.DB) *SnapshotLogStore {
	return &SnapshotLogStore{db: db}
}

// Log records an artifact overwrite. Best-effort: failures are logged,
// never returned — the snapshot write itself already succeeded.
func (s *SnapshotLogStore) Log(articles, categories int, sizeBytes int64) {
	_, err := s.db.Exec(`
		INSERT INTO snapshot_log (articles_count, categories_count, size_bytes, written_at)
		VALUES ($1, $2, $3, $4)
	`, articles, categories, sizeBytes, time.Now().UTC())
	if err != nil {
		slog.Warn("failed to log snapshot write",
			"articles", articles,
			"categories", categories,
			"error", err,
		)
		return
	}
	slog.Debug("snapshot write logged", "articles", articles, "categories", categories)
}

// SnapshotLogEntry represents a single recorded artifact overwrite.
type SnapshotLogEntry struct {
	ID              int64
	ArticlesCount   int
	CategoriesCount int
	SizeBytes       int64
	WrittenAt       time.Time
}

// RecentEntries returns the most recent snapshot writes, newest first.
func (s *SnapshotLogStore) RecentEntries(limit int) ([]SnapshotLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, articles_count, categories_count, size_bytes, written_at
		FROM snapshot_log
		ORDER BY written_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshot log: %w", err)
	}
	defer rows.Close()

	var entries []SnapshotLogEntry
	for rows.Next() {
		var e SnapshotLogEntry
		if err := rows.Scan(&e.ID, &e.ArticlesCount, &e.CategoriesCount, &e.SizeBytes, &e.WrittenAt); err != nil {
			return nil, fmt.Errorf("scan snapshot log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
