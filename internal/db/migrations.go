package db

import (
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "gardens, friends and tier history",
		SQL: `
CREATE TABLE gardens (
    id          TEXT PRIMARY KEY,
    position    INTEGER NOT NULL,
    name        TEXT NOT NULL,
    icon        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    is_demo     INTEGER NOT NULL DEFAULT 0,
    created_at  INTEGER NOT NULL
);

CREATE TABLE friends (
    id              TEXT PRIMARY KEY,
    position        INTEGER NOT NULL,
    garden_id       TEXT NOT NULL REFERENCES gardens(id) ON DELETE CASCADE,
    name            TEXT NOT NULL,
    photo           TEXT NOT NULL DEFAULT '',
    tier            INTEGER NOT NULL CHECK (tier BETWEEN 1 AND 5),
    roles           TEXT NOT NULL DEFAULT '[]',
    location        TEXT,
    birthday        TEXT,
    important_dates TEXT NOT NULL DEFAULT '[]',
    profile         TEXT,
    created_at      INTEGER NOT NULL,
    updated_at      INTEGER NOT NULL
);

CREATE INDEX idx_friends_garden ON friends(garden_id);

CREATE TABLE tier_history (
    friend_id  TEXT NOT NULL REFERENCES friends(id) ON DELETE CASCADE,
    seq        INTEGER NOT NULL,
    tier       INTEGER NOT NULL CHECK (tier BETWEEN 1 AND 5),
    changed_at INTEGER NOT NULL,
    reason     TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (friend_id, seq)
);
`,
	},
	{
		Version:     2,
		Description: "interactions log",
		SQL: `
CREATE TABLE interactions (
    id           TEXT PRIMARY KEY,
    position     INTEGER NOT NULL,
    friend_id    TEXT NOT NULL REFERENCES friends(id) ON DELETE CASCADE,
    type         TEXT NOT NULL CHECK (type IN ('text', 'call', 'hangout', 'deep_convo', 'event', 'helped', 'group_hangout')),
    at           INTEGER NOT NULL,
    note         TEXT NOT NULL DEFAULT '',
    initiated_by TEXT NOT NULL DEFAULT '' CHECK (initiated_by IN ('', 'me', 'them', 'mutual'))
);

CREATE INDEX idx_interactions_friend ON interactions(friend_id, at DESC);
`,
	},
	{
		Version:     3,
		Description: "plant appearances and meta",
		SQL: `
CREATE TABLE appearances (
    friend_id TEXT PRIMARY KEY REFERENCES friends(id) ON DELETE CASCADE,
    species   TEXT NOT NULL,
    pot_style TEXT NOT NULL,
    pot_color TEXT NOT NULL
);

CREATE TABLE meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
		db.log.Info("migration applied",
			zap.Int("version", m.Version),
			zap.String("description", m.Description),
			zap.String("path", db.Path))
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
