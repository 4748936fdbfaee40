package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		industry   TEXT NOT NULL DEFAULT '',
		notes      TEXT NOT NULL DEFAULT '',
		website    TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		city       TEXT NOT NULL DEFAULT '',
		country    TEXT NOT NULL DEFAULT '',
		domain     TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS contacts (
		id         TEXT PRIMARY KEY,
		company_id TEXT REFERENCES companies(id) ON DELETE SET NULL,
		name       TEXT NOT NULL,
		position   TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_contacts_company ON contacts(company_id)`,

	// Activities and history keep their entity ids after the entity is
	// deleted, so they carry no foreign keys.
	`CREATE TABLE IF NOT EXISTS activities (
		id           TEXT PRIMARY KEY,
		type         TEXT NOT NULL
		             CHECK(type IN ('EMAIL','PHONE','MEETING','TASK')),
		title        TEXT NOT NULL,
		date         TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		company_id   TEXT NOT NULL DEFAULT '',
		contact_id   TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'planned'
		             CHECK(status IN ('planned','completed','cancelled')),
		created_by   TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		completed_at TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_company ON activities(company_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_contact ON activities(contact_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_status ON activities(status)`,

	`CREATE TABLE IF NOT EXISTS history (
		id          TEXT PRIMARY KEY,
		entity_kind TEXT NOT NULL CHECK(entity_kind IN ('company','contact')),
		entity_id   TEXT NOT NULL,
		type        TEXT NOT NULL CHECK(type IN ('note','event')),
		timestamp   TEXT NOT NULL,
		author      TEXT NOT NULL DEFAULT '',
		content     TEXT NOT NULL DEFAULT '',
		meta        TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_history_entity ON history(entity_kind, entity_id)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL CHECK(kind IN ('company','contact')),
		name        TEXT NOT NULL,
		color       TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_by  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tags_kind_name ON tags(kind, name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS tag_assignments (
		id          TEXT PRIMARY KEY,
		entity_kind TEXT NOT NULL CHECK(entity_kind IN ('company','contact')),
		entity_id   TEXT NOT NULL,
		tag_id      TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		assigned_by TEXT NOT NULL DEFAULT '',
		assigned_at TEXT NOT NULL,
		UNIQUE(entity_kind, entity_id, tag_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tag_assignments_entity ON tag_assignments(entity_kind, entity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tag_assignments_tag ON tag_assignments(tag_id)`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		email        TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
}
