// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is restricted to the dialect both drivers share: TEXT keys,
// INTEGER booleans, JSON-encoded TEXT for tag sets, CURRENT_TIMESTAMP
// defaults. Timestamps are always written explicitly by the application,
// so the defaults only matter for rows inserted by hand.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Coffees
CREATE TABLE IF NOT EXISTS coffee (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    panel_notes TEXT NOT NULL DEFAULT ''
);

-- Users. Named app_user because "user" is reserved in postgres.
-- The unique index on name is the duplicate-name authority: claims race
-- on the constraint, not on a check-then-insert.
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Tastings
CREATE TABLE IF NOT EXISTS tasting (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES app_user(id),
    coffee_id TEXT NOT NULL REFERENCES coffee(id),
    flavor_tags TEXT NOT NULL DEFAULT '[]',
    emoji TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (user_id, coffee_id)
);

CREATE INDEX IF NOT EXISTS idx_tasting_user_id ON tasting(user_id);
CREATE INDEX IF NOT EXISTS idx_tasting_coffee_id ON tasting(coffee_id);

-- Reviews
CREATE TABLE IF NOT EXISTS review (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES app_user(id),
    coffee_id TEXT NOT NULL REFERENCES coffee(id),
    rank INTEGER NOT NULL CHECK (rank >= 1),
    would_drink_again INTEGER NOT NULL DEFAULT 0,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_review_user_id ON review(user_id);
CREATE INDEX IF NOT EXISTS idx_review_coffee_id ON review(coffee_id);

-- Flavor tag vocabulary. Coffee and tasting tags are free strings and do
-- not reference this table.
CREATE TABLE IF NOT EXISTS flavor_tag (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT ''
);

-- Pastries
CREATE TABLE IF NOT EXISTS pastry (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS pastry_feedback (
    id TEXT PRIMARY KEY,
    user_id TEXT,
    user_name TEXT NOT NULL,
    feedback TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
