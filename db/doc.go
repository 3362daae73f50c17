// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"postgres" uses lib/pq; "sqlite" uses modernc.org/sqlite (pure Go, used for
local development and the test suite).

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - coffee: tasting lineup with tag set and panel notes
  - app_user: one row per claimed display name (unique)
  - tasting: one user's notes per coffee, unique per (user_id, coffee_id)
  - review: one rank row per (user, coffee) within a submitted ranking
  - flavor_tag: admin tag vocabulary
  - pastry, pastry_feedback: pastry records and free-text feedback

# Dialect Discipline

All SQL in this repository must run unchanged under both drivers:

  - placeholders are strictly sequential $1..$n, each used once
  - booleans are INTEGER 0/1 columns
  - tag sets are JSON-encoded TEXT (see models.EncodeTags)
  - timestamps are written explicitly, never left to defaults

# Error Classification and Retry

IsUniqueViolation recognizes uniqueness errors from either driver so
handlers can map them to domain conflicts (duplicate name, duplicate
tasting pair). Retry wraps an operation with the fixed 3-attempt / 500ms
policy used for transient store failures.
*/
package db
