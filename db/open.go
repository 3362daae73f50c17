// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database and verifies the connection.
// dbType is "postgres" or "sqlite".
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case "postgres":
		driver = "postgres"
	case "sqlite":
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbType == "sqlite" {
		// modernc's driver serializes per connection; a single connection
		// avoids table-lock errors from concurrent writers.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// IsUniqueViolation reports whether err is a uniqueness-constraint error
// from either supported driver. Used to map name and pair collisions to
// their domain errors instead of treating them as opaque store failures.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// RetryAttempts and RetryBackoff bound Retry. Three tries with a fixed
// half-second pause, matching the client-side policy this server replaced.
const (
	RetryAttempts = 3
	RetryBackoff  = 500 * time.Millisecond
)

// Retry runs op up to RetryAttempts times, backing off between attempts.
// Unique violations are never retried - they are domain outcomes, not
// transient store failures.
func Retry(op func() error) error {
	var err error
	for attempt := 0; attempt < RetryAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(RetryBackoff)
		}
		err = op()
		if err == nil || IsUniqueViolation(err) {
			return err
		}
	}
	return err
}
