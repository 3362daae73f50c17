// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/brew-haha/auth"
	"github.com/danielhkuo/brew-haha/cliparse"
	"github.com/danielhkuo/brew-haha/db"
	"github.com/danielhkuo/brew-haha/models"
	"github.com/google/uuid"
)

// SetupTestDB opens a fresh in-memory sqlite database with the full
// schema. Each call gets its own database, so tests never share state.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           4117,
		DatabaseURL:    ":memory:",
		DatabaseType:   "sqlite",
		AdminPassword:  "test-admin-password",
		AdminTokenSalt: "test-token-salt",
	}
}

// AdminHeaders returns request headers carrying a valid admin token for cfg
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		"X-Admin-Token": auth.GenerateAdminToken(cfg.AdminTokenSalt),
	}
}

// CreateTestUser claims a name and returns the user ID
func CreateTestUser(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	userID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO app_user (id, name, created_at)
		VALUES ($1, $2, $3)
	`, userID, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestCoffee inserts a coffee and returns its ID
func CreateTestCoffee(t *testing.T, conn *sql.DB, name string, tags ...string) string {
	t.Helper()

	coffeeID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO coffee (id, name, description, tags, panel_notes)
		VALUES ($1, $2, '', $3, '')
	`, coffeeID, name, models.EncodeTags(tags))
	if err != nil {
		t.Fatalf("Failed to create test coffee: %v", err)
	}

	return coffeeID
}

// CreateTestTasting records a tasting for a user and coffee and returns its ID
func CreateTestTasting(t *testing.T, conn *sql.DB, userID, coffeeID string, flavorTags ...string) string {
	t.Helper()

	tastingID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO tasting (id, user_id, coffee_id, flavor_tags, emoji, note, updated_at)
		VALUES ($1, $2, $3, $4, '', '', $5)
	`, tastingID, userID, coffeeID, models.EncodeTags(flavorTags), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test tasting: %v", err)
	}

	return tastingID
}

// SubmitTestRanking inserts one review per coffee in ranked order.
// rankedCoffeeIDs[0] gets rank 1, and so on.
func SubmitTestRanking(t *testing.T, conn *sql.DB, userID string, rankedCoffeeIDs ...string) {
	t.Helper()

	for i, coffeeID := range rankedCoffeeIDs {
		_, err := conn.Exec(`
			INSERT INTO review (id, user_id, coffee_id, rank, would_drink_again, submitted_at)
			VALUES ($1, $2, $3, $4, 0, $5)
		`, uuid.NewString(), userID, coffeeID, i+1, time.Now())
		if err != nil {
			t.Fatalf("Failed to create test review: %v", err)
		}
	}
}

// CreateTestFlavorTag adds a vocabulary entry and returns its ID
func CreateTestFlavorTag(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	tagID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO flavor_tag (id, name, description)
		VALUES ($1, $2, '')
	`, tagID, name)
	if err != nil {
		t.Fatalf("Failed to create test flavor tag: %v", err)
	}

	return tagID
}

// CreateTestPastry inserts a pastry and returns its ID
func CreateTestPastry(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	pastryID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO pastry (id, name, description, image)
		VALUES ($1, $2, '', '')
	`, pastryID, name)
	if err != nil {
		t.Fatalf("Failed to create test pastry: %v", err)
	}

	return pastryID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
