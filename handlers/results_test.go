// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/brew-haha/aggregate"
)

func TestLeaderboard(t *testing.T) {
	conn := setupTestDB(t)

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	coffeeA := insertCoffee(t, conn, "Coffee A")
	coffeeB := insertCoffee(t, conn, "Coffee B")
	alice := insertUser(t, conn, "Alice")
	bob := insertUser(t, conn, "Bob")

	insertReview(t, conn, alice, coffeeA, 1)
	insertReview(t, conn, alice, coffeeB, 2)
	insertReview(t, conn, bob, coffeeA, 1)
	insertReview(t, conn, bob, coffeeB, 2)

	req := httptest.NewRequest("GET", "/results/leaderboard", nil)
	w := httptest.NewRecorder()

	handler.Leaderboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp LeaderboardResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.Summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(resp.Summaries))
	}
	for _, s := range resp.Summaries {
		if s.ReviewCount != 2 {
			t.Errorf("%s: expected 2 reviews, got %d", s.Name, s.ReviewCount)
		}
	}

	if len(resp.Medals) != 2 {
		t.Fatalf("Expected 2 medal rows, got %d", len(resp.Medals))
	}
	if resp.Medals[0].CoffeeID != coffeeA || resp.Medals[0].Medal != 1 {
		t.Errorf("Expected coffee A gold, got %+v", resp.Medals[0])
	}
	if resp.Medals[0].Firsts != 2 || resp.Medals[0].WeightedScore != 3 {
		t.Errorf("Expected 2 firsts and score 3 for coffee A, got %+v", resp.Medals[0])
	}
}

func TestLeaderboard_NoReviews(t *testing.T) {
	conn := setupTestDB(t)

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	insertCoffee(t, conn, "Lonely Roast")

	req := httptest.NewRequest("GET", "/results/leaderboard", nil)
	w := httptest.NewRecorder()

	handler.Leaderboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp LeaderboardResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Summaries) != 1 || resp.Summaries[0].AvgRank != aggregate.NoReviewsSentinel {
		t.Errorf("Expected sentinel average for reviewless coffee, got %+v", resp.Summaries)
	}
}

func TestFlavors(t *testing.T) {
	conn := setupTestDB(t)

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	coffeeA := insertCoffee(t, conn, "Coffee A")
	coffeeB := insertCoffee(t, conn, "Coffee B")
	alice := insertUser(t, conn, "Alice")
	bob := insertUser(t, conn, "Bob")

	insertTasting(t, conn, alice, coffeeA, "fruity", "bright")
	insertTasting(t, conn, bob, coffeeA, "bright", "bold")
	insertTasting(t, conn, alice, coffeeB, "nutty")

	t.Run("event-wide histogram", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/results/flavors", nil)
		w := httptest.NewRecorder()

		handler.Flavors(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var hist []aggregate.FlavorCount
		if err := json.NewDecoder(w.Body).Decode(&hist); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(hist) != 4 {
			t.Fatalf("Expected 4 distinct tags, got %d", len(hist))
		}
		if hist[0].Tag != "bright" || hist[0].Count != 2 {
			t.Errorf("Expected bright:2 first, got %+v", hist[0])
		}
	})

	t.Run("scoped to one coffee", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/results/flavors?coffee_id="+coffeeB, nil)
		w := httptest.NewRecorder()

		handler.Flavors(w, req)

		var hist []aggregate.FlavorCount
		if err := json.NewDecoder(w.Body).Decode(&hist); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(hist) != 1 || hist[0].Tag != "nutty" {
			t.Errorf("Expected only nutty for coffee B, got %+v", hist)
		}
	})
}

func TestUserResults(t *testing.T) {
	conn := setupTestDB(t)

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	coffeeA := insertCoffee(t, conn, "Coffee A", "nutty", "balanced")
	coffeeB := insertCoffee(t, conn, "Coffee B", "fruity")
	alice := insertUser(t, conn, "Alice")
	bob := insertUser(t, conn, "Bob")

	insertTasting(t, conn, alice, coffeeA, "nutty", "bold")
	insertReview(t, conn, alice, coffeeA, 1)
	insertReview(t, conn, alice, coffeeB, 2)
	insertReview(t, conn, bob, coffeeA, 1)
	insertReview(t, conn, bob, coffeeB, 2)

	req := httptest.NewRequest("GET", "/users/"+alice+"/results", nil)
	req.SetPathValue("id", alice)
	w := httptest.NewRecorder()

	handler.UserResults(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp UserResultsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(resp.Entries))
	}
	entry := resp.Entries[0]
	if entry.Coffee.ID != coffeeA {
		t.Errorf("Expected entry for coffee A, got %s", entry.Coffee.ID)
	}
	if len(entry.TagAccuracy.Correct) != 1 || entry.TagAccuracy.Correct[0] != "nutty" {
		t.Errorf("Expected correct=[nutty], got %v", entry.TagAccuracy.Correct)
	}
	if len(entry.TagAccuracy.Missed) != 1 || entry.TagAccuracy.Missed[0] != "balanced" {
		t.Errorf("Expected missed=[balanced], got %v", entry.TagAccuracy.Missed)
	}
	if len(entry.TagAccuracy.Extra) != 1 || entry.TagAccuracy.Extra[0] != "bold" {
		t.Errorf("Expected extra=[bold], got %v", entry.TagAccuracy.Extra)
	}

	if len(resp.Reviews) != 2 {
		t.Errorf("Expected Alice's 2 reviews, got %d", len(resp.Reviews))
	}

	if resp.Favorites.PersonalCoffeeID != coffeeA {
		t.Errorf("Expected personal favorite coffee A, got %s", resp.Favorites.PersonalCoffeeID)
	}
	if resp.Favorites.CrowdCoffeeID != coffeeA {
		t.Errorf("Expected crowd favorite coffee A, got %s", resp.Favorites.CrowdCoffeeID)
	}
	if !resp.Favorites.Matched {
		t.Error("Expected matched favorites")
	}
}

func TestUserResults_UnknownUser(t *testing.T) {
	conn := setupTestDB(t)

	cfg := getTestConfig()
	handler := NewResultsHandler(conn, cfg)

	req := httptest.NewRequest("GET", "/users/nope/results", nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()

	handler.UserResults(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
