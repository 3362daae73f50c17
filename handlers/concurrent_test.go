// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/brew-haha/models"
	"github.com/danielhkuo/brew-haha/testutil"
)

// TestConcurrentNameClaims verifies that when several goroutines try to
// claim the same display name, exactly one succeeds. The unique index on
// app_user.name is the arbiter, not application-level checking.
func TestConcurrentNameClaims(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	userHandler := NewUserHandler(db, cfg)

	contestedName := "RaceConditionUser"
	numAttempts := 5

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			claimReq := models.ClaimNameRequest{Name: contestedName}
			body, _ := json.Marshal(claimReq)
			req := httptest.NewRequest("POST", "/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			userHandler.ClaimName(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful claim, got %d", successCount.Load())
	}

	var claimCount int
	err := db.QueryRow("SELECT COUNT(*) FROM app_user WHERE name = $1", contestedName).Scan(&claimCount)
	if err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}

	if claimCount != 1 {
		t.Errorf("Expected 1 user row in database, got %d", claimCount)
	}
}

// TestConcurrentTastingUpdates verifies that one user hammering the same
// coffee with tasting submissions converges to a single consistent row.
func TestConcurrentTastingUpdates(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	tastingHandler := NewTastingHandler(db, cfg)

	userID := testutil.CreateTestUser(t, db, "UpdaterUser")
	coffeeID := testutil.CreateTestCoffee(t, db, "Contested Roast")

	numUpdates := 10
	var wg sync.WaitGroup

	for i := 0; i < numUpdates; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			tastingReq := models.RecordTastingRequest{
				UserID:     userID,
				CoffeeID:   coffeeID,
				FlavorTags: []string{"fruity"},
				Note:       "attempt " + string(rune('A'+idx)),
			}
			body, _ := json.Marshal(tastingReq)
			req := httptest.NewRequest("POST", "/tastings", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			tastingHandler.RecordTasting(w, req)
			// We don't care which update wins, just that it completes
		}(i)
	}

	wg.Wait()

	var tastingCount int
	err := db.QueryRow("SELECT COUNT(*) FROM tasting WHERE user_id = $1 AND coffee_id = $2",
		userID, coffeeID).Scan(&tastingCount)
	if err != nil {
		t.Fatalf("Failed to count tastings: %v", err)
	}

	if tastingCount != 1 {
		t.Errorf("Expected 1 tasting after concurrent updates, got %d", tastingCount)
	}
}

// TestConcurrentRankingSubmissions verifies that concurrent full-ranking
// submissions from the same user never leave a mixed or duplicated set.
func TestConcurrentRankingSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	reviewHandler := NewReviewHandler(db, cfg)

	userID := testutil.CreateTestUser(t, db, "RankingUser")
	coffeeA := testutil.CreateTestCoffee(t, db, "Coffee A")
	coffeeB := testutil.CreateTestCoffee(t, db, "Coffee B")
	coffeeC := testutil.CreateTestCoffee(t, db, "Coffee C")

	orderings := [][]string{
		{coffeeA, coffeeB, coffeeC},
		{coffeeB, coffeeC, coffeeA},
		{coffeeC, coffeeA, coffeeB},
	}

	var wg sync.WaitGroup
	for i := 0; i < len(orderings); i++ {
		wg.Add(1)
		go func(ranked []string) {
			defer wg.Done()

			body, _ := json.Marshal(models.SubmitRankingRequest{Ranked: ranked})
			req := httptest.NewRequest("POST", "/users/"+userID+"/rankings", bytes.NewReader(body))
			req.SetPathValue("id", userID)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			reviewHandler.SubmitRanking(w, req)
		}(orderings[i])
	}

	wg.Wait()

	// Whichever submission won, the user must hold exactly one review per
	// coffee with dense ranks 1..3
	var reviewCount int
	err := db.QueryRow("SELECT COUNT(*) FROM review WHERE user_id = $1", userID).Scan(&reviewCount)
	if err != nil {
		t.Fatalf("Failed to count reviews: %v", err)
	}
	if reviewCount != 3 {
		t.Fatalf("Expected 3 reviews after concurrent submissions, got %d", reviewCount)
	}

	var distinctRanks int
	err = db.QueryRow("SELECT COUNT(DISTINCT rank) FROM review WHERE user_id = $1", userID).Scan(&distinctRanks)
	if err != nil {
		t.Fatalf("Failed to count distinct ranks: %v", err)
	}
	if distinctRanks != 3 {
		t.Errorf("Expected dense distinct ranks, got %d", distinctRanks)
	}
}

// TestParallelUsers verifies that independent users working at the same
// time don't interfere with each other's tastings or rankings.
func TestParallelUsers(t *testing.T) {
	t.Parallel()

	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	userHandler := NewUserHandler(db, cfg)
	tastingHandler := NewTastingHandler(db, cfg)
	reviewHandler := NewReviewHandler(db, cfg)

	coffeeA := testutil.CreateTestCoffee(t, db, "Coffee A")
	coffeeB := testutil.CreateTestCoffee(t, db, "Coffee B")

	numUsers := 5
	var wg sync.WaitGroup

	for i := 0; i < numUsers; i++ {
		wg.Add(1)
		go func(userIdx int) {
			defer wg.Done()

			// Claim a name
			claimReq := models.ClaimNameRequest{Name: "Attendee" + string(rune('A'+userIdx))}
			body, _ := json.Marshal(claimReq)
			req := httptest.NewRequest("POST", "/users", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			userHandler.ClaimName(w, req)

			if w.Code != http.StatusCreated {
				t.Errorf("User %d claim failed: %d", userIdx, w.Code)
				return
			}

			var claimResp models.ClaimNameResponse
			json.NewDecoder(w.Body).Decode(&claimResp)
			userID := claimResp.User.ID

			// Record a tasting per coffee
			for _, coffeeID := range []string{coffeeA, coffeeB} {
				tastingReq := models.RecordTastingRequest{
					UserID:     userID,
					CoffeeID:   coffeeID,
					FlavorTags: []string{"fruity"},
				}
				body, _ := json.Marshal(tastingReq)
				req := httptest.NewRequest("POST", "/tastings", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()
				tastingHandler.RecordTasting(w, req)

				if w.Code != http.StatusCreated {
					t.Errorf("User %d tasting failed: %d", userIdx, w.Code)
					return
				}
			}

			// Submit the final ranking
			rankReq := models.SubmitRankingRequest{Ranked: []string{coffeeA, coffeeB}}
			body, _ = json.Marshal(rankReq)
			req = httptest.NewRequest("POST", "/users/"+userID+"/rankings", bytes.NewReader(body))
			req.SetPathValue("id", userID)
			req.Header.Set("Content-Type", "application/json")
			w = httptest.NewRecorder()
			reviewHandler.SubmitRanking(w, req)

			if w.Code != http.StatusCreated {
				t.Errorf("User %d ranking failed: %d", userIdx, w.Code)
				return
			}
		}(i)
	}

	wg.Wait()

	var userCount, tastingCount, reviewCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM app_user").Scan(&userCount); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM tasting").Scan(&tastingCount); err != nil {
		t.Fatalf("Failed to count tastings: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM review").Scan(&reviewCount); err != nil {
		t.Fatalf("Failed to count reviews: %v", err)
	}

	if userCount != numUsers {
		t.Errorf("Expected %d users, got %d", numUsers, userCount)
	}
	if tastingCount != numUsers*2 {
		t.Errorf("Expected %d tastings, got %d", numUsers*2, tastingCount)
	}
	if reviewCount != numUsers*2 {
		t.Errorf("Expected %d reviews, got %d", numUsers*2, reviewCount)
	}
}
