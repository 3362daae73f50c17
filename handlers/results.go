// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/brew-haha/aggregate"
	"github.com/danielhkuo/brew-haha/cliparse"
	"github.com/danielhkuo/brew-haha/middleware"
	"github.com/danielhkuo/brew-haha/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// LeaderboardResponse is the results page payload: per-coffee summaries
// plus the medal table.
type LeaderboardResponse struct {
	Summaries []aggregate.ReviewSummary `json:"summaries"`
	Medals    []aggregate.MedalRow      `json:"medals"`
}

// UserResultEntry is one tasted coffee on a user's personal results page.
type UserResultEntry struct {
	Coffee      models.Coffee          `json:"coffee"`
	Tasting     models.Tasting         `json:"tasting"`
	TagAccuracy aggregate.TagPartition `json:"tag_accuracy"`
}

// UserResultsResponse is the full personal results payload.
type UserResultsResponse struct {
	Entries   []UserResultEntry            `json:"entries"`
	Reviews   []models.Review              `json:"reviews"`
	Favorites aggregate.FavoriteComparison `json:"favorites"`
}

// Leaderboard handles GET /results/leaderboard
func (h *ResultsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	coffees, err := loadCoffees(h.db)
	if err != nil {
		slog.Error("failed to query coffees", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	reviews, err := queryReviews(h.db, `
		SELECT id, user_id, coffee_id, rank, would_drink_again, submitted_at FROM review
	`)
	if err != nil {
		slog.Error("failed to query reviews", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, LeaderboardResponse{
		Summaries: aggregate.ReviewSummaries(coffees, reviews),
		Medals:    aggregate.MedalTable(coffees, reviews),
	})
}

// Flavors handles GET /results/flavors with an optional coffee_id query
// parameter scoping the histogram to a single coffee.
func (h *ResultsHandler) Flavors(w http.ResponseWriter, r *http.Request) {
	coffeeID := r.URL.Query().Get("coffee_id")

	tastings, err := queryTastings(h.db, `
		SELECT id, user_id, coffee_id, flavor_tags, emoji, note, updated_at FROM tasting
	`)
	if err != nil {
		slog.Error("failed to query tastings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, aggregate.FlavorHistogram(tastings, coffeeID))
}

// UserResults handles GET /users/{id}/results
func (h *ResultsHandler) UserResults(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM app_user WHERE id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	coffees, err := loadCoffees(h.db)
	if err != nil {
		slog.Error("failed to query coffees", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	coffeeByID := make(map[string]models.Coffee, len(coffees))
	for _, c := range coffees {
		coffeeByID[c.ID] = c
	}

	tastings, err := queryTastings(h.db, `
		SELECT id, user_id, coffee_id, flavor_tags, emoji, note, updated_at
		FROM tasting WHERE user_id = $1 ORDER BY updated_at
	`, userID)
	if err != nil {
		slog.Error("failed to query tastings", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	entries := []UserResultEntry{}
	for _, t := range tastings {
		coffee, ok := coffeeByID[t.CoffeeID]
		if !ok {
			// Coffee removed after the tasting; skip rather than render
			// a hole in the page.
			continue
		}
		entries = append(entries, UserResultEntry{
			Coffee:      coffee,
			Tasting:     t,
			TagAccuracy: aggregate.TagAccuracy(coffee.Tags, t.FlavorTags),
		})
	}

	allReviews, err := queryReviews(h.db, `
		SELECT id, user_id, coffee_id, rank, would_drink_again, submitted_at FROM review
	`)
	if err != nil {
		slog.Error("failed to query reviews", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	userReviews := []models.Review{}
	for _, rev := range allReviews {
		if rev.UserID == userID {
			userReviews = append(userReviews, rev)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, UserResultsResponse{
		Entries:   entries,
		Reviews:   userReviews,
		Favorites: aggregate.Favorites(allReviews, userID),
	})
}
