// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/brew-haha/cliparse"
	"github.com/danielhkuo/brew-haha/middleware"
	"github.com/danielhkuo/brew-haha/models"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewReviewHandler(db *sql.DB, cfg cliparse.Config) *ReviewHandler {
	return &ReviewHandler{db: db, cfg: cfg}
}

// SubmitRanking handles POST /users/{id}/rankings.
// The list order is the ranking: first entry gets rank 1. The user's
// previous reviews are deleted and the new set inserted in one
// transaction, so resubmitting replaces rather than accumulates.
func (h *ReviewHandler) SubmitRanking(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var req models.SubmitRankingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Ranked) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ranked cannot be empty")
		return
	}

	seen := make(map[string]bool, len(req.Ranked))
	for _, coffeeID := range req.Ranked {
		if coffeeID == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "ranked contains an empty coffee_id")
			return
		}
		if seen[coffeeID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "ranked contains duplicate coffee_id: "+coffeeID)
			return
		}
		seen[coffeeID] = true
	}

	var userExists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM app_user WHERE id = $1)
	`, userID).Scan(&userExists)
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !userExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	validCoffees, err := loadCoffeeIDs(h.db)
	if err != nil {
		slog.Error("failed to query coffees", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	for _, coffeeID := range req.Ranked {
		if !validCoffees[coffeeID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid coffee_id: "+coffeeID)
			return
		}
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM review WHERE user_id = $1`, userID); err != nil {
		slog.Error("failed to delete previous reviews", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ranking")
		return
	}

	now := time.Now()
	reviews := make([]models.Review, 0, len(req.Ranked))
	for i, coffeeID := range req.Ranked {
		review := models.Review{
			ID:              uuid.NewString(),
			UserID:          userID,
			CoffeeID:        coffeeID,
			Rank:            i + 1,
			WouldDrinkAgain: req.WouldDrinkAgain[coffeeID],
			SubmittedAt:     now,
		}

		wouldDrink := 0
		if review.WouldDrinkAgain {
			wouldDrink = 1
		}

		_, err := tx.Exec(`
			INSERT INTO review (id, user_id, coffee_id, rank, would_drink_again, submitted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, review.ID, review.UserID, review.CoffeeID, review.Rank, wouldDrink, review.SubmittedAt)

		if err != nil {
			slog.Error("failed to insert review", "error", err, "user_id", userID, "coffee_id", coffeeID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ranking")
			return
		}

		reviews = append(reviews, review)
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ranking")
		return
	}

	slog.Info("ranking submitted", "user_id", userID, "coffees", len(reviews))

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitRankingResponse{Reviews: reviews})
}

// ListUserReviews handles GET /users/{id}/reviews
func (h *ReviewHandler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	reviews, err := queryReviews(h.db, `
		SELECT id, user_id, coffee_id, rank, would_drink_again, submitted_at
		FROM review WHERE user_id = $1 ORDER BY rank
	`, userID)
	if err != nil {
		slog.Error("failed to query reviews", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reviews)
}

// ListReviews handles GET /reviews (admin)
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	reviews, err := queryReviews(h.db, `
		SELECT id, user_id, coffee_id, rank, would_drink_again, submitted_at
		FROM review ORDER BY submitted_at
	`)
	if err != nil {
		slog.Error("failed to query reviews", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reviews)
}

// UpdateReview handles PUT /reviews/{id} (admin)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	reviewID := r.PathValue("id")
	if reviewID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "review_id is required")
		return
	}

	var req models.UpdateReviewRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Rank < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "rank must be at least 1")
		return
	}

	result, err := h.db.Exec(`
		UPDATE review SET rank = $1 WHERE id = $2
	`, req.Rank, reviewID)

	if err != nil {
		slog.Error("failed to update review", "error", err, "review_id", reviewID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update review")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Review not found")
		return
	}

	slog.Info("review updated", "review_id", reviewID, "rank", req.Rank)

	w.WriteHeader(http.StatusNoContent)
}

// DeleteReview handles DELETE /reviews/{id} (admin)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	reviewID := r.PathValue("id")
	if reviewID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "review_id is required")
		return
	}

	result, err := h.db.Exec(`DELETE FROM review WHERE id = $1`, reviewID)
	if err != nil {
		slog.Error("failed to delete review", "error", err, "review_id", reviewID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Review not found")
		return
	}

	slog.Info("review deleted", "review_id", reviewID)

	w.WriteHeader(http.StatusNoContent)
}

func loadCoffeeIDs(conn *sql.DB) (map[string]bool, error) {
	rows, err := conn.Query(`SELECT id FROM coffee`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}

	return ids, rows.Err()
}

func queryReviews(conn *sql.DB, query string, args ...interface{}) ([]models.Review, error) {
	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		var wouldDrink int
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.CoffeeID, &rev.Rank, &wouldDrink, &rev.SubmittedAt); err != nil {
			return nil, err
		}
		rev.WouldDrinkAgain = wouldDrink != 0
		reviews = append(reviews, rev)
	}

	return reviews, rows.Err()
}
