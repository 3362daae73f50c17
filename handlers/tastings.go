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

type TastingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewTastingHandler(db *sql.DB, cfg cliparse.Config) *TastingHandler {
	return &TastingHandler{db: db, cfg: cfg}
}

// RecordTasting handles POST /tastings.
// One tasting per (user, coffee): a resubmission replaces every field of
// the existing row. The flavor tag cap is enforced here, not in the UI.
func (h *TastingHandler) RecordTasting(w http.ResponseWriter, r *http.Request) {
	var req models.RecordTastingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.CoffeeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "coffee_id is required")
		return
	}
	if len(req.FlavorTags) > models.MaxFlavorTags {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at most 3 flavor tags allowed")
		return
	}
	if req.FlavorTags == nil {
		req.FlavorTags = []string{}
	}

	var userExists, coffeeExists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM app_user WHERE id = $1)
	`, req.UserID).Scan(&userExists)
	if err == nil {
		err = h.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM coffee WHERE id = $1)
		`, req.CoffeeID).Scan(&coffeeExists)
	}
	if err != nil {
		slog.Error("failed to verify tasting references", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !userExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if !coffeeExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Coffee not found")
		return
	}

	tasting := models.Tasting{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		CoffeeID:   req.CoffeeID,
		FlavorTags: req.FlavorTags,
		Emoji:      req.Emoji,
		Note:       req.Note,
		UpdatedAt:  time.Now(),
	}

	// ON CONFLICT DO UPDATE keys on the (user_id, coffee_id) unique index;
	// both drivers support this form. The row ID survives a replace.
	err = h.db.QueryRow(`
		INSERT INTO tasting (id, user_id, coffee_id, flavor_tags, emoji, note, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, coffee_id) DO UPDATE
		SET flavor_tags = excluded.flavor_tags,
		    emoji = excluded.emoji,
		    note = excluded.note,
		    updated_at = excluded.updated_at
		RETURNING id
	`, tasting.ID, tasting.UserID, tasting.CoffeeID,
		models.EncodeTags(tasting.FlavorTags), tasting.Emoji, tasting.Note, tasting.UpdatedAt,
	).Scan(&tasting.ID)

	if err != nil {
		slog.Error("failed to upsert tasting", "error", err, "user_id", req.UserID, "coffee_id", req.CoffeeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record tasting")
		return
	}

	slog.Info("tasting recorded", "tasting_id", tasting.ID, "user_id", req.UserID, "coffee_id", req.CoffeeID)

	middleware.JSONResponse(w, http.StatusCreated, tasting)
}

// ListUserTastings handles GET /users/{id}/tastings
func (h *TastingHandler) ListUserTastings(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
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

	middleware.JSONResponse(w, http.StatusOK, tastings)
}

// ListTastings handles GET /tastings (admin)
func (h *TastingHandler) ListTastings(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	tastings, err := queryTastings(h.db, `
		SELECT id, user_id, coffee_id, flavor_tags, emoji, note, updated_at
		FROM tasting ORDER BY updated_at
	`)
	if err != nil {
		slog.Error("failed to query tastings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tastings)
}

// UpdateTasting handles PUT /tastings/{id} (admin)
func (h *TastingHandler) UpdateTasting(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	tastingID := r.PathValue("id")
	if tastingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tasting_id is required")
		return
	}

	var req models.UpdateTastingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.FlavorTags) > models.MaxFlavorTags {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at most 3 flavor tags allowed")
		return
	}
	if req.FlavorTags == nil {
		req.FlavorTags = []string{}
	}

	result, err := h.db.Exec(`
		UPDATE tasting
		SET flavor_tags = $1, emoji = $2, note = $3, updated_at = $4
		WHERE id = $5
	`, models.EncodeTags(req.FlavorTags), req.Emoji, req.Note, time.Now(), tastingID)

	if err != nil {
		slog.Error("failed to update tasting", "error", err, "tasting_id", tastingID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update tasting")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update tasting")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Tasting not found")
		return
	}

	slog.Info("tasting updated", "tasting_id", tastingID)

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTasting handles DELETE /tastings/{id} (admin)
func (h *TastingHandler) DeleteTasting(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	tastingID := r.PathValue("id")
	if tastingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tasting_id is required")
		return
	}

	result, err := h.db.Exec(`DELETE FROM tasting WHERE id = $1`, tastingID)
	if err != nil {
		slog.Error("failed to delete tasting", "error", err, "tasting_id", tastingID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete tasting")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete tasting")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Tasting not found")
		return
	}

	slog.Info("tasting deleted", "tasting_id", tastingID)

	w.WriteHeader(http.StatusNoContent)
}

func queryTastings(conn *sql.DB, query string, args ...interface{}) ([]models.Tasting, error) {
	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tastings := []models.Tasting{}
	for rows.Next() {
		var t models.Tasting
		var tags string
		if err := rows.Scan(&t.ID, &t.UserID, &t.CoffeeID, &tags, &t.Emoji, &t.Note, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.FlavorTags = models.DecodeTags(tags)
		tastings = append(tastings, t)
	}

	return tastings, rows.Err()
}
