// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/brew-haha/cliparse"
	"github.com/danielhkuo/brew-haha/db"
	"github.com/danielhkuo/brew-haha/middleware"
	"github.com/danielhkuo/brew-haha/models"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// ClaimName handles POST /users
func (h *UserHandler) ClaimName(w http.ResponseWriter, r *http.Request) {
	var req models.ClaimNameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Name) > models.MaxNameLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be at most 50 characters")
		return
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	// The unique index on app_user.name is the duplicate authority: insert
	// and let the constraint decide. Transient failures are retried; a
	// unique violation is final and surfaces as a conflict.
	err := db.Retry(func() error {
		_, execErr := h.db.Exec(`
			INSERT INTO app_user (id, name, created_at)
			VALUES ($1, $2, $3)
		`, user.ID, user.Name, user.CreatedAt)
		return execErr
	})

	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Name already taken")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim name")
		return
	}

	slog.Info("name claimed", "user_id", user.ID, "name", user.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimNameResponse{User: user})
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, name, created_at FROM app_user WHERE id = $1
	`, userID).Scan(&user.ID, &user.Name, &user.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// GetProgress handles GET /users/{id}/progress
func (h *UserHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
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

	var progress models.ProgressResponse
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM tasting WHERE user_id = $1
	`, userID).Scan(&progress.TastedCount)
	if err != nil {
		slog.Error("failed to count tastings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	err = h.db.QueryRow(`SELECT COUNT(*) FROM coffee`).Scan(&progress.CoffeeCount)
	if err != nil {
		slog.Error("failed to count coffees", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM review WHERE user_id = $1)
	`, userID).Scan(&progress.Reviewed)
	if err != nil {
		slog.Error("failed to check reviews", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, progress)
}

// ListUsers handles GET /users (admin)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, name, created_at FROM app_user ORDER BY created_at
	`)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.AdminUser{}
	for rows.Next() {
		var u models.AdminUser
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			slog.Error("failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		u.CreatedAgo = humanize.Time(u.CreatedAt)
		users = append(users, u)
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /users/{id} (admin).
// Removes the user's tastings, reviews, and the user row in one
// transaction, so a failure partway leaves nothing half-deleted.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasting WHERE user_id = $1`, userID); err != nil {
		slog.Error("failed to delete tastings", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if _, err := tx.Exec(`DELETE FROM review WHERE user_id = $1`, userID); err != nil {
		slog.Error("failed to delete reviews", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	result, err := tx.Exec(`DELETE FROM app_user WHERE id = $1`, userID)
	if err != nil {
		slog.Error("failed to delete user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	slog.Info("user deleted", "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}
