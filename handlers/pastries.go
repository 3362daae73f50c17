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
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

type PastryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPastryHandler(db *sql.DB, cfg cliparse.Config) *PastryHandler {
	return &PastryHandler{db: db, cfg: cfg}
}

// ListPastries handles GET /pastries
func (h *PastryHandler) ListPastries(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, description, image FROM pastry ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query pastries", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	pastries := []models.Pastry{}
	for rows.Next() {
		var p models.Pastry
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Image); err != nil {
			slog.Error("failed to scan pastry", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		pastries = append(pastries, p)
	}

	middleware.JSONResponse(w, http.StatusOK, pastries)
}

// CreatePastry handles POST /pastries (admin)
func (h *PastryHandler) CreatePastry(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.PastryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	pastry := models.Pastry{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	}

	_, err := h.db.Exec(`
		INSERT INTO pastry (id, name, description, image)
		VALUES ($1, $2, $3, $4)
	`, pastry.ID, pastry.Name, pastry.Description, pastry.Image)

	if err != nil {
		slog.Error("failed to insert pastry", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create pastry")
		return
	}

	slog.Info("pastry created", "pastry_id", pastry.ID, "name", pastry.Name)

	middleware.JSONResponse(w, http.StatusCreated, pastry)
}

// UpdatePastry handles PUT /pastries/{id} (admin)
func (h *PastryHandler) UpdatePastry(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	pastryID := r.PathValue("id")
	if pastryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pastry_id is required")
		return
	}

	var req models.PastryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	result, err := h.db.Exec(`
		UPDATE pastry SET name = $1, description = $2, image = $3 WHERE id = $4
	`, req.Name, req.Description, req.Image, pastryID)

	if err != nil {
		slog.Error("failed to update pastry", "error", err, "pastry_id", pastryID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update pastry")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update pastry")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pastry not found")
		return
	}

	slog.Info("pastry updated", "pastry_id", pastryID)

	w.WriteHeader(http.StatusNoContent)
}

// DeletePastry handles DELETE /pastries/{id} (admin)
func (h *PastryHandler) DeletePastry(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	pastryID := r.PathValue("id")
	if pastryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pastry_id is required")
		return
	}

	result, err := h.db.Exec(`DELETE FROM pastry WHERE id = $1`, pastryID)
	if err != nil {
		slog.Error("failed to delete pastry", "error", err, "pastry_id", pastryID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete pastry")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete pastry")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pastry not found")
		return
	}

	slog.Info("pastry deleted", "pastry_id", pastryID)

	w.WriteHeader(http.StatusNoContent)
}

// SubmitFeedback handles POST /pastry-feedback.
// Feedback is optionally attributed: without a known user it is recorded
// as Anonymous.
func (h *PastryHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.PastryFeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Feedback == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "feedback is required")
		return
	}

	userName := req.UserName
	if req.UserID != "" {
		err := h.db.QueryRow(`
			SELECT name FROM app_user WHERE id = $1
		`, req.UserID).Scan(&userName)
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			slog.Error("failed to query user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}
	if userName == "" {
		userName = "Anonymous"
	}

	feedback := models.PastryFeedback{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		UserName:  userName,
		Feedback:  req.Feedback,
		CreatedAt: time.Now(),
	}

	var storedUserID interface{}
	if feedback.UserID != "" {
		storedUserID = feedback.UserID
	}

	_, err := h.db.Exec(`
		INSERT INTO pastry_feedback (id, user_id, user_name, feedback, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, feedback.ID, storedUserID, feedback.UserName, feedback.Feedback, feedback.CreatedAt)

	if err != nil {
		slog.Error("failed to insert pastry feedback", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}

	slog.Info("pastry feedback submitted", "feedback_id", feedback.ID, "user_name", feedback.UserName)

	middleware.JSONResponse(w, http.StatusCreated, feedback)
}

// ListFeedback handles GET /pastry-feedback (admin)
func (h *PastryHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, user_id, user_name, feedback, created_at
		FROM pastry_feedback ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query pastry feedback", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	feedback := []models.PastryFeedback{}
	for rows.Next() {
		var f models.PastryFeedback
		var userID sql.NullString
		if err := rows.Scan(&f.ID, &userID, &f.UserName, &f.Feedback, &f.CreatedAt); err != nil {
			slog.Error("failed to scan pastry feedback", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		f.UserID = userID.String
		f.CreatedAgo = humanize.Time(f.CreatedAt)
		feedback = append(feedback, f)
	}

	middleware.JSONResponse(w, http.StatusOK, feedback)
}
