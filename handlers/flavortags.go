// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/brew-haha/cliparse"
	"github.com/danielhkuo/brew-haha/db"
	"github.com/danielhkuo/brew-haha/middleware"
	"github.com/danielhkuo/brew-haha/models"
	"github.com/google/uuid"
)

// FlavorTagHandler manages the tag vocabulary shown in tasting and
// results pages. The vocabulary is advisory: coffee and tasting tags are
// stored as free strings and keep working if an entry here is removed.
type FlavorTagHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFlavorTagHandler(db *sql.DB, cfg cliparse.Config) *FlavorTagHandler {
	return &FlavorTagHandler{db: db, cfg: cfg}
}

// ListFlavorTags handles GET /flavor-tags
func (h *FlavorTagHandler) ListFlavorTags(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, description FROM flavor_tag ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query flavor tags", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	tags := []models.FlavorTag{}
	for rows.Next() {
		var tag models.FlavorTag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Description); err != nil {
			slog.Error("failed to scan flavor tag", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		tags = append(tags, tag)
	}

	middleware.JSONResponse(w, http.StatusOK, tags)
}

// CreateFlavorTag handles POST /flavor-tags (admin)
func (h *FlavorTagHandler) CreateFlavorTag(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.FlavorTagRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	tag := models.FlavorTag{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}

	_, err := h.db.Exec(`
		INSERT INTO flavor_tag (id, name, description)
		VALUES ($1, $2, $3)
	`, tag.ID, tag.Name, tag.Description)

	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Flavor tag already exists")
			return
		}
		slog.Error("failed to insert flavor tag", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create flavor tag")
		return
	}

	slog.Info("flavor tag created", "tag_id", tag.ID, "name", tag.Name)

	middleware.JSONResponse(w, http.StatusCreated, tag)
}

// UpdateFlavorTag handles PUT /flavor-tags/{id} (admin)
func (h *FlavorTagHandler) UpdateFlavorTag(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	tagID := r.PathValue("id")
	if tagID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tag_id is required")
		return
	}

	var req models.FlavorTagRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	result, err := h.db.Exec(`
		UPDATE flavor_tag SET name = $1, description = $2 WHERE id = $3
	`, req.Name, req.Description, tagID)

	if err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Flavor tag already exists")
			return
		}
		slog.Error("failed to update flavor tag", "error", err, "tag_id", tagID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update flavor tag")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update flavor tag")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Flavor tag not found")
		return
	}

	slog.Info("flavor tag updated", "tag_id", tagID)

	w.WriteHeader(http.StatusNoContent)
}

// DeleteFlavorTag handles DELETE /flavor-tags/{id} (admin)
func (h *FlavorTagHandler) DeleteFlavorTag(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	tagID := r.PathValue("id")
	if tagID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "tag_id is required")
		return
	}

	result, err := h.db.Exec(`DELETE FROM flavor_tag WHERE id = $1`, tagID)
	if err != nil {
		slog.Error("failed to delete flavor tag", "error", err, "tag_id", tagID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete flavor tag")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete flavor tag")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Flavor tag not found")
		return
	}

	slog.Info("flavor tag deleted", "tag_id", tagID)

	w.WriteHeader(http.StatusNoContent)
}
