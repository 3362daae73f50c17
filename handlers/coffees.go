// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/brew-haha/cliparse"
	"github.com/danielhkuo/brew-haha/middleware"
	"github.com/danielhkuo/brew-haha/models"
	"github.com/google/uuid"
)

type CoffeeHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCoffeeHandler(db *sql.DB, cfg cliparse.Config) *CoffeeHandler {
	return &CoffeeHandler{db: db, cfg: cfg}
}

// ListCoffees handles GET /coffees
func (h *CoffeeHandler) ListCoffees(w http.ResponseWriter, r *http.Request) {
	coffees, err := loadCoffees(h.db)
	if err != nil {
		slog.Error("failed to query coffees", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, coffees)
}

// GetCoffee handles GET /coffees/{id}
func (h *CoffeeHandler) GetCoffee(w http.ResponseWriter, r *http.Request) {
	coffeeID := r.PathValue("id")
	if coffeeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "coffee_id is required")
		return
	}

	var coffee models.Coffee
	var tags string
	err := h.db.QueryRow(`
		SELECT id, name, description, tags, panel_notes FROM coffee WHERE id = $1
	`, coffeeID).Scan(&coffee.ID, &coffee.Name, &coffee.Description, &tags, &coffee.PanelNotes)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Coffee not found")
		return
	}
	if err != nil {
		slog.Error("failed to query coffee", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	coffee.Tags = models.DecodeTags(tags)

	middleware.JSONResponse(w, http.StatusOK, coffee)
}

// CreateCoffee handles POST /coffees (admin)
func (h *CoffeeHandler) CreateCoffee(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.CoffeeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	coffee := models.Coffee{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		PanelNotes:  req.PanelNotes,
	}
	if coffee.Tags == nil {
		coffee.Tags = []string{}
	}

	_, err := h.db.Exec(`
		INSERT INTO coffee (id, name, description, tags, panel_notes)
		VALUES ($1, $2, $3, $4, $5)
	`, coffee.ID, coffee.Name, coffee.Description, models.EncodeTags(coffee.Tags), coffee.PanelNotes)

	if err != nil {
		slog.Error("failed to insert coffee", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create coffee")
		return
	}

	slog.Info("coffee created", "coffee_id", coffee.ID, "name", coffee.Name)

	middleware.JSONResponse(w, http.StatusCreated, coffee)
}

// UpdateCoffee handles PUT /coffees/{id} (admin)
func (h *CoffeeHandler) UpdateCoffee(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	coffeeID := r.PathValue("id")
	if coffeeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "coffee_id is required")
		return
	}

	var req models.CoffeeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	result, err := h.db.Exec(`
		UPDATE coffee
		SET name = $1, description = $2, tags = $3, panel_notes = $4
		WHERE id = $5
	`, req.Name, req.Description, models.EncodeTags(req.Tags), req.PanelNotes, coffeeID)

	if err != nil {
		slog.Error("failed to update coffee", "error", err, "coffee_id", coffeeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update coffee")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update coffee")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Coffee not found")
		return
	}

	slog.Info("coffee updated", "coffee_id", coffeeID)

	middleware.JSONResponse(w, http.StatusOK, models.Coffee{
		ID:          coffeeID,
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		PanelNotes:  req.PanelNotes,
	})
}

// DeleteCoffee handles DELETE /coffees/{id} (admin).
// Tastings and reviews of the coffee go with it, in one transaction.
func (h *CoffeeHandler) DeleteCoffee(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	coffeeID := r.PathValue("id")
	if coffeeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "coffee_id is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasting WHERE coffee_id = $1`, coffeeID); err != nil {
		slog.Error("failed to delete tastings", "error", err, "coffee_id", coffeeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete coffee")
		return
	}
	if _, err := tx.Exec(`DELETE FROM review WHERE coffee_id = $1`, coffeeID); err != nil {
		slog.Error("failed to delete reviews", "error", err, "coffee_id", coffeeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete coffee")
		return
	}

	result, err := tx.Exec(`DELETE FROM coffee WHERE id = $1`, coffeeID)
	if err != nil {
		slog.Error("failed to delete coffee", "error", err, "coffee_id", coffeeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete coffee")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete coffee")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Coffee not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete coffee")
		return
	}

	slog.Info("coffee deleted", "coffee_id", coffeeID)

	w.WriteHeader(http.StatusNoContent)
}

// loadCoffees reads every coffee ordered by name. Shared by the public
// listing, the quiz recommendation, and the results handlers.
func loadCoffees(conn *sql.DB) ([]models.Coffee, error) {
	rows, err := conn.Query(`
		SELECT id, name, description, tags, panel_notes FROM coffee ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coffees := []models.Coffee{}
	for rows.Next() {
		var c models.Coffee
		var tags string
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &tags, &c.PanelNotes); err != nil {
			return nil, err
		}
		c.Tags = models.DecodeTags(tags)
		coffees = append(coffees, c)
	}

	return coffees, rows.Err()
}
