// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/brew-haha/auth"
	"github.com/danielhkuo/brew-haha/cliparse"
	"github.com/danielhkuo/brew-haha/middleware"
	"github.com/danielhkuo/brew-haha/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// requireAdmin validates the X-Admin-Token header. On failure it writes
// the 401 response and returns false; callers just return.
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) bool {
	token := r.Header.Get("X-Admin-Token")
	if err := auth.ValidateAdminToken(token, cfg.AdminTokenSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return false
	}
	return true
}

// Login handles POST /admin/login: exchanges the shared admin password
// for the session token the rest of the admin routes expect.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password is required")
		return
	}

	if err := auth.CheckAdminPassword(req.Password, h.cfg.AdminPassword, h.cfg.AdminPasswordHash); err != nil {
		slog.Warn("admin login rejected", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Wrong password")
		return
	}

	slog.Info("admin login", "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		AdminToken: auth.GenerateAdminToken(h.cfg.AdminTokenSalt),
	})
}

// Export handles GET /admin/export: the full event dataset as one JSON
// document, matching the admin page's Export button.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	coffees, err := loadCoffees(h.db)
	if err != nil {
		slog.Error("failed to query coffees", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	users, err := h.loadUsers()
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
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

	reviews, err := queryReviews(h.db, `
		SELECT id, user_id, coffee_id, rank, would_drink_again, submitted_at
		FROM review ORDER BY submitted_at
	`)
	if err != nil {
		slog.Error("failed to query reviews", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("data exported", "coffees", len(coffees), "users", len(users),
		"tastings", len(tastings), "reviews", len(reviews))

	middleware.JSONResponse(w, http.StatusOK, models.Export{
		Coffees:  coffees,
		Users:    users,
		Tastings: tastings,
		Reviews:  reviews,
	})
}

func (h *AdminHandler) loadUsers() ([]models.User, error) {
	rows, err := h.db.Query(`
		SELECT id, name, created_at FROM app_user ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
