// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/brew-haha/cliparse"
	"github.com/danielhkuo/brew-haha/handlers"
	"github.com/danielhkuo/brew-haha/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	coffeeHandler := handlers.NewCoffeeHandler(db, cfg)
	tastingHandler := handlers.NewTastingHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)
	quizHandler := handlers.NewQuizHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	flavorTagHandler := handlers.NewFlavorTagHandler(db, cfg)
	pastryHandler := handlers.NewPastryHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Identity and progress (public)
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.ClaimName))
	mux.HandleFunc("GET /users/{id}", middleware.WithLogging(userHandler.GetUser))
	mux.HandleFunc("GET /users/{id}/progress", middleware.WithLogging(userHandler.GetProgress))

	// Coffee lineup (public)
	mux.HandleFunc("GET /coffees", middleware.WithLogging(coffeeHandler.ListCoffees))
	mux.HandleFunc("GET /coffees/{id}", middleware.WithLogging(coffeeHandler.GetCoffee))

	// Tastings (public)
	mux.HandleFunc("POST /tastings", middleware.WithLogging(tastingHandler.RecordTasting))
	mux.HandleFunc("GET /users/{id}/tastings", middleware.WithLogging(tastingHandler.ListUserTastings))

	// Rankings (public)
	mux.HandleFunc("POST /users/{id}/rankings", middleware.WithLogging(reviewHandler.SubmitRanking))
	mux.HandleFunc("GET /users/{id}/reviews", middleware.WithLogging(reviewHandler.ListUserReviews))

	// Style quiz (public)
	mux.HandleFunc("GET /quiz", middleware.WithLogging(quizHandler.GetQuiz))
	mux.HandleFunc("POST /quiz/recommendation", middleware.WithLogging(quizHandler.Recommend))

	// Results (public)
	mux.HandleFunc("GET /results/leaderboard", middleware.WithLogging(resultsHandler.Leaderboard))
	mux.HandleFunc("GET /results/flavors", middleware.WithLogging(resultsHandler.Flavors))
	mux.HandleFunc("GET /users/{id}/results", middleware.WithLogging(resultsHandler.UserResults))

	// Vocabulary and pastries (public reads, feedback write)
	mux.HandleFunc("GET /flavor-tags", middleware.WithLogging(flavorTagHandler.ListFlavorTags))
	mux.HandleFunc("GET /pastries", middleware.WithLogging(pastryHandler.ListPastries))
	mux.HandleFunc("POST /pastry-feedback", middleware.WithLogging(pastryHandler.SubmitFeedback))

	// Admin (X-Admin-Token)
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /admin/export", middleware.WithLogging(adminHandler.Export))

	mux.HandleFunc("POST /coffees", middleware.WithLogging(coffeeHandler.CreateCoffee))
	mux.HandleFunc("PUT /coffees/{id}", middleware.WithLogging(coffeeHandler.UpdateCoffee))
	mux.HandleFunc("DELETE /coffees/{id}", middleware.WithLogging(coffeeHandler.DeleteCoffee))

	mux.HandleFunc("GET /users", middleware.WithLogging(userHandler.ListUsers))
	mux.HandleFunc("DELETE /users/{id}", middleware.WithLogging(userHandler.DeleteUser))

	mux.HandleFunc("GET /tastings", middleware.WithLogging(tastingHandler.ListTastings))
	mux.HandleFunc("PUT /tastings/{id}", middleware.WithLogging(tastingHandler.UpdateTasting))
	mux.HandleFunc("DELETE /tastings/{id}", middleware.WithLogging(tastingHandler.DeleteTasting))

	mux.HandleFunc("GET /reviews", middleware.WithLogging(reviewHandler.ListReviews))
	mux.HandleFunc("PUT /reviews/{id}", middleware.WithLogging(reviewHandler.UpdateReview))
	mux.HandleFunc("DELETE /reviews/{id}", middleware.WithLogging(reviewHandler.DeleteReview))

	mux.HandleFunc("POST /flavor-tags", middleware.WithLogging(flavorTagHandler.CreateFlavorTag))
	mux.HandleFunc("PUT /flavor-tags/{id}", middleware.WithLogging(flavorTagHandler.UpdateFlavorTag))
	mux.HandleFunc("DELETE /flavor-tags/{id}", middleware.WithLogging(flavorTagHandler.DeleteFlavorTag))

	mux.HandleFunc("POST /pastries", middleware.WithLogging(pastryHandler.CreatePastry))
	mux.HandleFunc("PUT /pastries/{id}", middleware.WithLogging(pastryHandler.UpdatePastry))
	mux.HandleFunc("DELETE /pastries/{id}", middleware.WithLogging(pastryHandler.DeletePastry))

	mux.HandleFunc("GET /pastry-feedback", middleware.WithLogging(pastryHandler.ListFeedback))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("brew-haha API v1"))
	})

	return mux
}
