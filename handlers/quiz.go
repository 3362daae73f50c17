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
)

type QuizHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuizHandler(db *sql.DB, cfg cliparse.Config) *QuizHandler {
	return &QuizHandler{db: db, cfg: cfg}
}

// quizQuestions is the fixed style quiz. The last answer is the style
// value the recommendation keys on.
var quizQuestions = []models.QuizQuestion{
	{
		Prompt: "How do you usually take your coffee?",
		Options: []models.QuizOption{
			{Label: "Black, always", Value: "black"},
			{Label: "A splash of milk", Value: "milk"},
			{Label: "Sweet and creamy", Value: "sweet"},
			{Label: "Depends on the day", Value: "depends"},
		},
	},
	{
		Prompt: "Pick a breakfast.",
		Options: []models.QuizOption{
			{Label: "Buttered toast", Value: "toast"},
			{Label: "Fresh berries", Value: "berries"},
			{Label: "Dark chocolate", Value: "chocolate"},
			{Label: "Hot sauce on everything", Value: "hot-sauce"},
		},
	},
	{
		Prompt: "What are you in the mood for today?",
		Options: []models.QuizOption{
			{Label: "Something smooth and easy", Value: "smooth"},
			{Label: "Something bright and fruity", Value: "fruity"},
			{Label: "Something bold and intense", Value: "intense"},
			{Label: "Surprise me, go weird", Value: "crazy"},
		},
	},
}

// styleTags maps the final quiz answer to the coffee tags that satisfy it.
var styleTags = map[string][]string{
	"smooth":  {"smooth", "balanced", "chocolate", "nutty"},
	"fruity":  {"fruity", "bright", "citrus", "floral"},
	"intense": {"intense", "bold", "dark", "smoky"},
	"crazy":   {"funky", "experimental", "wild", "fermented"},
}

// GetQuiz handles GET /quiz
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, quizQuestions)
}

// Recommend handles POST /quiz/recommendation.
// Only the final answer (the style) selects a coffee: the first coffee,
// in name order, carrying any tag associated with that style. When no
// coffee matches, the fallback is the first coffee in name order, so two
// users with the same lineup get the same answer.
func (h *QuizHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.QuizAnswersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Answers) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answers cannot be empty")
		return
	}

	style := req.Answers[len(req.Answers)-1]
	wantTags, known := styleTags[style]
	if !known {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown style: "+style)
		return
	}

	coffees, err := loadCoffees(h.db)
	if err != nil {
		slog.Error("failed to query coffees", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if len(coffees) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No coffees available")
		return
	}

	pick := coffees[0]
	found := false
	for _, coffee := range coffees {
		if found {
			break
		}
		for _, tag := range coffee.Tags {
			if containsTag(wantTags, tag) {
				pick = coffee
				found = true
				break
			}
		}
	}

	slog.Info("quiz recommendation", "style", style, "coffee_id", pick.ID, "matched", found)

	middleware.JSONResponse(w, http.StatusOK, models.RecommendationResponse{Coffee: pick})
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
