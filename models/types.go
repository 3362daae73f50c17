// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// MaxFlavorTags is the per-tasting cap on flavor tag selections.
// Enforced at the write boundary, not just in the UI.
const MaxFlavorTags = 3

// MaxNameLength bounds display names and record names.
const MaxNameLength = 50

// Request types

type ClaimNameRequest struct {
	Name string `json:"name"`
}

type RecordTastingRequest struct {
	UserID     string   `json:"user_id"`
	CoffeeID   string   `json:"coffee_id"`
	FlavorTags []string `json:"flavor_tags"`
	Emoji      string   `json:"emoji"`
	Note       string   `json:"note"`
}

// SubmitRankingRequest carries a user's full ordering of tasted coffees.
// Position in Ranked determines rank (first = rank 1).
type SubmitRankingRequest struct {
	Ranked          []string        `json:"ranked"`
	WouldDrinkAgain map[string]bool `json:"would_drink_again,omitempty"`
}

type QuizAnswersRequest struct {
	Answers []string `json:"answers"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type CoffeeRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	PanelNotes  string   `json:"panel_notes"`
}

type FlavorTagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PastryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type PastryFeedbackRequest struct {
	UserID   string `json:"user_id,omitempty"`
	UserName string `json:"user_name"`
	Feedback string `json:"feedback"`
}

type UpdateTastingRequest struct {
	FlavorTags []string `json:"flavor_tags"`
	Emoji      string   `json:"emoji"`
	Note       string   `json:"note"`
}

type UpdateReviewRequest struct {
	Rank int `json:"rank"`
}

// Response types

type ClaimNameResponse struct {
	User User `json:"user"`
}

type AdminLoginResponse struct {
	AdminToken string `json:"admin_token"`
}

type ProgressResponse struct {
	TastedCount int  `json:"tasted_count"`
	CoffeeCount int  `json:"coffee_count"`
	Reviewed    bool `json:"reviewed"`
}

type SubmitRankingResponse struct {
	Reviews []Review `json:"reviews"`
}

type RecommendationResponse struct {
	Coffee Coffee `json:"coffee"`
}

// ErrorResponse is the JSON shape of every error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Coffee struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	PanelNotes  string   `json:"panel_notes"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUser is the admin listing row: a User plus a humanized timestamp.
type AdminUser struct {
	User
	CreatedAgo string `json:"created_ago"`
}

type Tasting struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CoffeeID   string    `json:"coffee_id"`
	FlavorTags []string  `json:"flavor_tags"`
	Emoji      string    `json:"emoji"`
	Note       string    `json:"note"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Review struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CoffeeID        string    `json:"coffee_id"`
	Rank            int       `json:"rank"`
	WouldDrinkAgain bool      `json:"would_drink_again"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type FlavorTag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Pastry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type PastryFeedback struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	UserName   string    `json:"user_name"`
	Feedback   string    `json:"feedback"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedAgo string    `json:"created_ago,omitempty"`
}

// QuizQuestion is one step of the style quiz.
type QuizQuestion struct {
	Prompt  string       `json:"prompt"`
	Options []QuizOption `json:"options"`
}

type QuizOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Export is the full admin data dump.
type Export struct {
	Coffees  []Coffee  `json:"coffees"`
	Users    []User    `json:"users"`
	Tastings []Tasting `json:"tastings"`
	Reviews  []Review  `json:"reviews"`
}

// EncodeTags serializes a tag list for storage. Tag-set columns are
// JSON-encoded TEXT so the same schema works on postgres and sqlite.
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeTags parses a stored tag list. Malformed or empty input decodes
// to an empty list rather than an error.
func DecodeTags(s string) []string {
	if s == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
