// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Brew Haha API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: name claims, progress, admin user management
  - CoffeeHandler: the coffee lineup and its admin CRUD
  - TastingHandler: tasting notes (one per user and coffee)
  - ReviewHandler: final rankings and their admin CRUD
  - QuizHandler: the style quiz and coffee recommendation
  - ResultsHandler: leaderboard, flavor histograms, personal results
  - FlavorTagHandler: the tag vocabulary
  - PastryHandler: pastries and pastry feedback
  - AdminHandler: login and the full data export

Handlers are created via constructor functions that accept *sql.DB and Config:

	userHandler := handlers.NewUserHandler(db, cfg)

# Attendee Flow

Attendees claim a name, record tastings as they go, then submit one
final ranking:

	POST /users                 → ClaimName (409 when the name is taken)
	POST /tastings              → RecordTasting (upsert per user+coffee)
	POST /users/{id}/rankings   → SubmitRanking (replaces any prior set)
	GET  /users/{id}/results    → UserResults

# Admin Operations

Admin routes require the X-Admin-Token header, minted by:

	POST /admin/login → Login (shared password → HMAC session token)

The token is deterministic for a given salt, so restarting the server
does not invalidate admin sessions.
*/
package handlers
