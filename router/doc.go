// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Brew Haha API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Identity and progress (public):

	POST /users               - Claim a display name (409 when taken)
	GET  /users/{id}          - User info
	GET  /users/{id}/progress - Tasted count, coffee total, reviewed flag

Coffees (public reads):

	GET /coffees
	GET /coffees/{id}

Tastings and rankings (public):

	POST /tastings               - Record/replace a tasting note
	GET  /users/{id}/tastings    - The user's tasting notes
	POST /users/{id}/rankings    - Submit the final ranking (replaces)
	GET  /users/{id}/reviews     - The user's reviews in rank order

Quiz and results (public):

	GET  /quiz                 - Style quiz questions
	POST /quiz/recommendation  - Style answer to coffee pick
	GET  /results/leaderboard  - Summaries and medal table
	GET  /results/flavors      - Flavor histogram (?coffee_id= to scope)
	GET  /users/{id}/results   - Personal results page payload

Vocabulary and pastries (public):

	GET  /flavor-tags
	GET  /pastries
	POST /pastry-feedback

Admin (requires X-Admin-Token, minted by POST /admin/login):

	POST /admin/login
	GET  /admin/export
	POST/PUT/DELETE on /coffees, /flavor-tags, /pastries
	GET  /users, DELETE /users/{id}
	GET/PUT/DELETE on /tastings and /reviews
	GET  /pastry-feedback

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(db, cfg)
	coffeeHandler := handlers.NewCoffeeHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
