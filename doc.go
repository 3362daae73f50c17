// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Brew Haha API server.

Brew Haha backs a coffee-tasting event: attendees claim a display name,
take a style quiz, record tasting notes per coffee, submit one final
ranking, and browse aggregate results (medal leaderboard, flavor
histograms, personal vs crowd favorites).

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... ADMIN_PASSWORD=... ADMIN_TOKEN_SALT=... go run main.go

Or with flags:

	go run main.go -p 4117 -d "postgres://..." -admin-password secret -token-salt salt

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string (or a sqlite file path)
  - ADMIN_PASSWORD (-admin-password) or ADMIN_PASSWORD_HASH
    (-admin-password-hash): the shared admin password, plaintext or
    bcrypt hash; the hash takes precedence when both are set
  - ADMIN_TOKEN_SALT (-token-salt): secret for the admin session token HMAC

Optional settings:

  - PORT (-p): server port (default: 4117)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, coffees, tastings, reviews,
    quiz, results, flavor tags, pastries, admin)
  - aggregate: pure results computations (medals, histograms, favorites)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and row types
  - auth: admin password check and session token HMAC
  - db: driver selection, schema creation, retry helper
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
