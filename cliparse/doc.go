// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via joho/godotenv),
then CLI flags, then process environment variables.

# Config Fields

  - Port: Server listen port (default: 4117)
  - DatabaseURL: Connection string (required)
  - DatabaseType: "postgres" (default) or "sqlite"
  - AdminPassword / AdminPasswordHash: shared admin credential, plaintext
    or bcrypt hash (one of the two required)
  - AdminTokenSalt: Secret for admin session token HMAC (required)

# CLI Flags

	-p                   Server port
	-d                   Database URL
	-t                   Database type
	-admin-password      Admin password
	-admin-password-hash Bcrypt hash of admin password
	-token-salt          Admin token salt

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	ADMIN_PASSWORD      → -admin-password
	ADMIN_PASSWORD_HASH → -admin-password-hash
	ADMIN_TOKEN_SALT    → -token-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be postgres or sqlite
  - ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be provided
  - ADMIN_TOKEN_SALT must be provided
*/
package cliparse
