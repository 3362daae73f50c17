// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin gate: password verification and session
token utilities.

# Password Check

The admin gate is a single shared credential, configured either as a
bcrypt hash (preferred) or a plaintext secret:

	err := auth.CheckAdminPassword(given, cfg.AdminPassword, cfg.AdminPasswordHash)

When a hash is configured it takes precedence; plaintext comparison is
constant time.

# Admin Tokens

A successful login mints an HMAC-SHA256 token over a fixed subject:

	token := auth.GenerateAdminToken(salt)
	err := auth.ValidateAdminToken(token, salt)

The token is URL-safe base64 without padding. Since it's deterministic,
validation needs no database lookup and no server-side session store.
There is one shared admin identity; the token carries no claims and does
not expire. Rotating ADMIN_TOKEN_SALT invalidates all outstanding tokens.
*/
package auth
