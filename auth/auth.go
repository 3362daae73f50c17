// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidAdminToken = errors.New("invalid admin token")
	ErrWrongPassword     = errors.New("wrong password")
)

// adminTokenSubject is the fixed message signed into admin session tokens.
// There is one shared admin identity, so the token carries no claims.
const adminTokenSubject = "brew-haha-admin"

// CheckAdminPassword verifies the shared admin password. When a bcrypt
// hash is configured it takes precedence; otherwise the plaintext secret
// is compared in constant time.
func CheckAdminPassword(given, plaintext, bcryptHash string) error {
	if bcryptHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(bcryptHash), []byte(given)); err != nil {
			return ErrWrongPassword
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(given), []byte(plaintext)) != 1 {
		return ErrWrongPassword
	}
	return nil
}

// GenerateAdminToken creates an HMAC-based admin session token.
// This is deterministic and verifiable without server-side session state.
func GenerateAdminToken(salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(adminTokenSubject))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminToken checks if the provided admin token is valid
func ValidateAdminToken(token, salt string) error {
	expected := GenerateAdminToken(salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidAdminToken
	}
	return nil
}
