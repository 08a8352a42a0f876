// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

/*
Package auth implements account identity for the publishing panel.

It is deliberately small: the site itself is public, so accounts exist only
for the studio staff who publish and edit comics. The package covers
credential verification, access-token issuance, and Redis-backed session
records that let the studio revoke access server-side.

Architecture:

  - Store: Persistence boundary (users in Postgres, sessions in Redis).
  - Service: Credential checks, token generation, session lifecycle.
  - Handler: The /auth HTTP surface (login, logout, me).
*/
package auth

import (
	"time"

	"github.com/mumocomics/mumoweb/internal/platform/sec"
)

// User is a staff account with publishing-panel access.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session is one active login, recorded server-side so it can be revoked.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// Field identifiers used in validation errors.
const (
	FieldUsername = "username"
	FieldPassword = "password"
)
