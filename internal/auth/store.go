// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package auth

import (
	"context"
	"time"
)

// # Persistence Boundaries

// UserStore is the persistence boundary for staff accounts.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

// SessionStore is the persistence boundary for revocable session records.
type SessionStore interface {
	Save(ctx context.Context, session *Session, timeToLive time.Duration) error
	Find(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
