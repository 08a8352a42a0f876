// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mumocomics/mumoweb/internal/platform/apperr"
	"github.com/mumocomics/mumoweb/internal/platform/constants"
)

// RedisSessionStore implements [SessionStore] as JSON blobs with a TTL.
//
// Sessions expire on their own; Delete exists for explicit logout. Losing
// Redis only logs the staff out, so no durability beyond the TTL is needed.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore constructs a [RedisSessionStore].
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return constants.RedisPrefixSession + sessionID
}

// Save writes the session record with the given lifetime.
func (store *RedisSessionStore) Save(ctx context.Context, session *Session, timeToLive time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("auth: marshal session: %w", err)
	}

	if err := store.client.Set(ctx, sessionKey(session.ID), payload, timeToLive).Err(); err != nil {
		return fmt.Errorf("auth: save session: %w", err)
	}

	return nil
}

// Find loads a session record. A missing or expired key is a defined absence.
func (store *RedisSessionStore) Find(ctx context.Context, sessionID string) (*Session, error) {
	payload, err := store.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("auth: load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("auth: decode session: %w", err)
	}

	return &session, nil
}

// Delete removes a session record. Deleting an unknown session is a no-op.
func (store *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := store.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("auth: delete session: %w", err)
	}
	return nil
}
