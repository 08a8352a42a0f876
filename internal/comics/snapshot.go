// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package comics

import (
	"context"
	"net/http"
	"sync"

	"github.com/mumocomics/mumoweb/internal/platform/ctxutil"
)

// # Per-Request Snapshot Cache

// SnapshotStore memoizes one collection load per request.
//
// A single page render fans out into several repository calls (latest issue,
// archive page, adjacency links); without memoization each would hit the
// backing store again and could observe a different collection mid-request.
// The store keys on the request ID so every lookup within one request shares
// the same loaded snapshot, then drops the entry when the request finishes.
//
// Entries not released (background jobs, tests without the middleware) are
// only as expensive as one cached slice, but the HTTP path always pairs
// Acquire with a deferred Release.
type SnapshotStore struct {
	mu      sync.Mutex
	entries map[string]*snapshotEntry
}

// snapshotEntry is one request's memoized load outcome.
type snapshotEntry struct {
	once   sync.Once
	comics []*Comic
	err    error
}

// NewSnapshotStore constructs an empty [SnapshotStore].
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{entries: map[string]*snapshotEntry{}}
}

// Acquire registers the request ID so subsequent loads share a snapshot.
// Acquiring an already-registered ID is a no-op.
func (store *SnapshotStore) Acquire(requestID string) {
	if requestID == "" {
		return
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if _, exists := store.entries[requestID]; !exists {
		store.entries[requestID] = &snapshotEntry{}
	}
}

// Release drops the request's snapshot. Safe to call for unknown IDs.
func (store *SnapshotStore) Release(requestID string) {
	if requestID == "" {
		return
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, requestID)
}

/*
Load returns the snapshot for the request, invoking loader at most once per
acquired request ID.

Description: Concurrent callers for the same request ID block on the same
sync.Once and all observe the identical result — including an identical
error, so a failed load is not retried within the request. An unacquired
(or empty) request ID bypasses memoization entirely and calls the loader
directly.

Parameters:
  - requestID: string (The correlation ID assigned by the HTTP middleware)
  - loader: func() ([]*Comic, error) (The underlying collection load)

Returns:
  - []*Comic: The shared snapshot for this request
  - error: The memoized load failure, if any
*/
func (store *SnapshotStore) Load(requestID string, loader func() ([]*Comic, error)) ([]*Comic, error) {
	if requestID == "" {
		return loader()
	}

	store.mu.Lock()
	entry, exists := store.entries[requestID]
	store.mu.Unlock()

	if !exists {
		return loader()
	}

	entry.once.Do(func() {
		entry.comics, entry.err = loader()
	})

	return entry.comics, entry.err
}

// Middleware scopes a snapshot to each HTTP request's lifetime.
//
// It must sit after the request-ID middleware in the chain so the
// correlation ID is already on the context.
func (store *SnapshotStore) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := ctxutil.GetRequestID(request.Context())

			store.Acquire(requestID)
			defer store.Release(requestID)

			next.ServeHTTP(writer, request)
		})
	}
}

// requestIDFrom extracts the correlation ID for repository calls.
func requestIDFrom(ctx context.Context) string {
	return ctxutil.GetRequestID(ctx)
}
