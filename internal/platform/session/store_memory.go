// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process [Store] used for local development when no
// REDIS_URL is configured, and by tests. Sessions do not survive a restart and
// are not shared between replicas.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns a copy of the stored session, or ErrNotFound once it has expired.
func (store *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if store.now().After(entry.expiresAt) {
		delete(store.entries, id)
		return nil, ErrNotFound
	}

	sess := entry.session
	sess.Flashes = append([]string(nil), entry.session.Flashes...)
	return &sess, nil
}

// Set stores a copy of the session.
func (store *MemoryStore) Set(_ context.Context, sess *Session, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := *sess
	stored.draft = false
	stored.Flashes = append([]string(nil), sess.Flashes...)
	store.entries[sess.ID] = memoryEntry{session: stored, expiresAt: store.now().Add(ttl)}
	return nil
}

// Delete removes the session.
func (store *MemoryStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, id)
	return nil
}

// Ping always succeeds.
func (store *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet evicted.
func (store *MemoryStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.entries)
}
