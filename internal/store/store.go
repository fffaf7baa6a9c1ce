// store.go
//
// huntdeck - job application tracking service and client
// Copyright (c) 2026 the huntdeck authors
//
// This file is part of huntdeck.
// huntdeck is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// huntdeck is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.

// Package store holds the in-memory entity collections and their
// optimistic mutation flow: apply locally first, then reconcile with
// the server, rolling back to a snapshot when the call fails. The UI
// always sees mutations immediately; the server remains the source of
// truth.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/gateway"
	"github.com/huntdeck/huntdeck/internal/notify"
)

// Gateway is the remote collection contract a store mutates through.
type Gateway[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, patch P) (T, error)
	Delete(ctx context.Context, id string) error
}

// ErrNotLoaded is returned by mutations that reference an id absent
// from the in-memory collection.
var ErrNotLoaded = errors.New("entity not in store")

// collection is the shared state core embedded by every concrete
// store. The browser original kept this on a single UI thread; here a
// mutex guards items, and every mutating action runs its optimistic
// apply before touching the network so concurrent readers observe the
// change while the request is in flight.
type collection[T any] struct {
	mu         sync.Mutex
	items      []T
	loading    bool
	err        error
	selectedID string

	name     string
	idOf     func(T) string
	notifier notify.Notifier
	onAuth   func()
	log      *zap.SugaredLogger
}

// Items returns a copy of the current collection. Callers must route
// every mutation through store actions; the copy keeps the store's
// slice out of reach.
func (c *collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Loading reports whether a LoadAll is in flight.
func (c *collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last load error, nil after a successful load.
func (c *collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// SelectedID returns the active detail selection, empty when none.
func (c *collection[T]) SelectedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// ClearActive drops the detail selection, e.g. when navigating away
// from a detail view.
func (c *collection[T]) ClearActive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = ""
}

func (c *collection[T]) indexLocked(id string) int {
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			return i
		}
	}
	return -1
}

// loadAll replaces the collection wholesale on success. On failure the
// stale items stay put: old data beats a blank screen, and the caller
// may retry. The loading flag is cleared on every exit path.
func (c *collection[T]) loadAll(ctx context.Context, list func(context.Context) ([]T, error)) error {
	c.mu.Lock()
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	items, err := list(ctx)

	c.mu.Lock()
	c.loading = false
	if err == nil {
		c.items = items
	} else {
		c.err = err
	}
	c.mu.Unlock()

	if err != nil {
		c.fail("load", err)
		return err
	}
	return nil
}

// create has no optimistic path: the id is server-assigned, so the
// entity joins the collection only once the server returns it.
func (c *collection[T]) create(ctx context.Context, do func(context.Context) (T, error)) (T, error) {
	created, err := do(ctx)
	if err != nil {
		c.fail("create", err)
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.items = append(c.items, created)
	c.mu.Unlock()
	return created, nil
}

// update applies merge to the matching entity immediately, then runs
// the network call. Success reconciles the server copy by id; failure
// restores the pre-mutation snapshot verbatim and reports once.
func (c *collection[T]) update(ctx context.Context, id string, merge func(T) T, do func(context.Context, T) (T, error)) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%s %q: %w", c.name, id, ErrNotLoaded)
	}
	snapshot := slices.Clone(c.items)
	prior := c.items[idx]
	c.items[idx] = merge(prior)
	c.mu.Unlock()

	updated, err := do(ctx, prior)

	c.mu.Lock()
	if err != nil {
		c.items = snapshot
	} else if j := c.indexLocked(id); j >= 0 {
		c.items[j] = updated
	}
	c.mu.Unlock()

	if err != nil {
		c.fail("update", err)
		return err
	}
	return nil
}

// remove drops the entity optimistically; failure restores both the
// items snapshot and the detail selection.
func (c *collection[T]) remove(ctx context.Context, id string, do func(context.Context) error) error {
	c.mu.Lock()
	idx := c.indexLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%s %q: %w", c.name, id, ErrNotLoaded)
	}
	snapshot := slices.Clone(c.items)
	selected := c.selectedID
	c.items = slices.Delete(c.items, idx, idx+1)
	if c.selectedID == id {
		c.selectedID = ""
	}
	c.mu.Unlock()

	err := do(ctx)
	if err != nil {
		c.mu.Lock()
		c.items = snapshot
		c.selectedID = selected
		c.mu.Unlock()
		c.fail("delete", err)
		return err
	}
	return nil
}

// selectActive points the detail view at id and refetches that one
// entity to reconcile staleness, merging the fresh copy in by id.
func (c *collection[T]) selectActive(ctx context.Context, id string, get func(context.Context, string) (T, error)) error {
	c.mu.Lock()
	c.selectedID = id
	c.mu.Unlock()

	fresh, err := get(ctx, id)
	if err != nil {
		// Selection stands; the stale copy stays visible.
		c.log.Debugw("detail refetch failed", "entity", c.name, "id", id, "error", err)
		return err
	}

	c.mu.Lock()
	if idx := c.indexLocked(id); idx >= 0 {
		c.items[idx] = fresh
	} else {
		c.items = append(c.items, fresh)
	}
	c.mu.Unlock()
	return nil
}

// fail reports one mutation failure. Unauthorized is the one class
// that escapes the store into a process-wide session reset; conflicts
// surface with their own kind so the UI can suggest a refresh.
func (c *collection[T]) fail(action string, err error) {
	switch {
	case errors.Is(err, gateway.ErrUnauthorized):
		c.log.Warnw("session expired", "entity", c.name, "action", action)
		if c.onAuth != nil {
			c.onAuth()
		}
	case errors.Is(err, gateway.ErrConflict):
		c.notifier.Notify(notify.KindConflict, c.name,
			fmt.Sprintf("Someone else changed this %s. Refresh and try again.", c.name))
	default:
		c.notifier.Notify(notify.KindError, c.name,
			fmt.Sprintf("Failed to %s %s. Please try again.", action, c.name))
	}
	c.log.Warnw("action failed", "entity", c.name, "action", action, "error", err)
}

// percent computes round(100*num/den) with a zero denominator yielding
// 0 instead of a division artifact.
func percent(num, den int) int {
	if den < 1 {
		den = 1
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}

// containsFold reports whether s contains substr case-insensitively.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
