// debounce.go
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

package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// NotesWriter debounces free-text persistence: every Set resets the
// quiet-period timer, and only the latest value for an entity is sent
// once the timer fires. Flush and Close push pending values out
// immediately so navigation never drops a keystroke.
type NotesWriter struct {
	mu      sync.Mutex
	delay   time.Duration
	save    func(ctx context.Context, id, value string) error
	pending map[string]*pendingNote
	log     *zap.SugaredLogger
}

type pendingNote struct {
	value string
	timer *time.Timer
}

// NewNotesWriter creates a writer with the given quiet period.
func NewNotesWriter(delay time.Duration, save func(ctx context.Context, id, value string) error, log *zap.SugaredLogger) *NotesWriter {
	return &NotesWriter{
		delay:   delay,
		save:    save,
		pending: make(map[string]*pendingNote),
		log:     log,
	}
}

// Set records a new value for id and restarts its quiet-period timer.
func (w *NotesWriter) Set(id, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, ok := w.pending[id]; ok {
		p.value = value
		p.timer.Reset(w.delay)
		return
	}
	p := &pendingNote{value: value}
	p.timer = time.AfterFunc(w.delay, func() { w.flushOne(id) })
	w.pending[id] = p
}

// Flush sends every pending value immediately.
func (w *NotesWriter) Flush() {
	w.mu.Lock()
	ids := make([]string, 0, len(w.pending))
	for id, p := range w.pending {
		p.timer.Stop()
		ids = append(ids, id)
	}
	w.mu.Unlock()

	for _, id := range ids {
		w.flushOne(id)
	}
}

// Close flushes and is safe to call more than once.
func (w *NotesWriter) Close() {
	w.Flush()
}

func (w *NotesWriter) flushOne(id string) {
	w.mu.Lock()
	p, ok := w.pending[id]
	if !ok {
		w.mu.Unlock()
		return
	}
	delete(w.pending, id)
	value := p.value
	w.mu.Unlock()

	if err := w.save(context.Background(), id, value); err != nil {
		w.log.Warnw("debounced save failed", "id", id, "error", err)
	}
}
