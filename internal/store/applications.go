// applications.go
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
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/models"
	"github.com/huntdeck/huntdeck/internal/notify"
)

var validate = validator.New()

// ApplicationFilters narrows the visible application list. Active
// filters combine with AND.
type ApplicationFilters struct {
	Query     string
	Status    *models.Status
	CompanyID *string
}

// Metrics summarizes the application pipeline.
type Metrics struct {
	Total    int
	ByStatus map[models.Status]int

	// SuccessRate is the share of applications that reached an offer
	// or acceptance; ResponseRate the share that got any reply at all.
	// Both are whole percentages, 0 for an empty pipeline.
	SuccessRate  int
	ResponseRate int
}

// Applications is the optimistic store for job applications.
type Applications struct {
	collection[models.JobApplication]

	gw      Gateway[models.JobApplication, models.ApplicationPatch]
	confirm notify.Confirmer

	filterMu sync.Mutex
	filters  ApplicationFilters

	Notes *NotesWriter
}

// NewApplications wires the application store.
func NewApplications(gw Gateway[models.JobApplication, models.ApplicationPatch], notifier notify.Notifier, confirmer notify.Confirmer, onAuth func(), log *zap.SugaredLogger) *Applications {
	s := &Applications{
		collection: collection[models.JobApplication]{
			name:     "application",
			idOf:     func(a models.JobApplication) string { return a.ID },
			notifier: notifier,
			onAuth:   onAuth,
			log:      log,
		},
		gw:      gw,
		confirm: confirmer,
	}
	s.Notes = NewNotesWriter(time.Second, func(ctx context.Context, id, notes string) error {
		return s.Update(ctx, id, models.ApplicationPatch{Notes: &notes})
	}, log)
	return s
}

// LoadAll replaces the collection from the server.
func (s *Applications) LoadAll(ctx context.Context) error {
	return s.loadAll(ctx, s.gw.List)
}

// Create validates the draft, stores it remotely, and appends the
// server copy. Validation failures never reach the network.
func (s *Applications) Create(ctx context.Context, draft models.JobApplication) (models.JobApplication, error) {
	if err := validate.Struct(draft); err != nil {
		return models.JobApplication{}, fmt.Errorf("invalid application: %w", err)
	}
	if draft.Status == "" {
		draft.Status = models.StatusApplied
	}
	if !draft.Status.Valid() {
		return models.JobApplication{}, fmt.Errorf("invalid application: unknown status %q", draft.Status)
	}
	draft.MatchScore = models.ClampScore(draft.MatchScore)
	return s.create(ctx, func(ctx context.Context) (models.JobApplication, error) {
		return s.gw.Create(ctx, draft)
	})
}

// Update merges the patch optimistically and reconciles with the
// server, rolling back on failure.
func (s *Applications) Update(ctx context.Context, id string, patch models.ApplicationPatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("invalid application: unknown status %q", *patch.Status)
	}
	return s.update(ctx, id, patch.Apply, func(ctx context.Context, prior models.JobApplication) (models.JobApplication, error) {
		patch.Version = prior.Version
		return s.gw.Update(ctx, id, patch)
	})
}

// MoveStatus re-homes an application to a new board column; any status
// may follow any other.
func (s *Applications) MoveStatus(ctx context.Context, id string, status models.Status) error {
	return s.Update(ctx, id, models.ApplicationPatch{Status: &status})
}

// Delete removes an application after an explicit confirmation. A
// declined confirm leaves the collection untouched and performs no
// network call.
func (s *Applications) Delete(ctx context.Context, id string) error {
	ok, err := s.confirm.Confirm(ctx, "Delete application",
		"This permanently removes the application and its history.",
		notify.ConfirmOptions{ConfirmText: "Delete", CancelText: "Keep", Danger: true})
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return s.remove(ctx, id, func(ctx context.Context) error {
		return s.gw.Delete(ctx, id)
	})
}

// SelectActive marks id as the active detail entity and refreshes it.
func (s *Applications) SelectActive(ctx context.Context, id string) error {
	return s.selectActive(ctx, id, s.gw.Get)
}

// SetFilters replaces the active filter state.
func (s *Applications) SetFilters(f ApplicationFilters) {
	s.filterMu.Lock()
	defer s.filterMu.Unlock()
	s.filters = f
}

// Filters returns the active filter state.
func (s *Applications) Filters() ApplicationFilters {
	s.filterMu.Lock()
	defer s.filterMu.Unlock()
	return s.filters
}

// Filtered returns the applications passing every active filter. The
// free-text query matches position, location and notes.
func (s *Applications) Filtered() []models.JobApplication {
	f := s.Filters()
	out := make([]models.JobApplication, 0)
	for _, a := range s.Items() {
		if f.Status != nil && a.Status != *f.Status {
			continue
		}
		if f.CompanyID != nil && a.CompanyID != *f.CompanyID {
			continue
		}
		if f.Query != "" &&
			!containsFold(a.Position, f.Query) &&
			!containsFold(a.Location, f.Query) &&
			!containsFold(a.Notes, f.Query) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Metrics derives the pipeline summary from the full collection.
func (s *Applications) Metrics() Metrics {
	return ComputeMetrics(s.Items())
}

// ComputeMetrics partitions the list by status. The per-status counts
// always sum to Total.
func ComputeMetrics(items []models.JobApplication) Metrics {
	m := Metrics{
		Total:    len(items),
		ByStatus: make(map[models.Status]int, len(models.AllStatuses)),
	}
	for _, st := range models.AllStatuses {
		m.ByStatus[st] = 0
	}

	responded := 0
	succeeded := 0
	for _, a := range items {
		m.ByStatus[a.Status]++
		switch a.Status {
		case models.StatusApplied, models.StatusGhosted:
			// no reply yet
		default:
			responded++
		}
		if a.Status == models.StatusOffer || a.Status == models.StatusAccepted {
			succeeded++
		}
	}

	m.SuccessRate = percent(succeeded, m.Total)
	m.ResponseRate = percent(responded, m.Total)
	return m
}

// Close flushes any pending debounced writes.
func (s *Applications) Close() {
	s.Notes.Close()
}
