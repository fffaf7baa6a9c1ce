// companies.go
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

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/huntdeck/huntdeck/internal/models"
	"github.com/huntdeck/huntdeck/internal/notify"
)

// CompanyFilters narrows the visible company list.
type CompanyFilters struct {
	Query string
	Tier  *models.Tier
}

// Companies is the optimistic store for target companies.
type Companies struct {
	collection[models.Company]

	gw      Gateway[models.Company, models.CompanyPatch]
	confirm notify.Confirmer

	filterMu sync.Mutex
	filters  CompanyFilters
}

// NewCompanies wires the company store.
func NewCompanies(gw Gateway[models.Company, models.CompanyPatch], notifier notify.Notifier, confirmer notify.Confirmer, onAuth func(), log *zap.SugaredLogger) *Companies {
	return &Companies{
		collection: collection[models.Company]{
			name:     "company",
			idOf:     func(c models.Company) string { return c.ID },
			notifier: notifier,
			onAuth:   onAuth,
			log:      log,
		},
		gw:      gw,
		confirm: confirmer,
	}
}

// LoadAll replaces the collection from the server.
func (s *Companies) LoadAll(ctx context.Context) error {
	return s.loadAll(ctx, s.gw.List)
}

// Create validates the draft and appends the server copy on success.
// The tech stack is de-duplicated before the draft leaves the client.
func (s *Companies) Create(ctx context.Context, draft models.Company) (models.Company, error) {
	if err := validate.Struct(draft); err != nil {
		return models.Company{}, fmt.Errorf("invalid company: %w", err)
	}
	draft.TechStack = datatypes.NewJSONSlice(models.DedupStrings(draft.TechStack))
	return s.create(ctx, func(ctx context.Context) (models.Company, error) {
		return s.gw.Create(ctx, draft)
	})
}

// Update merges the patch optimistically, rolling back on failure.
func (s *Companies) Update(ctx context.Context, id string, patch models.CompanyPatch) error {
	if patch.Name != nil && *patch.Name == "" {
		return fmt.Errorf("invalid company: name must not be empty")
	}
	return s.update(ctx, id, patch.Apply, func(ctx context.Context, prior models.Company) (models.Company, error) {
		patch.Version = prior.Version
		return s.gw.Update(ctx, id, patch)
	})
}

// Delete removes a company after an explicit confirmation.
func (s *Companies) Delete(ctx context.Context, id string) error {
	ok, err := s.confirm.Confirm(ctx, "Delete company",
		"This removes the company; applications referencing it keep a dangling link.",
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
func (s *Companies) SelectActive(ctx context.Context, id string) error {
	return s.selectActive(ctx, id, s.gw.Get)
}

// SetFilters replaces the active filter state.
func (s *Companies) SetFilters(f CompanyFilters) {
	s.filterMu.Lock()
	defer s.filterMu.Unlock()
	s.filters = f
}

// Filtered returns the companies passing every active filter. The
// free-text query matches name and industry.
func (s *Companies) Filtered() []models.Company {
	s.filterMu.Lock()
	f := s.filters
	s.filterMu.Unlock()

	out := make([]models.Company, 0)
	for _, c := range s.Items() {
		if f.Tier != nil && c.Tier != *f.Tier {
			continue
		}
		if f.Query != "" &&
			!containsFold(c.Name, f.Query) &&
			!containsFold(c.Industry, f.Query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ByTier groups the collection into the three tiers, preserving
// relative order within each.
func (s *Companies) ByTier() map[models.Tier][]models.Company {
	out := map[models.Tier][]models.Company{
		models.Tier1: {},
		models.Tier2: {},
		models.Tier3: {},
	}
	for _, c := range s.Items() {
		out[c.Tier] = append(out[c.Tier], c)
	}
	return out
}
