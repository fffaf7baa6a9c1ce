// contacts.go
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

	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/models"
	"github.com/huntdeck/huntdeck/internal/notify"
)

// Contacts is the optimistic store for company contacts.
type Contacts struct {
	collection[models.Contact]

	gw      Gateway[models.Contact, models.ContactPatch]
	confirm notify.Confirmer
}

// NewContacts wires the contact store.
func NewContacts(gw Gateway[models.Contact, models.ContactPatch], notifier notify.Notifier, confirmer notify.Confirmer, onAuth func(), log *zap.SugaredLogger) *Contacts {
	return &Contacts{
		collection: collection[models.Contact]{
			name:     "contact",
			idOf:     func(c models.Contact) string { return c.ID },
			notifier: notifier,
			onAuth:   onAuth,
			log:      log,
		},
		gw:      gw,
		confirm: confirmer,
	}
}

// LoadAll replaces the collection from the server.
func (s *Contacts) LoadAll(ctx context.Context) error {
	return s.loadAll(ctx, s.gw.List)
}

// Create validates the draft and appends the server copy on success.
func (s *Contacts) Create(ctx context.Context, draft models.Contact) (models.Contact, error) {
	if err := validate.Struct(draft); err != nil {
		return models.Contact{}, fmt.Errorf("invalid contact: %w", err)
	}
	return s.create(ctx, func(ctx context.Context) (models.Contact, error) {
		return s.gw.Create(ctx, draft)
	})
}

// Update merges the patch optimistically, rolling back on failure.
func (s *Contacts) Update(ctx context.Context, id string, patch models.ContactPatch) error {
	return s.update(ctx, id, patch.Apply, func(ctx context.Context, prior models.Contact) (models.Contact, error) {
		patch.Version = prior.Version
		return s.gw.Update(ctx, id, patch)
	})
}

// Delete removes a contact after an explicit confirmation.
func (s *Contacts) Delete(ctx context.Context, id string) error {
	ok, err := s.confirm.Confirm(ctx, "Delete contact", "The contact is removed permanently.",
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

// ByCompany returns the contacts for one company, preserving order.
func (s *Contacts) ByCompany(companyID string) []models.Contact {
	out := make([]models.Contact, 0)
	for _, c := range s.Items() {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out
}
