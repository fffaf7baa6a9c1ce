// documents.go
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
	"slices"

	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/models"
	"github.com/huntdeck/huntdeck/internal/notify"
)

// DocumentsGateway adds the master-flag operation to the plain
// collection contract.
type DocumentsGateway interface {
	Gateway[models.Document, models.DocumentPatch]
	SetMaster(ctx context.Context, id string) ([]models.Document, error)
}

// StorageUsage reports document storage against the configured quota.
type StorageUsage struct {
	UsedBytes  int64
	QuotaBytes int64
	Percent    int
}

// Documents is the optimistic store for uploaded documents.
type Documents struct {
	collection[models.Document]

	gw      DocumentsGateway
	confirm notify.Confirmer
	quota   int64
}

// NewDocuments wires the document store.
func NewDocuments(gw DocumentsGateway, notifier notify.Notifier, confirmer notify.Confirmer, onAuth func(), quotaBytes int64, log *zap.SugaredLogger) *Documents {
	return &Documents{
		collection: collection[models.Document]{
			name:     "document",
			idOf:     func(d models.Document) string { return d.ID },
			notifier: notifier,
			onAuth:   onAuth,
			log:      log,
		},
		gw:      gw,
		confirm: confirmer,
		quota:   quotaBytes,
	}
}

// LoadAll replaces the collection from the server.
func (s *Documents) LoadAll(ctx context.Context) error {
	return s.loadAll(ctx, s.gw.List)
}

// Create registers an uploaded document and appends the server copy.
func (s *Documents) Create(ctx context.Context, draft models.Document) (models.Document, error) {
	if err := validate.Struct(draft); err != nil {
		return models.Document{}, fmt.Errorf("invalid document: %w", err)
	}
	return s.create(ctx, func(ctx context.Context) (models.Document, error) {
		return s.gw.Create(ctx, draft)
	})
}

// Rename updates the stored file name optimistically.
func (s *Documents) Rename(ctx context.Context, id, fileName string) error {
	if fileName == "" {
		return fmt.Errorf("invalid document: file name must not be empty")
	}
	patch := models.DocumentPatch{FileName: &fileName}
	return s.update(ctx, id, patch.Apply, func(ctx context.Context, prior models.Document) (models.Document, error) {
		patch.Version = prior.Version
		return s.gw.Update(ctx, id, patch)
	})
}

// SetMaster flags one document as the master résumé with a
// compensating optimistic update: every flag is cleared locally and
// the target set, then the server's reconciled collection replaces the
// optimistic state. Failure restores the snapshot.
func (s *Documents) SetMaster(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.indexLocked(id) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("document %q: %w", id, ErrNotLoaded)
	}
	snapshot := slices.Clone(s.items)
	for i := range s.items {
		s.items[i].IsMaster = s.items[i].ID == id
	}
	s.mu.Unlock()

	reconciled, err := s.gw.SetMaster(ctx, id)

	s.mu.Lock()
	if err != nil {
		s.items = snapshot
	} else {
		s.items = reconciled
	}
	s.mu.Unlock()

	if err != nil {
		s.fail("update", err)
		return err
	}
	return nil
}

// Master returns the current master document, if any.
func (s *Documents) Master() (models.Document, bool) {
	for _, d := range s.Items() {
		if d.IsMaster {
			return d, true
		}
	}
	return models.Document{}, false
}

// Delete removes a document after an explicit confirmation.
func (s *Documents) Delete(ctx context.Context, id string) error {
	ok, err := s.confirm.Confirm(ctx, "Delete document",
		"The file is removed from storage and any application referencing it loses the attachment.",
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

// Usage sums stored bytes against the quota.
func (s *Documents) Usage() StorageUsage {
	var used int64
	for _, d := range s.Items() {
		used += d.SizeBytes
	}
	u := StorageUsage{UsedBytes: used, QuotaBytes: s.quota}
	if s.quota > 0 {
		u.Percent = int(float64(used) / float64(s.quota) * 100)
	}
	return u
}
