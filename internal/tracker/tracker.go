// tracker.go
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

// Package tracker wires the session, gateways, entity stores, and
// intel feed into one client-side application object.
package tracker

import (
	"context"

	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/config"
	"github.com/huntdeck/huntdeck/internal/gateway"
	"github.com/huntdeck/huntdeck/internal/intel"
	"github.com/huntdeck/huntdeck/internal/notify"
	"github.com/huntdeck/huntdeck/internal/session"
	"github.com/huntdeck/huntdeck/internal/store"
)

// Tracker is the composition root for the client side.
type Tracker struct {
	Session *session.Manager

	Applications *store.Applications
	Companies    *store.Companies
	Contacts     *store.Contacts
	Documents    *store.Documents

	Profile *gateway.Profile
	Intel   *intel.Feed

	log *zap.SugaredLogger
}

// New assembles a Tracker against the backend at cfg.APIBaseURL. The
// notifier and confirmer are supplied by the surface hosting the
// tracker.
func New(cfg *config.Config, notifier notify.Notifier, confirmer notify.Confirmer, log *zap.SugaredLogger) (*Tracker, error) {
	sess, err := session.NewManager(cfg.SessionFile, log)
	if err != nil {
		return nil, err
	}
	if cfg.APIToken != "" {
		if err := sess.SetToken(cfg.APIToken); err != nil {
			return nil, err
		}
	}

	client := gateway.NewClient(cfg.APIBaseURL, sess.Token, log)

	onAuth := sess.HandleUnauthorized

	t := &Tracker{
		Session:      sess,
		Applications: store.NewApplications(gateway.NewApplications(client), notifier, confirmer, onAuth, log),
		Companies:    store.NewCompanies(gateway.NewCompanies(client), notifier, confirmer, onAuth, log),
		Contacts:     store.NewContacts(gateway.NewContacts(client), notifier, confirmer, onAuth, log),
		Documents:    store.NewDocuments(gateway.NewDocuments(client), notifier, confirmer, onAuth, cfg.StorageQuotaBytes, log),
		Profile:      gateway.NewProfile(client),
		Intel:        intel.NewFeed(&intel.FixedDelayProvider{Delay: cfg.IntelDelay}, log),
		log:          log,
	}

	sess.OnReset(func() {
		log.Infow("session reset, stores retain last loaded data until next action")
	})

	return t, nil
}

// LoadAll fetches every collection. Failures surface through the store
// notifiers; the first error is returned for callers that want to stop
// early.
func (t *Tracker) LoadAll(ctx context.Context) error {
	var first error
	for _, load := range []func(context.Context) error{
		t.Companies.LoadAll,
		t.Applications.LoadAll,
		t.Contacts.LoadAll,
		t.Documents.LoadAll,
	} {
		if err := load(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close flushes pending debounced writes.
func (t *Tracker) Close() {
	t.Applications.Close()
}
