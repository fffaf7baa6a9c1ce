// session.go
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

// Package session persists the auth token and minimal user profile,
// the only durable client-side state. Entity data is never cached to
// disk; it is refetched from the server on every start.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/models"
)

// State is the persisted session payload.
type State struct {
	Token   string             `json:"token"`
	Profile models.UserProfile `json:"profile"`
}

// Manager owns the session state and its file. A zero token means
// logged out.
type Manager struct {
	mu      sync.Mutex
	path    string
	state   State
	onReset func()
	log     *zap.SugaredLogger
}

// NewManager loads any existing session from path. A missing file is a
// clean logged-out state, not an error.
func NewManager(path string, log *zap.SugaredLogger) (*Manager, error) {
	m := &Manager{path: path, log: log}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &m.state); err != nil {
		// A corrupt session file is discarded rather than blocking start.
		log.Warnw("discarding unreadable session file", "path", path, "error", err)
		m.state = State{}
	}
	return m, nil
}

// Token returns the current auth token, empty when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Token
}

// Profile returns the persisted profile.
func (m *Manager) Profile() models.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Profile
}

// SetToken stores a new auth token and persists the session.
func (m *Manager) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Token = token
	return m.persistLocked()
}

// SetProfile stores the profile and persists the session.
func (m *Manager) SetProfile(profile models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Profile = profile
	return m.persistLocked()
}

// OnReset registers the hook invoked after an unauthorized reset,
// typically a redirect to login.
func (m *Manager) OnReset(hook func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReset = hook
}

// Clear wipes the session state and its file.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked()
}

// HandleUnauthorized is the process-wide reaction to a 401: clear auth
// state, then run the registered hook. Safe to call from any store.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	if err := m.clearLocked(); err != nil {
		m.log.Warnw("session clear failed", "error", err)
	}
	hook := m.onReset
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (m *Manager) clearLocked() error {
	m.state = State{}
	err := os.Remove(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (m *Manager) persistLocked() error {
	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(m.path, bytes.NewReader(data))
}
