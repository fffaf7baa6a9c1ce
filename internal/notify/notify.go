// notify.go
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

// Package notify defines the notification and confirmation boundary
// between the stores and whatever surface presents messages to the
// user.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess  Kind = "success"
	KindError    Kind = "error"
	KindWarning  Kind = "warning"
	KindInfo     Kind = "info"
	KindConflict Kind = "conflict"
)

// Notifier receives one-way notifications from the stores.
type Notifier interface {
	Notify(kind Kind, title, message string)
}

// ConfirmOptions customizes a confirmation prompt.
type ConfirmOptions struct {
	ConfirmText string
	CancelText  string
	Danger      bool
}

// Confirmer gates destructive actions behind an explicit yes/no.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string, opts ConfirmOptions) (bool, error)
}

// Logger is a Notifier that writes notifications to a zap logger.
type Logger struct {
	Log *zap.SugaredLogger
}

// Notify implements Notifier.
func (l *Logger) Notify(kind Kind, title, message string) {
	switch kind {
	case KindError, KindConflict:
		l.Log.Errorw(message, "kind", kind, "title", title)
	case KindWarning:
		l.Log.Warnw(message, "kind", kind, "title", title)
	default:
		l.Log.Infow(message, "kind", kind, "title", title)
	}
}

// AutoConfirm is a Confirmer that always answers the same way. The CLI
// uses it; interactive surfaces supply their own dialog-backed
// implementation.
type AutoConfirm bool

// Confirm implements Confirmer.
func (a AutoConfirm) Confirm(_ context.Context, _, _ string, _ ConfirmOptions) (bool, error) {
	return bool(a), nil
}
