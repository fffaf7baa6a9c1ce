// recorder.go
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

package notify

import (
	"context"
	"sync"
)

// Recorded is one captured notification.
type Recorded struct {
	Kind    Kind
	Title   string
	Message string
}

// Recorder captures notifications and answers confirmations from a
// scripted queue. Tests use it to assert on store behavior.
type Recorder struct {
	mu       sync.Mutex
	Messages []Recorded
	Answers  []bool
	Prompts  []string
}

// Notify implements Notifier.
func (r *Recorder) Notify(kind Kind, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Recorded{Kind: kind, Title: title, Message: message})
}

// Confirm implements Confirmer. It pops the next scripted answer,
// defaulting to true when the queue is empty.
func (r *Recorder) Confirm(_ context.Context, title, _ string, _ ConfirmOptions) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Prompts = append(r.Prompts, title)
	if len(r.Answers) == 0 {
		return true, nil
	}
	answer := r.Answers[0]
	r.Answers = r.Answers[1:]
	return answer, nil
}

// CountKind returns how many captured notifications have the given kind.
func (r *Recorder) CountKind(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.Messages {
		if m.Kind == kind {
			n++
		}
	}
	return n
}
