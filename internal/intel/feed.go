// feed.go
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

package intel

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// flow tracks the in-flight request for one content kind. Each load
// bumps the generation and captures it, and the response is applied
// only if the captured value still matches when the provider returns.
// A superseded request completes but its result is discarded, so a
// slow earlier load can never overwrite a newer one.
type flow struct {
	gen     uint64
	loading bool
}

// Feed holds the currently displayed intelligence content. Signals,
// briefing, and tips each carry their own generation counter, so a
// load in one flow never supersedes an in-flight load in another.
type Feed struct {
	mu       sync.Mutex
	signalsF flow
	briefF   flow
	tipsF    flow
	signals  []Signal
	briefing *Briefing
	tips     []string

	provider Provider
	log      *zap.SugaredLogger
}

// NewFeed creates a Feed over the given provider.
func NewFeed(provider Provider, log *zap.SugaredLogger) *Feed {
	return &Feed{provider: provider, log: log}
}

// Signals returns the last applied market signals.
func (f *Feed) Signals() []Signal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Signal(nil), f.signals...)
}

// Briefing returns the last applied briefing, nil when none.
func (f *Feed) Briefing() *Briefing {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.briefing == nil {
		return nil
	}
	b := *f.briefing
	return &b
}

// Loading reports whether any request is still in flight.
func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signalsF.loading || f.briefF.loading || f.tipsF.loading
}

// LoadSignals fetches market signals for a company. Responses
// superseded by a newer signals load are dropped silently.
func (f *Feed) LoadSignals(ctx context.Context, companyID string) error {
	token := f.begin(&f.signalsF)

	signals, err := f.provider.MarketSignals(ctx, companyID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if token != f.signalsF.gen {
		f.log.Debugw("discarding superseded signal response", "company", companyID)
		return nil
	}
	f.signalsF.loading = false
	if err != nil {
		return err
	}
	f.signals = signals
	return nil
}

// LoadBriefing fetches the briefing for an application. Responses
// superseded by a newer briefing load are dropped silently.
func (f *Feed) LoadBriefing(ctx context.Context, applicationID string) error {
	token := f.begin(&f.briefF)

	briefing, err := f.provider.Briefing(ctx, applicationID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if token != f.briefF.gen {
		f.log.Debugw("discarding superseded briefing response", "application", applicationID)
		return nil
	}
	f.briefF.loading = false
	if err != nil {
		return err
	}
	f.briefing = &briefing
	return nil
}

// Tips returns the last applied coaching tips.
func (f *Feed) Tips() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tips...)
}

// LoadTips fetches coaching tips for an application. Responses
// superseded by a newer tips load are dropped silently.
func (f *Feed) LoadTips(ctx context.Context, applicationID string) error {
	token := f.begin(&f.tipsF)

	tips, err := f.provider.CoachTips(ctx, applicationID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if token != f.tipsF.gen {
		f.log.Debugw("discarding superseded tips response", "application", applicationID)
		return nil
	}
	f.tipsF.loading = false
	if err != nil {
		return err
	}
	f.tips = tips
	return nil
}

func (f *Feed) begin(fl *flow) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	fl.gen++
	fl.loading = true
	return fl.gen
}
