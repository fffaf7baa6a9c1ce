// provider.go
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

// Package intel is the pluggable interface for the market-signal,
// briefing and coaching content shown alongside applications. The
// default implementation is an explicit fake with fixed latency and
// deterministic canned data; nothing in it is real analysis, and it
// must never be mistaken for production logic.
package intel

import (
	"context"
	"time"
)

// Signal is one market observation about a company.
type Signal struct {
	CompanyID string    `json:"company_id"`
	Headline  string    `json:"headline"`
	Sentiment string    `json:"sentiment"` // positive, neutral, negative
	At        time.Time `json:"at"`
}

// Briefing is a pre-interview summary for one application.
type Briefing struct {
	ApplicationID string   `json:"application_id"`
	Summary       string   `json:"summary"`
	TalkingPoints []string `json:"talking_points"`
}

// Provider produces intelligence content. Implementations may be
// arbitrarily slow; callers guard against stale results themselves.
type Provider interface {
	MarketSignals(ctx context.Context, companyID string) ([]Signal, error)
	Briefing(ctx context.Context, applicationID string) (Briefing, error)
	CoachTips(ctx context.Context, applicationID string) ([]string, error)
}
