// fake.go
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
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

var sentiments = []string{"positive", "neutral", "negative"}

var headlines = []string{
	"Posted three new openings on the same team this week",
	"Engineering blog activity picked up after a quiet quarter",
	"Headcount flat since the last funding round",
	"Recruiter response times trending slower industry-wide",
	"Recent leadership change in the product organization",
}

var tips = []string{
	"Re-read the job posting and mirror its vocabulary in your answers.",
	"Prepare one story each for conflict, failure, and initiative.",
	"Ask the interviewer what shipped last quarter.",
	"Keep salary numbers out of the first conversation.",
}

// FixedDelayProvider is the canned Provider: it sleeps for a fixed
// delay, then returns data derived deterministically from the
// requested id.
type FixedDelayProvider struct {
	Delay time.Duration
}

// MarketSignals implements Provider.
func (p *FixedDelayProvider) MarketSignals(ctx context.Context, companyID string) ([]Signal, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	rng := seeded(companyID)
	n := 2 + rng.Intn(3)
	out := make([]Signal, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Signal{
			CompanyID: companyID,
			Headline:  headlines[rng.Intn(len(headlines))],
			Sentiment: sentiments[rng.Intn(len(sentiments))],
			At:        time.Now().Add(-time.Duration(rng.Intn(72)) * time.Hour),
		})
	}
	return out, nil
}

// Briefing implements Provider.
func (p *FixedDelayProvider) Briefing(ctx context.Context, applicationID string) (Briefing, error) {
	if err := p.wait(ctx); err != nil {
		return Briefing{}, err
	}
	rng := seeded(applicationID)
	points := make([]string, 0, 3)
	for _, i := range rng.Perm(len(tips))[:3] {
		points = append(points, tips[i])
	}
	return Briefing{
		ApplicationID: applicationID,
		Summary:       fmt.Sprintf("Briefing for application %s: review the role requirements and the company's recent signals before the call.", applicationID),
		TalkingPoints: points,
	}, nil
}

// CoachTips implements Provider.
func (p *FixedDelayProvider) CoachTips(ctx context.Context, applicationID string) ([]string, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	rng := seeded(applicationID)
	out := make([]string, 0, 2)
	for _, i := range rng.Perm(len(tips))[:2] {
		out = append(out, tips[i])
	}
	return out, nil
}

func (p *FixedDelayProvider) wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(p.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// seeded derives a stable rng from an id so the fake stays consistent
// across reloads of the same entity.
func seeded(id string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
