// feed_test.go
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

package intel_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/intel"
)

// blockingProvider serves one request per release of its gate channel,
// letting tests interleave slow and fast responses.
type blockingProvider struct {
	mu   sync.Mutex
	gate map[string]chan struct{}
}

func newBlockingProvider() *blockingProvider {
	return &blockingProvider{gate: make(map[string]chan struct{})}
}

func (p *blockingProvider) hold(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gate[id] = make(chan struct{})
}

func (p *blockingProvider) release(id string) {
	p.mu.Lock()
	ch := p.gate[id]
	delete(p.gate, id)
	p.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}

func (p *blockingProvider) wait(id string) {
	p.mu.Lock()
	ch := p.gate[id]
	p.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

func (p *blockingProvider) MarketSignals(_ context.Context, companyID string) ([]intel.Signal, error) {
	p.wait(companyID)
	return []intel.Signal{{CompanyID: companyID, Headline: "hiring"}}, nil
}

func (p *blockingProvider) Briefing(_ context.Context, applicationID string) (intel.Briefing, error) {
	p.wait(applicationID)
	return intel.Briefing{ApplicationID: applicationID, Summary: "ready"}, nil
}

func (p *blockingProvider) CoachTips(context.Context, string) ([]string, error) {
	return []string{"breathe"}, nil
}

func TestFeedDiscardsSupersededResponse(t *testing.T) {
	provider := newBlockingProvider()
	feed := intel.NewFeed(provider, zap.NewNop().Sugar())

	provider.hold("slow-co")
	done := make(chan error, 1)
	go func() { done <- feed.LoadSignals(context.Background(), "slow-co") }()

	// The second request supersedes the first while it is blocked.
	require.Eventually(t, feed.Loading, time.Second, time.Millisecond)
	require.NoError(t, feed.LoadSignals(context.Background(), "fast-co"))
	require.Equal(t, "fast-co", feed.Signals()[0].CompanyID)

	provider.release("slow-co")
	require.NoError(t, <-done)

	signals := feed.Signals()
	require.Len(t, signals, 1)
	assert.Equal(t, "fast-co", signals[0].CompanyID, "late response must not overwrite the newer one")
	assert.False(t, feed.Loading())
}

func TestFeedKeepsSignalsAcrossBriefingLoad(t *testing.T) {
	provider := newBlockingProvider()
	feed := intel.NewFeed(provider, zap.NewNop().Sugar())

	provider.hold("slow-co")
	done := make(chan error, 1)
	go func() { done <- feed.LoadSignals(context.Background(), "slow-co") }()
	require.Eventually(t, feed.Loading, time.Second, time.Millisecond)

	// A briefing load is a different flow and must not supersede the
	// signals request still in flight.
	require.NoError(t, feed.LoadBriefing(context.Background(), "app-1"))

	provider.release("slow-co")
	require.NoError(t, <-done)

	signals := feed.Signals()
	require.Len(t, signals, 1)
	assert.Equal(t, "slow-co", signals[0].CompanyID, "signals response was never superseded within its own flow")

	b := feed.Briefing()
	require.NotNil(t, b)
	assert.Equal(t, "app-1", b.ApplicationID)
	assert.False(t, feed.Loading())
}

func TestFeedLatestRequestWins(t *testing.T) {
	provider := newBlockingProvider()
	feed := intel.NewFeed(provider, zap.NewNop().Sugar())

	require.NoError(t, feed.LoadBriefing(context.Background(), "app-1"))
	require.NoError(t, feed.LoadBriefing(context.Background(), "app-2"))

	b := feed.Briefing()
	require.NotNil(t, b)
	assert.Equal(t, "app-2", b.ApplicationID)
}

func TestFeedLoadTips(t *testing.T) {
	provider := newBlockingProvider()
	feed := intel.NewFeed(provider, zap.NewNop().Sugar())

	require.NoError(t, feed.LoadTips(context.Background(), "app-1"))
	assert.Equal(t, []string{"breathe"}, feed.Tips())
}

func TestFixedDelayProviderIsDeterministicPerID(t *testing.T) {
	p := &intel.FixedDelayProvider{}

	a, err := p.MarketSignals(context.Background(), "acme")
	require.NoError(t, err)
	b, err := p.MarketSignals(context.Background(), "acme")
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Headline, b[i].Headline)
		assert.Equal(t, a[i].Sentiment, b[i].Sentiment)
	}
}

func TestFixedDelayProviderHonorsContext(t *testing.T) {
	p := &intel.FixedDelayProvider{Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.MarketSignals(ctx, "acme")
	require.ErrorIs(t, err, context.Canceled)
}

func TestFixedDelayProviderBriefingShape(t *testing.T) {
	p := &intel.FixedDelayProvider{}

	b, err := p.Briefing(context.Background(), "app-42")
	require.NoError(t, err)
	assert.Equal(t, "app-42", b.ApplicationID)
	assert.NotEmpty(t, b.Summary)
	assert.Len(t, b.TalkingPoints, 3)
}
