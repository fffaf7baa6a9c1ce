// companies_test.go
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

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/models"
	"github.com/huntdeck/huntdeck/internal/notify"
	"github.com/huntdeck/huntdeck/internal/store"
)

type fakeCompanyGateway struct {
	t *testing.T

	listFn   func(ctx context.Context) ([]models.Company, error)
	createFn func(ctx context.Context, draft models.Company) (models.Company, error)
	updateFn func(ctx context.Context, id string, patch models.CompanyPatch) (models.Company, error)

	calls int
}

func (g *fakeCompanyGateway) List(ctx context.Context) ([]models.Company, error) {
	g.calls++
	if g.listFn == nil {
		g.t.Fatal("unexpected List call")
	}
	return g.listFn(ctx)
}

func (g *fakeCompanyGateway) Get(context.Context, string) (models.Company, error) {
	g.t.Fatal("unexpected Get call")
	return models.Company{}, nil
}

func (g *fakeCompanyGateway) Create(ctx context.Context, draft models.Company) (models.Company, error) {
	g.calls++
	if g.createFn == nil {
		g.t.Fatal("unexpected Create call")
	}
	return g.createFn(ctx, draft)
}

func (g *fakeCompanyGateway) Update(ctx context.Context, id string, patch models.CompanyPatch) (models.Company, error) {
	g.calls++
	if g.updateFn == nil {
		g.t.Fatal("unexpected Update call")
	}
	return g.updateFn(ctx, id, patch)
}

func (g *fakeCompanyGateway) Delete(context.Context, string) error {
	g.t.Fatal("unexpected Delete call")
	return nil
}

func loadCompanyStore(t *testing.T, gw *fakeCompanyGateway, rec *notify.Recorder, items []models.Company) *store.Companies {
	t.Helper()
	gw.listFn = func(context.Context) ([]models.Company, error) { return items, nil }
	s := store.NewCompanies(gw, rec, rec, nil, zap.NewNop().Sugar())
	require.NoError(t, s.LoadAll(context.Background()))
	gw.listFn = nil
	gw.calls = 0
	return s
}

func TestCompanyCreateDedupsTechStack(t *testing.T) {
	gw := &fakeCompanyGateway{t: t}
	rec := &notify.Recorder{}
	s := loadCompanyStore(t, gw, rec, nil)

	gw.createFn = func(_ context.Context, draft models.Company) (models.Company, error) {
		assert.Equal(t, []string{"go", "postgres"}, []string(draft.TechStack))
		draft.ID = "c1"
		draft.Version = 1
		return draft, nil
	}

	created, err := s.Create(context.Background(), models.Company{
		Name:      "Acme",
		TechStack: []string{"go", "postgres", "go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", created.ID)
}

func TestCompanyCreateRequiresName(t *testing.T) {
	gw := &fakeCompanyGateway{t: t}
	rec := &notify.Recorder{}
	s := loadCompanyStore(t, gw, rec, nil)

	_, err := s.Create(context.Background(), models.Company{Industry: "fintech"})
	require.Error(t, err)
	assert.Zero(t, gw.calls)
}

func TestCompanyUpdateRejectsEmptyName(t *testing.T) {
	gw := &fakeCompanyGateway{t: t}
	rec := &notify.Recorder{}
	s := loadCompanyStore(t, gw, rec, []models.Company{{ID: "c1", Name: "Acme"}})

	empty := ""
	err := s.Update(context.Background(), "c1", models.CompanyPatch{Name: &empty})
	require.Error(t, err)
	assert.Zero(t, gw.calls)
	assert.Equal(t, "Acme", s.Items()[0].Name)
}

func TestCompanyFilteredByTierAndQuery(t *testing.T) {
	gw := &fakeCompanyGateway{t: t}
	rec := &notify.Recorder{}
	s := loadCompanyStore(t, gw, rec, []models.Company{
		{ID: "c1", Name: "Acme Fintech", Industry: "payments", Tier: models.Tier1},
		{ID: "c2", Name: "Beta Labs", Industry: "fintech", Tier: models.Tier1},
		{ID: "c3", Name: "Gamma Fintech", Industry: "payments", Tier: models.Tier3},
	})

	tier1 := models.Tier1
	s.SetFilters(store.CompanyFilters{Query: "fintech", Tier: &tier1})

	got := s.Filtered()
	require.Len(t, got, 2, "query matches name or industry")
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c2", got[1].ID)
}

func TestCompanyByTier(t *testing.T) {
	gw := &fakeCompanyGateway{t: t}
	rec := &notify.Recorder{}
	s := loadCompanyStore(t, gw, rec, []models.Company{
		{ID: "c1", Tier: models.Tier2},
		{ID: "c2", Tier: models.Tier1},
		{ID: "c3", Tier: models.Tier2},
	})

	byTier := s.ByTier()
	assert.Len(t, byTier[models.Tier1], 1)
	assert.Len(t, byTier[models.Tier2], 2)
	assert.Empty(t, byTier[models.Tier3])
	assert.Equal(t, "c1", byTier[models.Tier2][0].ID)
}
