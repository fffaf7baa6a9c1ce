// board_test.go
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

package viewmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntdeck/huntdeck/internal/models"
	"github.com/huntdeck/huntdeck/internal/viewmodel"
)

func TestBoardHasAllColumnsInOrder(t *testing.T) {
	columns := viewmodel.Board(nil)
	require.Len(t, columns, len(models.AllStatuses))
	for i, col := range columns {
		assert.Equal(t, models.AllStatuses[i], col.Status)
		assert.Empty(t, col.Applications)
	}
}

func TestBoardPreservesRelativeOrderWithinColumn(t *testing.T) {
	apps := []models.JobApplication{
		{ID: "a1", Status: models.StatusApplied},
		{ID: "a2", Status: models.StatusOffer},
		{ID: "a3", Status: models.StatusApplied},
		{ID: "a4", Status: models.StatusApplied},
	}
	columns := viewmodel.Board(apps)

	assert.Equal(t, models.StatusApplied, columns[0].Status)
	require.Len(t, columns[0].Applications, 3)
	assert.Equal(t, "a1", columns[0].Applications[0].ID)
	assert.Equal(t, "a3", columns[0].Applications[1].ID)
	assert.Equal(t, "a4", columns[0].Applications[2].ID)

	total := 0
	for _, col := range columns {
		total += len(col.Applications)
	}
	assert.Equal(t, len(apps), total)
}

func TestGroupByKeepsFirstSeenGroupOrder(t *testing.T) {
	type row struct{ key, val string }
	rows := []row{
		{"b", "1"}, {"a", "2"}, {"b", "3"}, {"c", "4"},
	}
	groups := viewmodel.GroupBy(rows, func(r row) string { return r.key })

	require.Len(t, groups, 3)
	assert.Equal(t, "b", groups[0].Key)
	assert.Equal(t, "a", groups[1].Key)
	assert.Equal(t, "c", groups[2].Key)
	assert.Len(t, groups[0].Items, 2)
}
