// board.go
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

package viewmodel

import (
	"github.com/huntdeck/huntdeck/internal/models"
)

// BoardColumn is one fixed status column of the pipeline board.
type BoardColumn struct {
	Status       models.Status
	Applications []models.JobApplication
}

// Board partitions applications into the eight fixed status columns,
// preserving relative order within each column. Moving a card is a
// status change on the application itself; the board never restricts
// which column an item may move to.
func Board(apps []models.JobApplication) []BoardColumn {
	byStatus := make(map[models.Status][]models.JobApplication, len(models.AllStatuses))
	for _, a := range apps {
		byStatus[a.Status] = append(byStatus[a.Status], a)
	}

	columns := make([]BoardColumn, 0, len(models.AllStatuses))
	for _, st := range models.AllStatuses {
		columns = append(columns, BoardColumn{Status: st, Applications: byStatus[st]})
	}
	return columns
}
