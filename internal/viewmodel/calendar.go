// calendar.go
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

// Package viewmodel derives presentation structures from flat entity
// lists. Everything here is a pure function over its inputs.
package viewmodel

import (
	"time"

	"github.com/huntdeck/huntdeck/internal/models"
)

// CalendarCell is one day of the calendar grid.
type CalendarCell struct {
	Date         time.Time
	InMonth      bool
	IsToday      bool
	Applications []models.JobApplication
}

// CalendarWeek is a row of seven cells, Sunday through Saturday.
type CalendarWeek [7]CalendarCell

// CalendarGrid builds the month view for the given year and month:
// full weeks from the Sunday on or before the 1st to the Saturday on
// or after the last day. Applications are bucketed by calendar day of
// their AppliedAt, compared on UTC day components so the stored
// instant and the grid agree regardless of local zone; anything dated
// outside the grid is silently excluded. now supplies "today"
// (midnight-normalized local comparison).
func CalendarGrid(apps []models.JobApplication, year int, month time.Month, now time.Time) []CalendarWeek {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	var weeks []CalendarWeek
	var week CalendarWeek
	i := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		week[i] = CalendarCell{
			Date:         day,
			InMonth:      day.Month() == month && day.Year() == year,
			IsToday:      day.Equal(today),
			Applications: appliedOn(apps, day),
		}
		i++
		if i == 7 {
			weeks = append(weeks, week)
			week = CalendarWeek{}
			i = 0
		}
	}
	return weeks
}

// appliedOn filters apps to those whose AppliedAt falls on the same
// UTC calendar day as day.
func appliedOn(apps []models.JobApplication, day time.Time) []models.JobApplication {
	y, m, d := day.Year(), day.Month(), day.Day()
	var out []models.JobApplication
	for _, a := range apps {
		ay, am, ad := a.AppliedAt.UTC().Date()
		if ay == y && am == m && ad == d {
			out = append(out, a)
		}
	}
	return out
}
