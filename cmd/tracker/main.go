// main.go
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

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/config"
	"github.com/huntdeck/huntdeck/internal/models"
	"github.com/huntdeck/huntdeck/internal/notify"
	"github.com/huntdeck/huntdeck/internal/store"
	"github.com/huntdeck/huntdeck/internal/tracker"
	"github.com/huntdeck/huntdeck/internal/viewmodel"
)

func main() {
	apiURL := pflag.String("api-url", "", "backend base URL (overrides API_BASE_URL)")
	month := pflag.String("month", "", "calendar month to render, YYYY-MM (default current)")
	query := pflag.String("query", "", "filter applications by text")
	status := pflag.String("status", "", "filter applications by status")
	yes := pflag.Bool("yes", false, "answer destructive prompts with yes")
	verbose := pflag.BoolP("verbose", "v", false, "debug logging")
	pflag.Parse()

	zl, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(zl)
	defer func() { _ = zl.Sync() }()
	log := zl.Sugar()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}

	t, err := tracker.New(cfg, &notify.Logger{Log: log}, notify.AutoConfirm(*yes), log)
	if err != nil {
		log.Fatalw("failed to assemble tracker", "error", err)
	}
	defer t.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := t.LoadAll(ctx); err != nil {
		log.Fatalw("failed to load data", "error", err)
	}

	filters := store.ApplicationFilters{Query: *query}
	if *status != "" {
		st := models.Status(*status)
		if !st.Valid() {
			log.Fatalw("unknown status", "status", *status)
		}
		filters.Status = &st
	}
	t.Applications.SetFilters(filters)

	printMetrics(t.Applications.Metrics())
	printBoard(viewmodel.Board(t.Applications.Filtered()))
	printCalendar(t.Applications.Items(), *month, log)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func printMetrics(m store.Metrics) {
	fmt.Printf("Applications: %d  success %d%%  response %d%%\n\n", m.Total, m.SuccessRate, m.ResponseRate)
}

func printBoard(columns []viewmodel.BoardColumn) {
	for _, col := range columns {
		fmt.Printf("%-16s %d\n", col.Status, len(col.Applications))
		for _, a := range col.Applications {
			fmt.Printf("  %s @ %s\n", a.Position, a.CompanyID)
		}
	}
	fmt.Println()
}

func printCalendar(apps []models.JobApplication, month string, log *zap.SugaredLogger) {
	now := time.Now()
	year, mon := now.Year(), now.Month()
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			log.Fatalw("invalid month", "month", month, "error", err)
		}
		year, mon = parsed.Year(), parsed.Month()
	}

	fmt.Printf("%s %d\n", mon, year)
	fmt.Println("Sun  Mon  Tue  Wed  Thu  Fri  Sat")
	for _, week := range viewmodel.CalendarGrid(apps, year, mon, now) {
		var row strings.Builder
		for _, cell := range week {
			mark := " "
			if n := len(cell.Applications); n > 0 {
				mark = fmt.Sprintf("*%d", n)
			}
			if !cell.InMonth {
				row.WriteString(" .   ")
				continue
			}
			row.WriteString(fmt.Sprintf("%2d%-3s", cell.Date.Day(), mark))
		}
		fmt.Println(row.String())
	}
}
