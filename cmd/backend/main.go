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
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"github.com/huntdeck/huntdeck/internal/backend"
	"github.com/huntdeck/huntdeck/internal/config"
)

func main() {
	zl, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(zl)
	defer func() { _ = zl.Sync() }()
	log := zl.Sugar()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	db, err := backend.Connect(cfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer backend.Close(db)

	if err := backend.AutoMigrate(db); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	app := backend.New(db, cfg, func(app *fiber.App) {
		app.Use(logger.New())

		prometheus := fiberprometheus.New("huntdeck")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	})

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Infow("gracefully shutting down")
		_ = app.Shutdown()
	}()

	log.Infow("starting server", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalw("failed to start server", "error", err)
	}
	log.Infow("server stopped")
}
