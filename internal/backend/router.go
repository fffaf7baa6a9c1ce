// router.go
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

package backend

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/huntdeck/huntdeck/internal/config"
)

// New builds the Fiber app with all routes registered. The caller owns
// the database handle and its lifecycle. Setup hooks run before any
// route so middleware they install covers the whole app.
func New(db *gorm.DB, cfg *config.Config, setup ...func(*fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(compress.New())
	for _, fn := range setup {
		fn(app)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		result := HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	validate := validator.New()

	applications := &ApplicationHandler{DB: db, Validate: validate}
	companies := &CompanyHandler{DB: db, Validate: validate}
	contacts := &ContactHandler{DB: db, Validate: validate}
	documents := &DocumentHandler{DB: db, Validate: validate}
	profile := &ProfileHandler{DB: db, Validate: validate}

	api := app.Group("/api", RequireAuth(cfg.APIToken))

	api.Get("/applications", applications.List)
	api.Get("/applications/:id", applications.Get)
	api.Post("/applications", applications.Create)
	api.Patch("/applications/:id", applications.Update)
	api.Delete("/applications/:id", applications.Delete)

	api.Get("/companies", companies.List)
	api.Get("/companies/:id", companies.Get)
	api.Post("/companies", companies.Create)
	api.Patch("/companies/:id", companies.Update)
	api.Delete("/companies/:id", companies.Delete)

	api.Get("/contacts", contacts.List)
	api.Get("/contacts/:id", contacts.Get)
	api.Post("/contacts", contacts.Create)
	api.Patch("/contacts/:id", contacts.Update)
	api.Delete("/contacts/:id", contacts.Delete)

	api.Get("/documents", documents.List)
	api.Get("/documents/:id", documents.Get)
	api.Post("/documents", documents.Create)
	api.Patch("/documents/:id", documents.Update)
	api.Post("/documents/:id/master", documents.SetMaster)
	api.Delete("/documents/:id", documents.Delete)

	api.Get("/profile", profile.Get)
	api.Put("/profile", profile.Put)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	return app
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	versionError := false
	if code == fiber.StatusConflict || (len(message) >= 9 && message[:9] == "E_VERSION") {
		versionError = true
		errorType = "version"
		code = fiber.StatusConflict
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       code,
		"message":      message,
		"ok":           false,
		"versionError": versionError,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"url":          c.OriginalURL(),
		"type":         errorType,
	})
}
