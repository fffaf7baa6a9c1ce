// handlers_profile.go
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
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/huntdeck/huntdeck/internal/models"
)

// ProfileHandler serves the single user profile record.
type ProfileHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := h.DB.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundResponse(c, "No profile configured")
		}
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "getProfile")
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// Put handles PUT /api/profile, creating the record on first use.
func (h *ProfileHandler) Put(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := c.BodyParser(&profile); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "putProfile")
	}
	if err := h.Validate.Struct(profile); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "putProfile")
	}

	var existing models.UserProfile
	err := h.DB.First(&existing).Error
	switch {
	case err == nil:
		profile.ID = existing.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		if profile.ID == "" {
			profile.ID = uuid.NewString()
		}
	default:
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "putProfile")
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := h.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&profile).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "putProfile")
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}
