// handlers_applications.go
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
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/huntdeck/huntdeck/internal/models"
)

var errVersion = errors.New("E_VERSION")

// ApplicationHandler handles the /api/applications routes.
type ApplicationHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

// List handles GET /api/applications
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	var apps []models.JobApplication
	if err := h.DB.Order("applied_at").Find(&apps).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "listApplications")
	}
	return c.Status(fiber.StatusOK).JSON(apps)
}

// Get handles GET /api/applications/:id
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	var app models.JobApplication
	if err := h.DB.First(&app, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundResponse(c, fmt.Sprintf("Application '%s' not found", c.Params("id")))
		}
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "getApplication")
	}
	return c.Status(fiber.StatusOK).JSON(app)
}

// Create handles POST /api/applications
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var draft models.JobApplication
	if err := c.BodyParser(&draft); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "createApplication")
	}
	if err := h.Validate.Struct(draft); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "createApplication")
	}
	if draft.Status == "" {
		draft.Status = models.StatusApplied
	}
	if !draft.Status.Valid() {
		return errorResponse(c, fmt.Sprintf("unknown status %q", draft.Status), fiber.StatusBadRequest, "createApplication")
	}
	if draft.Priority == "" {
		draft.Priority = models.PriorityMedium
	}

	now := time.Now().UTC()
	draft.ID = uuid.NewString()
	draft.MatchScore = models.ClampScore(draft.MatchScore)
	if draft.AppliedAt.IsZero() {
		draft.AppliedAt = now
	}
	draft.UpdatedAt = now
	draft.Version = 1

	if err := h.DB.Create(&draft).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "createApplication")
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// Update handles PATCH /api/applications/:id with an optimistic
// version check: a stale patch version is rejected with 409.
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch models.ApplicationPatch
	if err := c.BodyParser(&patch); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "updateApplication")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return errorResponse(c, fmt.Sprintf("unknown status %q", *patch.Status), fiber.StatusBadRequest, "updateApplication")
	}

	var updated models.JobApplication
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var app models.JobApplication
		if err := tx.First(&app, "id = ?", id).Error; err != nil {
			return err
		}
		if app.Version != patch.Version {
			return errVersion
		}

		updated = patch.Apply(app)
		updated.Version = app.Version + 1
		updated.UpdatedAt = time.Now().UTC()

		// Guarded write: zero rows affected means a concurrent writer won.
		res := tx.Model(&models.JobApplication{}).
			Where("id = ? AND version = ?", id, patch.Version).
			Select("*").
			Updates(&updated)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errVersion
		}
		return nil
	})
	if err != nil {
		return mutationError(c, err, "updateApplication", id)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// Delete handles DELETE /api/applications/:id
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	res := h.DB.Delete(&models.JobApplication{}, "id = ?", id)
	if res.Error != nil {
		return errorResponse(c, res.Error.Error(), fiber.StatusInternalServerError, "deleteApplication")
	}
	if res.RowsAffected == 0 {
		return notFoundResponse(c, fmt.Sprintf("Application '%s' not found", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// mutationError maps transaction failures onto the response envelope.
func mutationError(c *fiber.Ctx, err error, errorType, id string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFoundResponse(c, fmt.Sprintf("Entity '%s' not found", id))
	case errors.Is(err, errVersion):
		return versionConflictResponse(c)
	default:
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}
