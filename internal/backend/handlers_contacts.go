// handlers_contacts.go
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

// ContactHandler handles the /api/contacts routes.
type ContactHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

// List handles GET /api/contacts, optionally filtered by company_id.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	q := h.DB.Order("name")
	if companyID := c.Query("company_id"); companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}

	var contacts []models.Contact
	if err := q.Find(&contacts).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "listContacts")
	}
	return c.Status(fiber.StatusOK).JSON(contacts)
}

// Get handles GET /api/contacts/:id
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	var contact models.Contact
	if err := h.DB.First(&contact, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundResponse(c, fmt.Sprintf("Contact '%s' not found", c.Params("id")))
		}
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "getContact")
	}
	return c.Status(fiber.StatusOK).JSON(contact)
}

// Create handles POST /api/contacts
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var draft models.Contact
	if err := c.BodyParser(&draft); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "createContact")
	}
	if err := h.Validate.Struct(draft); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "createContact")
	}

	now := time.Now().UTC()
	draft.ID = uuid.NewString()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	draft.Version = 1

	if err := h.DB.Create(&draft).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "createContact")
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// Update handles PATCH /api/contacts/:id with the version check.
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch models.ContactPatch
	if err := c.BodyParser(&patch); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "updateContact")
	}

	var updated models.Contact
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var contact models.Contact
		if err := tx.First(&contact, "id = ?", id).Error; err != nil {
			return err
		}
		if contact.Version != patch.Version {
			return errVersion
		}

		updated = patch.Apply(contact)
		updated.Version = contact.Version + 1
		updated.UpdatedAt = time.Now().UTC()

		res := tx.Model(&models.Contact{}).
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
		return mutationError(c, err, "updateContact", id)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// Delete handles DELETE /api/contacts/:id
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	res := h.DB.Delete(&models.Contact{}, "id = ?", id)
	if res.Error != nil {
		return errorResponse(c, res.Error.Error(), fiber.StatusInternalServerError, "deleteContact")
	}
	if res.RowsAffected == 0 {
		return notFoundResponse(c, fmt.Sprintf("Contact '%s' not found", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
