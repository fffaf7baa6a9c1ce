// handlers_documents.go
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

// DocumentHandler handles the /api/documents routes.
type DocumentHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

// List handles GET /api/documents
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var docs []models.Document
	if err := h.DB.Order("uploaded_at").Find(&docs).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "listDocuments")
	}
	return c.Status(fiber.StatusOK).JSON(docs)
}

// Get handles GET /api/documents/:id
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	var doc models.Document
	if err := h.DB.First(&doc, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundResponse(c, fmt.Sprintf("Document '%s' not found", c.Params("id")))
		}
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "getDocument")
	}
	return c.Status(fiber.StatusOK).JSON(doc)
}

// Create handles POST /api/documents. Only metadata is registered
// here; file content lives in whatever blob storage the deployment
// uses.
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var draft models.Document
	if err := c.BodyParser(&draft); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "createDocument")
	}
	if err := h.Validate.Struct(draft); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "createDocument")
	}

	draft.ID = uuid.NewString()
	if draft.UploadedAt.IsZero() {
		draft.UploadedAt = time.Now().UTC()
	}
	// A fresh upload never starts as master; the flag moves only
	// through the master route so exclusivity has one owner.
	draft.IsMaster = false
	draft.Version = 1

	if err := h.DB.Create(&draft).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "createDocument")
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// Update handles PATCH /api/documents/:id with the version check. The
// master flag is not updatable here; use the master route.
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch models.DocumentPatch
	if err := c.BodyParser(&patch); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "updateDocument")
	}
	patch.IsMaster = nil

	var updated models.Document
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		if err := tx.First(&doc, "id = ?", id).Error; err != nil {
			return err
		}
		if doc.Version != patch.Version {
			return errVersion
		}

		updated = patch.Apply(doc)
		updated.Version = doc.Version + 1

		res := tx.Model(&models.Document{}).
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
		return mutationError(c, err, "updateDocument", id)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// SetMaster handles POST /api/documents/:id/master: clears the master
// flag everywhere, sets it on the target, and returns the full
// collection so clients can reconcile in one step.
func (h *DocumentHandler) SetMaster(c *fiber.Ctx) error {
	id := c.Params("id")

	var docs []models.Document
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var target models.Document
		if err := tx.First(&target, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Document{}).
			Where("is_master = ? AND id <> ?", true, id).
			Updates(map[string]any{"is_master": false, "version": gorm.Expr("version + 1")}).Error; err != nil {
			return err
		}

		if !target.IsMaster {
			if err := tx.Model(&models.Document{}).
				Where("id = ?", id).
				Updates(map[string]any{"is_master": true, "version": gorm.Expr("version + 1")}).Error; err != nil {
				return err
			}
		}

		return tx.Order("uploaded_at").Find(&docs).Error
	})
	if err != nil {
		return mutationError(c, err, "setMasterDocument", id)
	}
	return c.Status(fiber.StatusOK).JSON(docs)
}

// Delete handles DELETE /api/documents/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	res := h.DB.Delete(&models.Document{}, "id = ?", id)
	if res.Error != nil {
		return errorResponse(c, res.Error.Error(), fiber.StatusInternalServerError, "deleteDocument")
	}
	if res.RowsAffected == 0 {
		return notFoundResponse(c, fmt.Sprintf("Document '%s' not found", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
