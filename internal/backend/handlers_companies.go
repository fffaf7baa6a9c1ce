// handlers_companies.go
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
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/huntdeck/huntdeck/internal/models"
)

// CompanyHandler handles the /api/companies routes.
type CompanyHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

// companyDraft accepts a company payload whose tech stack may arrive
// as a bare string or an array.
type companyDraft struct {
	Name      string                  `json:"name" validate:"required"`
	Website   string                  `json:"website" validate:"omitempty,url"`
	Address   string                  `json:"address"`
	Industry  string                  `json:"industry"`
	TechStack models.FlexList[string] `json:"tech_stack"`
	Tier      models.Tier             `json:"tier"`
}

// List handles GET /api/companies. TotalApplications is derived from
// the applications table on every read.
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var companies []models.Company
	if err := h.DB.Order("name").Find(&companies).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "listCompanies")
	}

	counts, err := h.applicationCounts()
	if err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "listCompanies")
	}
	for i := range companies {
		companies[i].TotalApplications = counts[companies[i].ID]
	}

	return c.Status(fiber.StatusOK).JSON(companies)
}

// Get handles GET /api/companies/:id
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	var company models.Company
	if err := h.DB.First(&company, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundResponse(c, fmt.Sprintf("Company '%s' not found", c.Params("id")))
		}
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "getCompany")
	}

	var count int64
	if err := h.DB.Model(&models.JobApplication{}).Where("company_id = ?", company.ID).Count(&count).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "getCompany")
	}
	company.TotalApplications = int(count)

	return c.Status(fiber.StatusOK).JSON(company)
}

// Create handles POST /api/companies
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var draft companyDraft
	if err := c.BodyParser(&draft); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "createCompany")
	}
	if err := h.Validate.Struct(draft); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "createCompany")
	}
	if draft.Tier == "" {
		draft.Tier = models.Tier3
	}

	now := time.Now().UTC()
	company := models.Company{
		ID:        uuid.NewString(),
		Name:      draft.Name,
		Website:   draft.Website,
		Address:   draft.Address,
		Industry:  draft.Industry,
		TechStack: datatypes.NewJSONSlice(models.DedupStrings(draft.TechStack.Slice())),
		Tier:      draft.Tier,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}

	if err := h.DB.Create(&company).Error; err != nil {
		return errorResponse(c, err.Error(), fiber.StatusInternalServerError, "createCompany")
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

// Update handles PATCH /api/companies/:id with the version check.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch models.CompanyPatch
	if err := c.BodyParser(&patch); err != nil {
		return errorResponse(c, err.Error(), fiber.StatusBadRequest, "updateCompany")
	}
	if patch.Name != nil && *patch.Name == "" {
		return errorResponse(c, "name must not be empty", fiber.StatusBadRequest, "updateCompany")
	}

	var updated models.Company
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.First(&company, "id = ?", id).Error; err != nil {
			return err
		}
		if company.Version != patch.Version {
			return errVersion
		}

		updated = patch.Apply(company)
		updated.Version = company.Version + 1
		updated.UpdatedAt = time.Now().UTC()

		res := tx.Model(&models.Company{}).
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
		return mutationError(c, err, "updateCompany", id)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// Delete handles DELETE /api/companies/:id
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	res := h.DB.Delete(&models.Company{}, "id = ?", id)
	if res.Error != nil {
		return errorResponse(c, res.Error.Error(), fiber.StatusInternalServerError, "deleteCompany")
	}
	if res.RowsAffected == 0 {
		return notFoundResponse(c, fmt.Sprintf("Company '%s' not found", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CompanyHandler) applicationCounts() (map[string]int, error) {
	var rows []struct {
		CompanyID string
		N         int
	}
	err := h.DB.Model(&models.JobApplication{}).
		Select("company_id, count(*) as n").
		Group("company_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.CompanyID] = r.N
	}
	return counts, nil
}
