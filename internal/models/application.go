// application.go
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

package models

import (
	"time"

	"gorm.io/datatypes"
)

// JobApplication represents one tracked job application.
type JobApplication struct {
	ID         string   `gorm:"primaryKey;size:36" json:"id"`
	CompanyID  string   `gorm:"size:36;index;not null" json:"company_id"`
	Position   string   `gorm:"size:255;not null" json:"position" validate:"required"`
	Status     Status   `gorm:"size:32;not null;default:'applied'" json:"status"`
	Priority   Priority `gorm:"size:16;not null;default:'medium'" json:"priority"`
	MatchScore int      `json:"match_score"`

	SalaryMin  *int    `json:"salary_min,omitempty"`
	SalaryMax  *int    `json:"salary_max,omitempty"`
	DocumentID *string `gorm:"size:36" json:"document_id,omitempty"`

	Skills   datatypes.JSONSlice[string] `json:"skills,omitempty"`
	Location string                      `gorm:"size:255" json:"location,omitempty"`
	Notes    string                      `gorm:"type:text" json:"notes,omitempty"`

	AppliedAt time.Time `json:"applied_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Version increments on every server-side mutation; stale updates
	// are rejected with a conflict.
	Version uint64 `gorm:"not null;default:1" json:"version"`
}

// ApplicationPatch is a partial update for a JobApplication. Nil fields
// are left untouched. Version carries the client's last known entity
// version for the server's conflict check.
type ApplicationPatch struct {
	CompanyID  *string   `json:"company_id,omitempty"`
	Position   *string   `json:"position,omitempty"`
	Status     *Status   `json:"status,omitempty"`
	Priority   *Priority `json:"priority,omitempty"`
	MatchScore *int      `json:"match_score,omitempty"`
	SalaryMin  *int      `json:"salary_min,omitempty"`
	SalaryMax  *int      `json:"salary_max,omitempty"`
	DocumentID *string   `json:"document_id,omitempty"`
	Skills     *[]string `json:"skills,omitempty"`
	Location   *string   `json:"location,omitempty"`
	Notes      *string   `json:"notes,omitempty"`

	Version uint64 `json:"version"`
}

// Apply merges the patch over a and returns the result.
func (p ApplicationPatch) Apply(a JobApplication) JobApplication {
	if p.CompanyID != nil {
		a.CompanyID = *p.CompanyID
	}
	if p.Position != nil {
		a.Position = *p.Position
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Priority != nil {
		a.Priority = *p.Priority
	}
	if p.MatchScore != nil {
		a.MatchScore = ClampScore(*p.MatchScore)
	}
	if p.SalaryMin != nil {
		a.SalaryMin = p.SalaryMin
	}
	if p.SalaryMax != nil {
		a.SalaryMax = p.SalaryMax
	}
	if p.DocumentID != nil {
		a.DocumentID = p.DocumentID
	}
	if p.Skills != nil {
		a.Skills = datatypes.NewJSONSlice(*p.Skills)
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	return a
}

// ClampScore bounds a match score to 0..100.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TableName overrides the table name for JobApplication.
func (JobApplication) TableName() string {
	return "job_applications"
}
