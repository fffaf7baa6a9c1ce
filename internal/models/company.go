// company.go
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

// Company represents a target company.
type Company struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `gorm:"size:255;not null;uniqueIndex" json:"name" validate:"required"`
	Website  string `gorm:"size:512" json:"website,omitempty" validate:"omitempty,url"`
	Address  string `gorm:"size:512" json:"address,omitempty"`
	Industry string `gorm:"size:255" json:"industry,omitempty"`

	// TechStack holds distinct technology names; duplicates are removed
	// before anything is sent to the server.
	TechStack datatypes.JSONSlice[string] `json:"tech_stack,omitempty"`

	Tier Tier `gorm:"size:16;not null;default:'tier3'" json:"tier"`

	// TotalApplications is derived by the server from the applications
	// referencing this company; never written by clients.
	TotalApplications int `gorm:"-" json:"total_applications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   uint64    `gorm:"not null;default:1" json:"version"`
}

// CompanyPatch is a partial update for a Company.
type CompanyPatch struct {
	Name      *string   `json:"name,omitempty"`
	Website   *string   `json:"website,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Industry  *string   `json:"industry,omitempty"`
	TechStack *[]string `json:"tech_stack,omitempty"`
	Tier      *Tier     `json:"tier,omitempty"`

	Version uint64 `json:"version"`
}

// Apply merges the patch over c and returns the result.
func (p CompanyPatch) Apply(c Company) Company {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Website != nil {
		c.Website = *p.Website
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Industry != nil {
		c.Industry = *p.Industry
	}
	if p.TechStack != nil {
		c.TechStack = datatypes.NewJSONSlice(DedupStrings(*p.TechStack))
	}
	if p.Tier != nil {
		c.Tier = *p.Tier
	}
	return c
}

// DedupStrings removes duplicates preserving first-seen order.
func DedupStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// TableName overrides the table name for Company.
func (Company) TableName() string {
	return "companies"
}
