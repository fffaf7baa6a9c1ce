// contact.go
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

import "time"

// Contact is a person associated with a company (recruiter, hiring
// manager, referral).
type Contact struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	CompanyID string `gorm:"size:36;index;not null" json:"company_id"`
	Name      string `gorm:"size:255;not null" json:"name" validate:"required"`
	Role      string `gorm:"size:255" json:"role,omitempty"`
	Email     string `gorm:"size:255" json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `gorm:"size:64" json:"phone,omitempty"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   uint64    `gorm:"not null;default:1" json:"version"`
}

// ContactPatch is a partial update for a Contact.
type ContactPatch struct {
	Name  *string `json:"name,omitempty"`
	Role  *string `json:"role,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`

	Version uint64 `json:"version"`
}

// Apply merges the patch over c and returns the result.
func (p ContactPatch) Apply(c Contact) Contact {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Role != nil {
		c.Role = *p.Role
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	return c
}

// TableName overrides the table name for Contact.
func (Contact) TableName() string {
	return "contacts"
}
