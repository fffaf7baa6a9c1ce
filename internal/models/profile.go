// profile.go
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

// UserProfile is the minimal user profile persisted alongside the auth
// token on the client and served by the backend.
type UserProfile struct {
	ID       string                      `gorm:"primaryKey;size:36" json:"id"`
	Name     string                      `gorm:"size:255;not null" json:"name" validate:"required"`
	Email    string                      `gorm:"size:255;not null" json:"email" validate:"required,email"`
	Headline string                      `gorm:"size:512" json:"headline,omitempty"`
	Skills   datatypes.JSONSlice[string] `json:"skills,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for UserProfile.
func (UserProfile) TableName() string {
	return "user_profiles"
}
