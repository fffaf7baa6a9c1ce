// document.go
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

// Document represents an uploaded résumé or cover letter.
type Document struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	FileName    string    `gorm:"size:512;not null" json:"file_name" validate:"required"`
	SizeBytes   int64     `gorm:"not null" json:"size_bytes"`
	ContentType string    `gorm:"size:255" json:"content_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`

	// IsMaster marks the user's primary résumé. At most one document
	// may carry the flag; the document store and the backend both
	// enforce the exclusivity.
	IsMaster bool `gorm:"not null;default:false" json:"is_master"`

	Version uint64 `gorm:"not null;default:1" json:"version"`
}

// DocumentPatch is a partial update for a Document.
type DocumentPatch struct {
	FileName *string `json:"file_name,omitempty"`
	IsMaster *bool   `json:"is_master,omitempty"`

	Version uint64 `json:"version"`
}

// Apply merges the patch over d and returns the result.
func (p DocumentPatch) Apply(d Document) Document {
	if p.FileName != nil {
		d.FileName = *p.FileName
	}
	if p.IsMaster != nil {
		d.IsMaster = *p.IsMaster
	}
	return d
}

// TableName overrides the table name for Document.
func (Document) TableName() string {
	return "documents"
}
