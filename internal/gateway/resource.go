// resource.go
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

package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/huntdeck/huntdeck/internal/models"
)

// Resource is a REST collection gateway for one entity type T with
// patch type P. The server assigns ids on create.
type Resource[T any, P any] struct {
	c    *Client
	path string
}

// NewResource creates a gateway rooted at path (e.g. "/api/applications").
func NewResource[T any, P any](c *Client, path string) *Resource[T, P] {
	return &Resource[T, P]{c: c, path: path}
}

// List fetches the whole collection.
func (r *Resource[T, P]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one entity by id.
func (r *Resource[T, P]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Create stores a new entity and returns the server copy, which
// carries the assigned id.
func (r *Resource[T, P]) Create(ctx context.Context, draft T) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.path, draft, &out)
	return out, err
}

// Update applies a partial change and returns the updated server copy.
func (r *Resource[T, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPatch, r.path+"/"+url.PathEscape(id), patch, &out)
	return out, err
}

// Delete removes the entity.
func (r *Resource[T, P]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, nil)
}

// Applications is the collection gateway for job applications.
type Applications = Resource[models.JobApplication, models.ApplicationPatch]

// Companies is the collection gateway for companies.
type Companies = Resource[models.Company, models.CompanyPatch]

// Contacts is the collection gateway for contacts.
type Contacts = Resource[models.Contact, models.ContactPatch]

// Documents adds the master-flag operation to the plain document
// collection gateway.
type Documents struct {
	*Resource[models.Document, models.DocumentPatch]
}

// NewApplications creates the applications gateway.
func NewApplications(c *Client) *Applications {
	return NewResource[models.JobApplication, models.ApplicationPatch](c, "/api/applications")
}

// NewCompanies creates the companies gateway.
func NewCompanies(c *Client) *Companies {
	return NewResource[models.Company, models.CompanyPatch](c, "/api/companies")
}

// NewContacts creates the contacts gateway.
func NewContacts(c *Client) *Contacts {
	return NewResource[models.Contact, models.ContactPatch](c, "/api/contacts")
}

// NewDocuments creates the documents gateway.
func NewDocuments(c *Client) *Documents {
	return &Documents{NewResource[models.Document, models.DocumentPatch](c, "/api/documents")}
}

// SetMaster asks the server to flag one document as the master résumé,
// unsetting any other. Returns the full reconciled collection.
func (d *Documents) SetMaster(ctx context.Context, id string) ([]models.Document, error) {
	var out []models.Document
	err := d.Resource.c.do(ctx, http.MethodPost, d.Resource.path+"/"+url.PathEscape(id)+"/master", nil, &out)
	return out, err
}

// Profile fetches and stores the single user profile.
type Profile struct {
	c *Client
}

// NewProfile creates the profile gateway.
func NewProfile(c *Client) *Profile {
	return &Profile{c: c}
}

// Get fetches the profile.
func (p *Profile) Get(ctx context.Context) (models.UserProfile, error) {
	var out models.UserProfile
	err := p.c.do(ctx, http.MethodGet, "/api/profile", nil, &out)
	return out, err
}

// Put replaces the profile.
func (p *Profile) Put(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	var out models.UserProfile
	err := p.c.do(ctx, http.MethodPut, "/api/profile", profile, &out)
	return out, err
}
