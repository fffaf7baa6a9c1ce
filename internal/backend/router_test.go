// router_test.go
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

package backend_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/huntdeck/huntdeck/internal/backend"
	"github.com/huntdeck/huntdeck/internal/config"
	"github.com/huntdeck/huntdeck/internal/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := backend.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func setupApp(t *testing.T, token string) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:", APIToken: token}
	return backend.New(db, cfg), db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	return resp.StatusCode, data
}

func TestApplicationLifecycle(t *testing.T) {
	app, _ := setupApp(t, "")

	// Create
	status, body := doJSON(t, app, "POST", "/api/applications", "", map[string]any{
		"company_id":  "c1",
		"position":    "Backend Engineer",
		"match_score": 120,
	})
	if status != 201 {
		t.Fatalf("Expected 201, got %d: %s", status, body)
	}
	var created models.JobApplication
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("Failed to decode created application: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected a server-assigned id")
	}
	if created.Status != models.StatusApplied {
		t.Errorf("Expected default status applied, got %s", created.Status)
	}
	if created.MatchScore != 100 {
		t.Errorf("Expected clamped match score 100, got %d", created.MatchScore)
	}
	if created.Version != 1 {
		t.Errorf("Expected version 1, got %d", created.Version)
	}

	// List
	status, body = doJSON(t, app, "GET", "/api/applications", "", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}
	var list []models.JobApplication
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 application, got %d", len(list))
	}

	// Update with the current version succeeds and bumps it
	status, body = doJSON(t, app, "PATCH", "/api/applications/"+created.ID, "", map[string]any{
		"status":  "phone_screen",
		"version": 1,
	})
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}
	var updated models.JobApplication
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("Failed to decode updated application: %v", err)
	}
	if updated.Status != models.StatusPhoneScreen {
		t.Errorf("Expected phone_screen, got %s", updated.Status)
	}
	if updated.Version != 2 {
		t.Errorf("Expected version 2, got %d", updated.Version)
	}

	// Delete
	status, _ = doJSON(t, app, "DELETE", "/api/applications/"+created.ID, "", nil)
	if status != 204 {
		t.Fatalf("Expected 204, got %d", status)
	}
	status, _ = doJSON(t, app, "GET", "/api/applications/"+created.ID, "", nil)
	if status != 404 {
		t.Fatalf("Expected 404 after delete, got %d", status)
	}
}

func TestStaleUpdateReturnsVersionConflict(t *testing.T) {
	app, _ := setupApp(t, "")

	_, body := doJSON(t, app, "POST", "/api/applications", "", map[string]any{
		"company_id": "c1",
		"position":   "SRE",
	})
	var created models.JobApplication
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("Failed to decode created application: %v", err)
	}

	// First writer wins.
	status, _ := doJSON(t, app, "PATCH", "/api/applications/"+created.ID, "", map[string]any{
		"status": "interviewing", "version": 1,
	})
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}

	// Second writer still holds version 1 and must be rejected.
	status, body = doJSON(t, app, "PATCH", "/api/applications/"+created.ID, "", map[string]any{
		"status": "rejected", "version": 1,
	})
	if status != 409 {
		t.Fatalf("Expected 409, got %d: %s", status, body)
	}

	var envelope struct {
		Status       int    `json:"status"`
		Ok           bool   `json:"ok"`
		VersionError bool   `json:"versionError"`
		Type         string `json:"type"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if !envelope.VersionError {
		t.Error("Expected versionError=true in the envelope")
	}
	if envelope.Type != "version" {
		t.Errorf("Expected type=version, got %s", envelope.Type)
	}

	// The first write survived.
	_, body = doJSON(t, app, "GET", "/api/applications/"+created.ID, "", nil)
	var current models.JobApplication
	if err := json.Unmarshal(body, &current); err != nil {
		t.Fatalf("Failed to decode application: %v", err)
	}
	if current.Status != models.StatusInterviewing {
		t.Errorf("Expected interviewing, got %s", current.Status)
	}
}

func TestBearerTokenRequired(t *testing.T) {
	app, _ := setupApp(t, "secret")

	status, body := doJSON(t, app, "GET", "/api/applications", "", nil)
	if status != 401 {
		t.Fatalf("Expected 401 without token, got %d", status)
	}
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("Failed to decode error envelope: %v", err)
	}
	if envelope.Type != "authorization" {
		t.Errorf("Expected type=authorization, got %s", envelope.Type)
	}

	status, _ = doJSON(t, app, "GET", "/api/applications", "wrong", nil)
	if status != 401 {
		t.Fatalf("Expected 401 with wrong token, got %d", status)
	}

	status, _ = doJSON(t, app, "GET", "/api/applications", "secret", nil)
	if status != 200 {
		t.Fatalf("Expected 200 with valid token, got %d", status)
	}
}

func TestCreateApplicationValidation(t *testing.T) {
	app, _ := setupApp(t, "")

	status, _ := doJSON(t, app, "POST", "/api/applications", "", map[string]any{
		"company_id": "c1",
	})
	if status != 400 {
		t.Fatalf("Expected 400 for missing position, got %d", status)
	}

	status, _ = doJSON(t, app, "POST", "/api/applications", "", map[string]any{
		"company_id": "c1", "position": "QA", "status": "daydreaming",
	})
	if status != 400 {
		t.Fatalf("Expected 400 for unknown status, got %d", status)
	}
}

func TestCompanyTotalApplicationsDerived(t *testing.T) {
	app, _ := setupApp(t, "")

	_, body := doJSON(t, app, "POST", "/api/companies", "", map[string]any{
		"name":       "Acme",
		"tech_stack": []string{"go", "postgres", "go"},
	})
	var company models.Company
	if err := json.Unmarshal(body, &company); err != nil {
		t.Fatalf("Failed to decode company: %v", err)
	}
	if len(company.TechStack) != 2 {
		t.Errorf("Expected deduplicated tech stack, got %v", company.TechStack)
	}

	for i := 0; i < 3; i++ {
		status, _ := doJSON(t, app, "POST", "/api/applications", "", map[string]any{
			"company_id": company.ID,
			"position":   fmt.Sprintf("Role %d", i),
		})
		if status != 201 {
			t.Fatalf("Expected 201, got %d", status)
		}
	}

	_, body = doJSON(t, app, "GET", "/api/companies/"+company.ID, "", nil)
	var got models.Company
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("Failed to decode company: %v", err)
	}
	if got.TotalApplications != 3 {
		t.Errorf("Expected 3 total applications, got %d", got.TotalApplications)
	}
}

func TestCompanyTechStackAcceptsSingleString(t *testing.T) {
	app, _ := setupApp(t, "")

	status, body := doJSON(t, app, "POST", "/api/companies", "", map[string]any{
		"name":       "Solo Stack",
		"tech_stack": "go",
	})
	if status != 201 {
		t.Fatalf("Expected 201, got %d: %s", status, body)
	}
	var company models.Company
	if err := json.Unmarshal(body, &company); err != nil {
		t.Fatalf("Failed to decode company: %v", err)
	}
	if len(company.TechStack) != 1 || company.TechStack[0] != "go" {
		t.Errorf("Expected tech stack [go], got %v", company.TechStack)
	}
}

func TestContactsFilterByCompany(t *testing.T) {
	app, _ := setupApp(t, "")

	for _, c := range []map[string]any{
		{"company_id": "c1", "name": "Ada"},
		{"company_id": "c1", "name": "Lin"},
		{"company_id": "c2", "name": "Grace"},
	} {
		status, _ := doJSON(t, app, "POST", "/api/contacts", "", c)
		if status != 201 {
			t.Fatalf("Expected 201, got %d", status)
		}
	}

	_, body := doJSON(t, app, "GET", "/api/contacts?company_id=c1", "", nil)
	var contacts []models.Contact
	if err := json.Unmarshal(body, &contacts); err != nil {
		t.Fatalf("Failed to decode contacts: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("Expected 2 contacts for c1, got %d", len(contacts))
	}
}

func TestDocumentMasterExclusivity(t *testing.T) {
	app, _ := setupApp(t, "")

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		_, body := doJSON(t, app, "POST", "/api/documents", "", map[string]any{
			"file_name":  fmt.Sprintf("resume-v%d.pdf", i+1),
			"size_bytes": 1000,
		})
		var doc models.Document
		if err := json.Unmarshal(body, &doc); err != nil {
			t.Fatalf("Failed to decode document: %v", err)
		}
		if doc.IsMaster {
			t.Error("Fresh upload must not be master")
		}
		ids = append(ids, doc.ID)
	}

	status, body := doJSON(t, app, "POST", "/api/documents/"+ids[1]+"/master", "", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}
	var docs []models.Document
	if err := json.Unmarshal(body, &docs); err != nil {
		t.Fatalf("Failed to decode documents: %v", err)
	}
	assertSingleMaster(t, docs, ids[1])

	// Moving the flag leaves exactly one master.
	status, body = doJSON(t, app, "POST", "/api/documents/"+ids[2]+"/master", "", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}
	if err := json.Unmarshal(body, &docs); err != nil {
		t.Fatalf("Failed to decode documents: %v", err)
	}
	assertSingleMaster(t, docs, ids[2])

	status, _ = doJSON(t, app, "POST", "/api/documents/missing/master", "", nil)
	if status != 404 {
		t.Fatalf("Expected 404 for unknown document, got %d", status)
	}
}

func assertSingleMaster(t *testing.T, docs []models.Document, wantID string) {
	t.Helper()
	masters := 0
	for _, d := range docs {
		if d.IsMaster {
			masters++
			if d.ID != wantID {
				t.Errorf("Expected master %s, got %s", wantID, d.ID)
			}
		}
	}
	if masters != 1 {
		t.Errorf("Expected exactly one master, got %d", masters)
	}
}

func TestProfileUpsert(t *testing.T) {
	app, _ := setupApp(t, "")

	status, _ := doJSON(t, app, "GET", "/api/profile", "", nil)
	if status != 404 {
		t.Fatalf("Expected 404 before any profile exists, got %d", status)
	}

	status, body := doJSON(t, app, "PUT", "/api/profile", "", map[string]any{
		"name": "Sam", "email": "sam@example.com",
	})
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}
	var profile models.UserProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		t.Fatalf("Failed to decode profile: %v", err)
	}
	if profile.ID == "" {
		t.Error("Expected a server-assigned id")
	}

	// A second PUT replaces instead of duplicating.
	status, _ = doJSON(t, app, "PUT", "/api/profile", "", map[string]any{
		"name": "Sam Q", "email": "sam@example.com",
	})
	if status != 200 {
		t.Fatalf("Expected 200, got %d", status)
	}
	_, body = doJSON(t, app, "GET", "/api/profile", "", nil)
	if err := json.Unmarshal(body, &profile); err != nil {
		t.Fatalf("Failed to decode profile: %v", err)
	}
	if profile.Name != "Sam Q" {
		t.Errorf("Expected updated name, got %s", profile.Name)
	}
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	app, _ := setupApp(t, "")

	status, body := doJSON(t, app, "GET", "/nope", "", nil)
	if status != 404 {
		t.Fatalf("Expected 404, got %d", status)
	}
	var envelope struct {
		Status int  `json:"status"`
		Ok     bool `json:"ok"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if envelope.Status != 404 || envelope.Ok {
		t.Errorf("Unexpected envelope: %s", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := setupApp(t, "secret")

	// Health stays outside the authenticated group.
	status, body := doJSON(t, app, "GET", "/health", "", nil)
	if status != 200 {
		t.Fatalf("Expected 200, got %d: %s", status, body)
	}
	var result backend.HealthCheckResult
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to decode health result: %v", err)
	}
	if result.Status != "healthy" {
		t.Errorf("Expected healthy, got %s", result.Status)
	}
}
