// integration_test.go
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
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/huntdeck/huntdeck/internal/backend"
	"github.com/huntdeck/huntdeck/internal/config"
	"github.com/huntdeck/huntdeck/internal/models"
)

// TestWithMariaDB exercises the backend against a real MariaDB
// container instead of the in-memory SQLite used by the unit tests.
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mariadb:11",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "mariadb",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// The log line fires before the server accepts TCP connections.
	time.Sleep(5 * time.Second)

	db, err := backend.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer backend.Close(db)

	if err := backend.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Run("GuardedVersionUpdate", func(t *testing.T) {
		testGuardedVersionUpdate(t, db)
	})
	t.Run("JSONColumnsRoundTrip", func(t *testing.T) {
		testJSONColumnsRoundTrip(t, db)
	})
}

func testGuardedVersionUpdate(t *testing.T, db *gorm.DB) {
	app := models.JobApplication{
		ID: "it-app-1", CompanyID: "it-co-1", Position: "Backend Engineer",
		Status: models.StatusApplied, Priority: models.PriorityMedium,
		AppliedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(), Version: 1,
	}
	if err := db.Create(&app).Error; err != nil {
		t.Fatalf("Failed to create application: %v", err)
	}

	// A write guarded by the current version succeeds.
	res := db.Model(&models.JobApplication{}).
		Where("id = ? AND version = ?", app.ID, uint64(1)).
		Updates(map[string]any{"status": models.StatusOffer, "version": 2})
	if res.Error != nil {
		t.Fatalf("Guarded update failed: %v", res.Error)
	}
	if res.RowsAffected != 1 {
		t.Fatalf("Expected 1 row affected, got %d", res.RowsAffected)
	}

	// The same guard with a stale version touches nothing.
	res = db.Model(&models.JobApplication{}).
		Where("id = ? AND version = ?", app.ID, uint64(1)).
		Updates(map[string]any{"status": models.StatusRejected, "version": 2})
	if res.Error != nil {
		t.Fatalf("Stale update errored: %v", res.Error)
	}
	if res.RowsAffected != 0 {
		t.Fatalf("Expected 0 rows affected for stale version, got %d", res.RowsAffected)
	}

	var current models.JobApplication
	if err := db.First(&current, "id = ?", app.ID).Error; err != nil {
		t.Fatalf("Failed to reload application: %v", err)
	}
	if current.Status != models.StatusOffer {
		t.Errorf("Expected offer, got %s", current.Status)
	}
	if current.Version != 2 {
		t.Errorf("Expected version 2, got %d", current.Version)
	}
}

func testJSONColumnsRoundTrip(t *testing.T, db *gorm.DB) {
	company := models.Company{
		ID: "it-co-json", Name: "JSON Roundtrip Co", Tier: models.Tier2,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(), Version: 1,
	}
	company.TechStack = append(company.TechStack, "go", "mariadb", "docker")
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("Failed to create company: %v", err)
	}

	var got models.Company
	if err := db.First(&got, "id = ?", company.ID).Error; err != nil {
		t.Fatalf("Failed to reload company: %v", err)
	}
	if len(got.TechStack) != 3 || got.TechStack[1] != "mariadb" {
		t.Errorf("Tech stack did not round-trip: %v", got.TechStack)
	}
}
