// auth.go
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
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token on every /api request. An
// empty configured token disables the check for local development.
func RequireAuth(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return errorResponse(c, "Invalid or missing bearer token", fiber.StatusUnauthorized, "authorization")
		}

		return c.Next()
	}
}
