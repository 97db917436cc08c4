// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageParams parses limit and offset query parameters with clamped
// defaults.
func pageParams(
	c echo.Context,
) (int, int) {
	limit := defaultPageSize
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	return limit, offset
}

// handleListAnnouncements returns published announcements.
func (s *Server) handleListAnnouncements(
	c echo.Context,
) error {
	limit, offset := pageParams(c)

	items, total, err := s.contentStore.ListAnnouncements(
		c.Request().Context(),
		limit,
		offset,
		true,
	)
	if err != nil {
		s.logger.Error(
			"failed to list announcements",
			slog.String("error", err.Error()),
		)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to list announcements",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalItems": total,
		"items":      items,
	})
}

// handleListEvents returns upcoming events.
func (s *Server) handleListEvents(
	c echo.Context,
) error {
	limit, offset := pageParams(c)

	items, total, err := s.contentStore.ListEvents(
		c.Request().Context(),
		limit,
		offset,
	)
	if err != nil {
		s.logger.Error(
			"failed to list events",
			slog.String("error", err.Error()),
		)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to list events",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalItems": total,
		"items":      items,
	})
}

// handleListTeam returns the full team roster.
func (s *Server) handleListTeam(
	c echo.Context,
) error {
	items, err := s.contentStore.ListTeamMembers(c.Request().Context())
	if err != nil {
		s.logger.Error(
			"failed to list team members",
			slog.String("error", err.Error()),
		)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to list team members",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items": items,
	})
}
