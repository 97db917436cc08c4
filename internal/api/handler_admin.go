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
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sitegate-io/sitegate/internal/content"
	"github.com/sitegate-io/sitegate/internal/validation"
)

func notFound(
	c echo.Context,
) error {
	return c.JSON(http.StatusNotFound, map[string]string{
		"error": "Not found",
	})
}

func (s *Server) storeError(
	c echo.Context,
	operation string,
	err error,
) error {
	if errors.Is(err, content.ErrNotFound) {
		return notFound(c)
	}

	s.logger.Error(
		operation,
		slog.String("error", err.Error()),
	)

	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": operation,
	})
}

type announcementRequest struct {
	Title     string `json:"title"     validate:"required,max=300"`
	Body      string `json:"body"      validate:"required"`
	Published bool   `json:"published"`
}

func (s *Server) handleAdminListAnnouncements(
	c echo.Context,
) error {
	limit, offset := pageParams(c)

	announcements, total, err := s.contentStore.ListAnnouncements(
		c.Request().Context(), limit, offset, false,
	)
	if err != nil {
		return s.storeError(c, "failed to list announcements", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalItems":    total,
		"announcements": announcements,
	})
}

func (s *Server) handleAdminCreateAnnouncement(
	c echo.Context,
) error {
	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	announcement := &content.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	}

	if err := s.contentStore.CreateAnnouncement(c.Request().Context(), announcement); err != nil {
		return s.storeError(c, "failed to create announcement", err)
	}

	return c.JSON(http.StatusCreated, announcement)
}

func (s *Server) handleAdminUpdateAnnouncement(
	c echo.Context,
) error {
	var req announcementRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	announcement := &content.Announcement{
		ID:        c.Param("id"),
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	}

	if err := s.contentStore.UpdateAnnouncement(c.Request().Context(), announcement); err != nil {
		return s.storeError(c, "failed to update announcement", err)
	}

	return c.JSON(http.StatusOK, announcement)
}

func (s *Server) handleAdminDeleteAnnouncement(
	c echo.Context,
) error {
	if err := s.contentStore.DeleteAnnouncement(c.Request().Context(), c.Param("id")); err != nil {
		return s.storeError(c, "failed to delete announcement", err)
	}

	return c.NoContent(http.StatusNoContent)
}

type eventRequest struct {
	Title       string    `json:"title"       validate:"required,max=300"`
	Description string    `json:"description"`
	Location    string    `json:"location"    validate:"max=300"`
	StartsAt    time.Time `json:"startsAt"    validate:"required"`
	EndsAt      time.Time `json:"endsAt"      validate:"required,gtefield=StartsAt"`
}

func (s *Server) handleAdminListEvents(
	c echo.Context,
) error {
	limit, offset := pageParams(c)

	events, total, err := s.contentStore.ListEvents(c.Request().Context(), limit, offset)
	if err != nil {
		return s.storeError(c, "failed to list events", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalItems": total,
		"events":     events,
	})
}

func (s *Server) handleAdminCreateEvent(
	c echo.Context,
) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	event := &content.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}

	if err := s.contentStore.CreateEvent(c.Request().Context(), event); err != nil {
		return s.storeError(c, "failed to create event", err)
	}

	return c.JSON(http.StatusCreated, event)
}

func (s *Server) handleAdminUpdateEvent(
	c echo.Context,
) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	event := &content.Event{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}

	if err := s.contentStore.UpdateEvent(c.Request().Context(), event); err != nil {
		return s.storeError(c, "failed to update event", err)
	}

	return c.JSON(http.StatusOK, event)
}

func (s *Server) handleAdminDeleteEvent(
	c echo.Context,
) error {
	if err := s.contentStore.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return s.storeError(c, "failed to delete event", err)
	}

	return c.NoContent(http.StatusNoContent)
}

type teamMemberRequest struct {
	Name      string `json:"name"      validate:"required,max=200"`
	Role      string `json:"role"      validate:"max=200"`
	Bio       string `json:"bio"`
	SortOrder int    `json:"sortOrder" validate:"gte=0"`
}

func (s *Server) handleAdminListTeam(
	c echo.Context,
) error {
	members, err := s.contentStore.ListTeamMembers(c.Request().Context())
	if err != nil {
		return s.storeError(c, "failed to list team members", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"members": members,
	})
}

func (s *Server) handleAdminCreateTeamMember(
	c echo.Context,
) error {
	var req teamMemberRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	member := &content.TeamMember{
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		SortOrder: req.SortOrder,
	}

	if err := s.contentStore.CreateTeamMember(c.Request().Context(), member); err != nil {
		return s.storeError(c, "failed to create team member", err)
	}

	return c.JSON(http.StatusCreated, member)
}

func (s *Server) handleAdminUpdateTeamMember(
	c echo.Context,
) error {
	var req teamMemberRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	member := &content.TeamMember{
		ID:        c.Param("id"),
		Name:      req.Name,
		Role:      req.Role,
		Bio:       req.Bio,
		SortOrder: req.SortOrder,
	}

	if err := s.contentStore.UpdateTeamMember(c.Request().Context(), member); err != nil {
		return s.storeError(c, "failed to update team member", err)
	}

	return c.JSON(http.StatusOK, member)
}

func (s *Server) handleAdminDeleteTeamMember(
	c echo.Context,
) error {
	if err := s.contentStore.DeleteTeamMember(c.Request().Context(), c.Param("id")); err != nil {
		return s.storeError(c, "failed to delete team member", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAdminListContact(
	c echo.Context,
) error {
	limit, offset := pageParams(c)

	submissions, total, err := s.contentStore.ListContactSubmissions(
		c.Request().Context(), limit, offset,
	)
	if err != nil {
		return s.storeError(c, "failed to list contact submissions", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalItems":  total,
		"submissions": submissions,
	})
}

func (s *Server) handleAdminGetContact(
	c echo.Context,
) error {
	submission, err := s.contentStore.GetContactSubmission(
		c.Request().Context(), c.Param("id"),
	)
	if err != nil {
		return s.storeError(c, "failed to get contact submission", err)
	}

	return c.JSON(http.StatusOK, submission)
}

func (s *Server) handleAdminDeleteContact(
	c echo.Context,
) error {
	if err := s.contentStore.DeleteContactSubmission(
		c.Request().Context(), c.Param("id"),
	); err != nil {
		return s.storeError(c, "failed to delete contact submission", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAdminListAudit(
	c echo.Context,
) error {
	if s.auditStore == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "audit storage not configured",
		})
	}

	limit, offset := pageParams(c)

	entries, total, err := s.auditStore.List(c.Request().Context(), limit, offset)
	if err != nil {
		return s.storeError(c, "failed to list audit entries", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalItems": total,
		"entries":    entries,
	})
}

func (s *Server) handleAdminGetAudit(
	c echo.Context,
) error {
	if s.auditStore == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "audit storage not configured",
		})
	}

	entry, err := s.auditStore.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.storeError(c, "failed to get audit entry", err)
	}

	if entry == nil {
		return notFound(c)
	}

	return c.JSON(http.StatusOK, entry)
}
