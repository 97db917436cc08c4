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

	"github.com/labstack/echo/v4"

	"github.com/sitegate-io/sitegate/internal/audit"
	"github.com/sitegate-io/sitegate/internal/content"
	"github.com/sitegate-io/sitegate/internal/honeypot"
	"github.com/sitegate-io/sitegate/internal/netid"
	"github.com/sitegate-io/sitegate/internal/origin"
	"github.com/sitegate-io/sitegate/internal/validation"
)

type contactRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"max=300"`
	Message string `json:"message" validate:"required,max=5000"`
	// Website is the honeypot field; humans never fill it.
	Website        string `json:"website"`
	TurnstileToken string `json:"turnstileToken"`
}

type joinRequest struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Country string `json:"country" validate:"required,max=100"`
	Message string `json:"message" validate:"max=5000"`
	// Website is the honeypot field; humans never fill it.
	Website        string `json:"website"`
	TurnstileToken string `json:"turnstileToken"`
}

// fakeSuccess is the response a triggered honeypot receives. It is
// indistinguishable from the real success response.
func fakeSuccess(
	c echo.Context,
) error {
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// validationError surfaces field detail only outside production.
func (s *Server) validationError(
	c echo.Context,
	detail string,
) error {
	body := map[string]string{"error": "Invalid request"}
	if s.appConfig.Debug {
		body["message"] = detail
	}

	return c.JSON(http.StatusBadRequest, body)
}

// guardForm runs the origin, honeypot, and CAPTCHA checks shared by the
// public form endpoints. It returns (handled, err) where handled means a
// response was already written.
func (s *Server) guardForm(
	c echo.Context,
	honeypotValue string,
	captchaToken string,
	alertType audit.AlertType,
) (bool, error) {
	policy := origin.AllowMissing
	if s.appConfig.API.Server.Security.RequireOrigin {
		policy = origin.RequireHeader
	}

	if !s.origin.Allow(
		c.Request().Header.Get("Origin"),
		c.Request().Header.Get("Referer"),
		policy,
	) {
		return true, c.JSON(http.StatusForbidden, map[string]string{
			"error": "Forbidden",
		})
	}

	ip := netid.ResolveClientIP(c.Request().Header)

	if !honeypot.Clean(honeypotValue) {
		if s.auditLogger != nil {
			s.auditLogger.Alert(c.Request().Context(), audit.Alert{
				Type:      alertType,
				Severity:  audit.SeverityHigh,
				SourceIP:  ip,
				Path:      c.Request().URL.Path,
				UserAgent: c.Request().UserAgent(),
				Details:   "honeypot field was filled",
			})
		}

		return true, fakeSuccess(c)
	}

	if !s.captcha.Verify(c.Request().Context(), captchaToken, ip) {
		return true, c.JSON(http.StatusBadRequest, map[string]string{
			"error":   "captcha_failed",
			"message": "CAPTCHA verification failed. Please try again.",
		})
	}

	return false, nil
}

// handleContact accepts a contact form submission.
func (s *Server) handleContact(
	c echo.Context,
) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	handled, err := s.guardForm(c, req.Website, req.TurnstileToken, audit.AlertHoneypot)
	if handled {
		return err
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	submission := &content.ContactSubmission{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		SourceIP: netid.ResolveClientIP(c.Request().Header),
	}

	if err := s.contentStore.CreateContactSubmission(c.Request().Context(), submission); err != nil {
		s.logger.Error(
			"failed to store contact submission",
			slog.String("error", err.Error()),
		)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to store submission",
		})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// handleJoinInternational accepts an international membership request.
// It shares the contact guards but sits in a stricter rate limit category.
func (s *Server) handleJoinInternational(
	c echo.Context,
) error {
	var req joinRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	handled, err := s.guardForm(c, req.Website, req.TurnstileToken, audit.AlertHoneypot)
	if handled {
		return err
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	submission := &content.ContactSubmission{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  "International membership: " + req.Country,
		Message:  req.Message,
		SourceIP: netid.ResolveClientIP(c.Request().Header),
	}

	if err := s.contentStore.CreateContactSubmission(c.Request().Context(), submission); err != nil {
		s.logger.Error(
			"failed to store join request",
			slog.String("error", err.Error()),
		)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to store submission",
		})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
