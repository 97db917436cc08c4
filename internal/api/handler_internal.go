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
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitegate-io/sitegate/internal/audit"
	"github.com/sitegate-io/sitegate/internal/netid"
	"github.com/sitegate-io/sitegate/internal/validation"
)

type securityLogRequest struct {
	Type      string            `json:"type"      validate:"required,max=100"`
	Severity  string            `json:"severity"  validate:"required,oneof=low medium high critical"`
	SourceIP  string            `json:"ipAddress" validate:"required,max=100"`
	Details   string            `json:"details"   validate:"required,max=5000"`
	Path      string            `json:"path"      validate:"max=500"`
	UserAgent string            `json:"userAgent" validate:"max=1000"`
	Metadata  map[string]string `json:"metadata"`
}

// handleSecurityLog ingests security events reported by trusted frontend
// servers. Callers authenticate with a shared secret header.
func (s *Server) handleSecurityLog(
	c echo.Context,
) error {
	secret := s.appConfig.API.Server.Security.InternalSecret
	provided := c.Request().Header.Get("X-Internal-Secret")

	if secret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "Forbidden",
		})
	}

	var req securityLogRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	if s.auditLogger != nil {
		s.auditLogger.Alert(c.Request().Context(), audit.Alert{
			Type:      audit.AlertType(req.Type),
			Severity:  audit.Severity(req.Severity),
			SourceIP:  req.SourceIP,
			Details:   req.Details,
			Path:      req.Path,
			UserAgent: req.UserAgent,
			Metadata:  req.Metadata,
		})
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

type cspReport struct {
	Report struct {
		DocumentURI        string `json:"document-uri"`
		ViolatedDirective  string `json:"violated-directive"`
		EffectiveDirective string `json:"effective-directive"`
		BlockedURI         string `json:"blocked-uri"`
		SourceFile         string `json:"source-file"`
	} `json:"csp-report"`
}

// handleCSPReport receives browser Content-Security-Policy violation
// reports. Browsers send these with a Content-Type of
// application/csp-report, which Bind refuses, so the body is decoded
// directly. Malformed payloads are dropped without error since
// browsers never retry.
func (s *Server) handleCSPReport(
	c echo.Context,
) error {
	var report cspReport
	if err := json.NewDecoder(c.Request().Body).Decode(&report); err != nil {
		return c.NoContent(http.StatusNoContent)
	}

	if s.auditLogger != nil {
		s.auditLogger.Alert(c.Request().Context(), audit.Alert{
			Type:      audit.AlertCSPViolation,
			Severity:  audit.SeverityLow,
			SourceIP:  netid.ResolveClientIP(c.Request().Header),
			Path:      report.Report.DocumentURI,
			UserAgent: c.Request().UserAgent(),
			Details:   "CSP violation: " + report.Report.ViolatedDirective,
			Metadata: map[string]string{
				"blockedUri": report.Report.BlockedURI,
				"sourceFile": report.Report.SourceFile,
			},
		})
	}

	return c.NoContent(http.StatusNoContent)
}
