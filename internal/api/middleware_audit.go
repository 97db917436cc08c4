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
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sitegate-io/sitegate/internal/audit"
	"github.com/sitegate-io/sitegate/internal/netid"
)

// excludedAuditPaths lists path prefixes that should not generate audit entries.
var excludedAuditPaths = []string{
	"/health",
	"/metrics",
}

// methodActions maps mutating HTTP methods to audit actions.
var methodActions = map[string]audit.Action{
	http.MethodPost:   audit.ActionCreate,
	http.MethodPut:    audit.ActionUpdate,
	http.MethodPatch:  audit.ActionUpdate,
	http.MethodDelete: audit.ActionDelete,
}

// auditMiddleware returns Echo middleware that records an audit entry for
// every authenticated mutation. Reads are not audited.
func auditMiddleware(
	sink *audit.Logger,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			for _, prefix := range excludedAuditPaths {
				if strings.HasPrefix(path, prefix) {
					return next(c)
				}
			}

			err := next(c)

			// Only audit authenticated requests.
			subject, _ := c.Get(ContextKeySubject).(string)
			if subject == "" {
				return err
			}

			action, ok := methodActions[c.Request().Method]
			if !ok {
				return err
			}

			// Failed mutations are not recorded; the rejection itself is
			// already logged by the access log.
			if c.Response().Status >= http.StatusBadRequest {
				return err
			}

			sink.Log(c.Request().Context(), audit.Entry{
				Action:     action,
				Resource:   auditResource(path),
				ResourceID: c.Param("id"),
				UserID:     subject,
				SourceIP:   netid.ResolveClientIP(c.Request().Header),
				UserAgent:  c.Request().UserAgent(),
				Details:    c.Request().Method + " " + path,
			})

			return err
		}
	}
}

// auditResource derives the resource name from an admin API path, e.g.
// /admin/api/announcements/123 becomes "announcements".
func auditResource(
	path string,
) string {
	trimmed := strings.TrimPrefix(path, "/admin/api/")
	trimmed = strings.TrimPrefix(trimmed, "/api/")
	trimmed = strings.TrimPrefix(trimmed, "/")

	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		return trimmed[:i]
	}

	return trimmed
}
