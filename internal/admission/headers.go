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

package admission

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// DefaultCSPReportPath is where browsers post violation reports.
const DefaultCSPReportPath = "/internal/csp-report"

// cspDirectives is the fixed policy attached to every response. The
// report-uri directive is appended separately so it can be configured.
var cspDirectives = []string{
	"default-src 'self'",
	"script-src 'self'",
	"style-src 'self' 'unsafe-inline'",
	"img-src 'self' data:",
	"font-src 'self'",
	"connect-src 'self'",
	"frame-ancestors 'none'",
	"base-uri 'self'",
	"form-action 'self'",
}

// BuildCSP renders the Content-Security-Policy header value.
func BuildCSP(
	reportPath string,
) string {
	directives := cspDirectives
	if reportPath != "" {
		directives = append(append([]string{}, cspDirectives...), "report-uri "+reportPath)
	}

	return strings.Join(directives, "; ")
}

// SecurityHeaders returns middleware that attaches hardening headers to
// every response, including early rejections produced further down the
// chain. It must be registered before any middleware that can short-circuit.
func SecurityHeaders(
	cspReportPath string,
) echo.MiddlewareFunc {
	csp := BuildCSP(cspReportPath)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			h.Set("Content-Security-Policy", csp)

			return next(c)
		}
	}
}
