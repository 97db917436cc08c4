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

package admission_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/admission"
	"github.com/sitegate-io/sitegate/internal/ratelimit"
)

type PipelinePublicTestSuite struct {
	suite.Suite

	now     time.Time
	restore func()
}

func (s *PipelinePublicTestSuite) SetupTest() {
	s.now = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	s.restore = ratelimit.SetNowFunc(func() time.Time { return s.now })
}

func (s *PipelinePublicTestSuite) TearDownTest() {
	s.restore()
}

func (s *PipelinePublicTestSuite) newServer(
	opts ...admission.Option,
) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := ratelimit.New(logger, ratelimit.NewMemoryStore(), nil)
	pipeline := admission.New(logger, limiter, opts...)

	e := echo.New()
	e.Use(pipeline.Middleware()...)

	ok := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
	e.POST("/api/contact", ok)
	e.GET("/api/announcements", ok)
	e.GET("/admin/api/announcements", ok)
	e.GET("/health", ok)

	return e
}

func (s *PipelinePublicTestSuite) do(
	e *echo.Echo,
	method string,
	path string,
	ip string,
) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if ip != "" {
		req.Header.Set("CF-Connecting-IP", ip)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func (s *PipelinePublicTestSuite) TestClassify() {
	tests := []struct {
		name         string
		path         string
		wantCategory ratelimit.Category
		wantAdmin    bool
		wantExempt   bool
	}{
		{
			name:         "auth route",
			path:         "/auth/two-factor",
			wantCategory: ratelimit.CategoryAuth,
		},
		{
			name:         "contact route",
			path:         "/api/contact",
			wantCategory: ratelimit.CategoryContact,
		},
		{
			name:         "international join before generic api",
			path:         "/api/join/international",
			wantCategory: ratelimit.CategoryJoinIntl,
		},
		{
			name:         "admin route",
			path:         "/admin/api/events",
			wantCategory: ratelimit.CategoryAdminAPI,
			wantAdmin:    true,
		},
		{
			name:         "public api route",
			path:         "/api/team",
			wantCategory: ratelimit.CategoryPublicAPI,
		},
		{
			name:       "health exempt",
			path:       "/health",
			wantExempt: true,
		},
		{
			name:         "unmatched path falls through to public",
			path:         "/robots.txt",
			wantCategory: ratelimit.CategoryPublicAPI,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rule := admission.Classify(admission.DefaultRoutes, tt.path)

			s.Equal(tt.wantCategory, rule.Category)
			s.Equal(tt.wantAdmin, rule.Admin)
			s.Equal(tt.wantExempt, rule.Exempt)
		})
	}
}

func (s *PipelinePublicTestSuite) TestSecurityHeadersOnSuccess() {
	e := s.newServer()

	rec := s.do(e, http.MethodGet, "/api/announcements", "203.0.113.1")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.Equal("DENY", rec.Header().Get("X-Frame-Options"))
	s.Equal("strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	s.NotEmpty(rec.Header().Get("Permissions-Policy"))
	s.Contains(
		rec.Header().Get("Content-Security-Policy"),
		"report-uri /internal/csp-report",
	)
}

func (s *PipelinePublicTestSuite) TestContactSixthRequestRejected() {
	e := s.newServer()

	for i := 0; i < 5; i++ {
		rec := s.do(e, http.MethodPost, "/api/contact", "203.0.113.1")
		s.Equal(http.StatusOK, rec.Code)
	}

	rec := s.do(e, http.MethodPost, "/api/contact", "203.0.113.1")

	s.Equal(http.StatusTooManyRequests, rec.Code)
	s.NotEmpty(rec.Header().Get("Retry-After"))

	// Rejections carry the hardening headers too.
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))

	var body struct {
		Error      string `json:"error"`
		Message    string `json:"message"`
		RetryAfter int    `json:"retryAfter"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("Too Many Requests", body.Error)
	s.NotEmpty(body.Message)
	s.Greater(body.RetryAfter, 0)
}

func (s *PipelinePublicTestSuite) TestRateLimitIsolatedPerIP() {
	e := s.newServer()

	for i := 0; i < 5; i++ {
		s.do(e, http.MethodPost, "/api/contact", "203.0.113.1")
	}
	s.Equal(
		http.StatusTooManyRequests,
		s.do(e, http.MethodPost, "/api/contact", "203.0.113.1").Code,
	)

	s.Equal(
		http.StatusOK,
		s.do(e, http.MethodPost, "/api/contact", "203.0.113.9").Code,
	)
}

func (s *PipelinePublicTestSuite) TestExemptPathsBypassLimits() {
	e := s.newServer()

	for i := 0; i < 200; i++ {
		rec := s.do(e, http.MethodGet, "/health", "203.0.113.1")
		s.Require().Equal(http.StatusOK, rec.Code)
	}
}

func (s *PipelinePublicTestSuite) TestAdminAllowList() {
	tests := []struct {
		name     string
		allow    []string
		ip       string
		path     string
		wantCode int
	}{
		{
			name:     "allowed address passes",
			allow:    []string{"203.0.113.50"},
			ip:       "203.0.113.50",
			path:     "/admin/api/announcements",
			wantCode: http.StatusOK,
		},
		{
			name:     "unlisted address rejected",
			allow:    []string{"203.0.113.50"},
			ip:       "198.51.100.7",
			path:     "/admin/api/announcements",
			wantCode: http.StatusForbidden,
		},
		{
			name:     "no allow list disables check",
			allow:    nil,
			ip:       "198.51.100.7",
			path:     "/admin/api/announcements",
			wantCode: http.StatusOK,
		},
		{
			name:     "non-admin route unaffected",
			allow:    []string{"203.0.113.50"},
			ip:       "198.51.100.7",
			path:     "/api/announcements",
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			e := s.newServer(admission.WithAdminAllowList(tt.allow))

			rec := s.do(e, http.MethodGet, tt.path, tt.ip)

			s.Equal(tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusForbidden {
				var body map[string]string
				s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
				s.Equal("Forbidden", body["error"])
			}
		})
	}
}

func (s *PipelinePublicTestSuite) TestBuildCSP() {
	csp := admission.BuildCSP("")

	s.Contains(csp, "default-src 'self'")
	s.NotContains(csp, "report-uri")
}

func TestPipelinePublicTestSuite(t *testing.T) {
	suite.Run(t, new(PipelinePublicTestSuite))
}
