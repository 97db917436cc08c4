// Copyright (c) 2024 John Dewey

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

// Package api exposes the HTTP surface: public content reads, guarded form
// endpoints, the admin CRUD API, and the internal security ingestion
// endpoints.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/sitegate-io/sitegate/internal/admission"
	"github.com/sitegate-io/sitegate/internal/audit"
	"github.com/sitegate-io/sitegate/internal/authtoken"
	"github.com/sitegate-io/sitegate/internal/captcha"
	"github.com/sitegate-io/sitegate/internal/config"
	"github.com/sitegate-io/sitegate/internal/content"
	"github.com/sitegate-io/sitegate/internal/origin"
	"github.com/sitegate-io/sitegate/internal/twofactor"
)

// Server wraps the Echo instance and its collaborators.
type Server struct {
	Echo *echo.Echo

	logger      *slog.Logger
	appConfig   config.Config
	customRoles map[string][]string

	contentStore   content.Store
	auditLogger    *audit.Logger
	auditStore     audit.Store
	loginTracker   *audit.LoginTracker
	captcha        *captcha.Verifier
	origin         *origin.Validator
	twoFactor      *twofactor.Manager
	authFn         Authenticator
	pipeline       *admission.Pipeline
	tokenValidator TokenValidator
}

// Option is a functional option for Server.
type Option func(*Server)

// WithContentStore wires the content database.
func WithContentStore(store content.Store) Option {
	return func(s *Server) { s.contentStore = store }
}

// WithAuditLogger wires the buffered security log.
func WithAuditLogger(logger *audit.Logger) Option {
	return func(s *Server) { s.auditLogger = logger }
}

// WithAuditStore wires direct audit reads for the admin API.
func WithAuditStore(store audit.Store) Option {
	return func(s *Server) { s.auditStore = store }
}

// WithLoginTracker wires failed-login counting.
func WithLoginTracker(tracker *audit.LoginTracker) Option {
	return func(s *Server) { s.loginTracker = tracker }
}

// WithCaptcha wires the CAPTCHA verifier.
func WithCaptcha(verifier *captcha.Verifier) Option {
	return func(s *Server) { s.captcha = verifier }
}

// WithOrigin wires the origin validator.
func WithOrigin(validator *origin.Validator) Option {
	return func(s *Server) { s.origin = validator }
}

// WithTwoFactor wires the admin login code flow.
func WithTwoFactor(manager *twofactor.Manager) Option {
	return func(s *Server) { s.twoFactor = manager }
}

// WithAuthenticator wires credential checking for the two-factor flow.
func WithAuthenticator(fn Authenticator) Option {
	return func(s *Server) { s.authFn = fn }
}

// WithAdmission wires the request admission pipeline.
func WithAdmission(pipeline *admission.Pipeline) Option {
	return func(s *Server) { s.pipeline = pipeline }
}

// WithTokenValidator overrides JWT validation, used by tests.
func WithTokenValidator(validator TokenValidator) Option {
	return func(s *Server) { s.tokenValidator = validator }
}

// New initialize a new Server and configure an Echo server.
func New(
	appConfig config.Config,
	logger *slog.Logger,
	opts ...Option,
) *Server {
	e := echo.New()
	e.HideBanner = true

	// Initialize CORS configuration
	corsConfig := middleware.CORSConfig{}

	allowOrigins := appConfig.API.Server.Security.CORS.AllowOrigins
	if len(allowOrigins) > 0 {
		corsConfig.AllowOrigins = allowOrigins
	}

	e.Use(otelecho.Middleware("sitegate-api"))
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(corsConfig))

	// Build custom roles map from config.
	var customRoles map[string][]string
	if cfgRoles := appConfig.API.Server.Security.Roles; len(cfgRoles) > 0 {
		customRoles = make(map[string][]string, len(cfgRoles))
		for name, role := range cfgRoles {
			customRoles[name] = role.Permissions
		}
	}

	s := &Server{
		Echo:        e,
		logger:      logger,
		appConfig:   appConfig,
		customRoles: customRoles,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.tokenValidator == nil {
		s.tokenValidator = authtoken.New(logger)
	}

	// Admission guards run after the request-scoped middleware so
	// rejections are still logged and traced.
	if s.pipeline != nil {
		for _, m := range s.pipeline.Middleware() {
			e.Use(m)
		}
	}

	// Register audit middleware if an audit logger is configured.
	if s.auditLogger != nil {
		e.Use(auditMiddleware(s.auditLogger))
	}

	s.registerRoutes()

	return s
}

// registerRoutes mounts every handler group on the Echo instance.
func (s *Server) registerRoutes() {
	e := s.Echo

	e.GET("/health", s.handleHealth)

	metricsPath := s.appConfig.Telemetry.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	e.GET(metricsPath, echo.WrapHandler(promhttp.Handler()))

	e.GET("/api/announcements", s.handleListAnnouncements)
	e.GET("/api/events", s.handleListEvents)
	e.GET("/api/team", s.handleListTeam)

	e.POST("/api/contact", s.handleContact)
	e.POST("/api/join/international", s.handleJoinInternational)

	e.POST("/auth/two-factor", s.handleTwoFactor)

	e.POST("/internal/security-log", s.handleSecurityLog)
	e.POST("/internal/csp-report", s.handleCSPReport)

	admin := e.Group("/admin/api")

	contentWrite := s.requirePermission("content:write")
	securityRead := s.requirePermission("security:read")

	admin.GET("/announcements", s.handleAdminListAnnouncements, s.requirePermission("content:read"))
	admin.POST("/announcements", s.handleAdminCreateAnnouncement, contentWrite)
	admin.PUT("/announcements/:id", s.handleAdminUpdateAnnouncement, contentWrite)
	admin.DELETE("/announcements/:id", s.handleAdminDeleteAnnouncement, contentWrite)

	admin.GET("/events", s.handleAdminListEvents, s.requirePermission("content:read"))
	admin.POST("/events", s.handleAdminCreateEvent, contentWrite)
	admin.PUT("/events/:id", s.handleAdminUpdateEvent, contentWrite)
	admin.DELETE("/events/:id", s.handleAdminDeleteEvent, contentWrite)

	admin.GET("/team", s.handleAdminListTeam, s.requirePermission("content:read"))
	admin.POST("/team", s.handleAdminCreateTeamMember, contentWrite)
	admin.PUT("/team/:id", s.handleAdminUpdateTeamMember, contentWrite)
	admin.DELETE("/team/:id", s.handleAdminDeleteTeamMember, contentWrite)

	admin.GET("/contact", s.handleAdminListContact, securityRead)
	admin.GET("/contact/:id", s.handleAdminGetContact, securityRead)
	admin.DELETE("/contact/:id", s.handleAdminDeleteContact, contentWrite)

	admin.GET("/security/audit", s.handleAdminListAudit, securityRead)
	admin.GET("/security/audit/:id", s.handleAdminGetAudit, securityRead)
}

// Start starts the Echo server with the configured port.
func (s *Server) Start() {
	go func() {
		s.logger.Info("starting server")
		listenAddr := fmt.Sprintf(":%d", s.appConfig.API.Port)
		if err := s.Echo.Start(listenAddr); err != nil && err != http.ErrServerClosed {
			s.logger.Error(
				"failed to start server",
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Stop gracefully shuts down the Echo server.
func (s *Server) Stop(
	ctx context.Context,
) {
	s.logger.Info("stopping server")

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.logger.Error(
			"server shutdown failed",
			slog.String("error", err.Error()),
		)
	} else {
		s.logger.Info("server stopped gracefully")
	}
}
