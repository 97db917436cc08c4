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
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sitegate-io/sitegate/internal/audit"
	"github.com/sitegate-io/sitegate/internal/netid"
	"github.com/sitegate-io/sitegate/internal/ratelimit"
)

// ContextKeyCategory exposes the resolved rate limit category to handlers.
const ContextKeyCategory = "admission.category"

// Metrics counts admission outcomes.
type Metrics interface {
	// Admitted records one accepted request.
	Admitted(category string)
	// Denied records one rejected request with the denial reason.
	Denied(category string, reason string)
}

// Pipeline composes the per-request guards. Checks short-circuit: the
// first failing guard produces the response.
type Pipeline struct {
	logger   *slog.Logger
	limiter  *ratelimit.Limiter
	routes   []RouteRule
	alerts   *audit.Logger
	metrics  Metrics
	adminIPs map[string]bool
}

// Option is a functional option for Pipeline.
type Option func(*Pipeline)

// WithRoutes overrides the route classification table.
func WithRoutes(
	routes []RouteRule,
) Option {
	return func(p *Pipeline) {
		p.routes = routes
	}
}

// WithAlerts registers the audit logger that receives abuse alerts.
func WithAlerts(
	alerts *audit.Logger,
) Option {
	return func(p *Pipeline) {
		p.alerts = alerts
	}
}

// WithMetrics registers admission counters.
func WithMetrics(
	metrics Metrics,
) Option {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

// WithAdminAllowList restricts admin routes to the given addresses. An
// empty list disables the check.
func WithAdminAllowList(
	addrs []string,
) Option {
	return func(p *Pipeline) {
		if len(addrs) == 0 {
			return
		}
		p.adminIPs = make(map[string]bool, len(addrs))
		for _, addr := range addrs {
			p.adminIPs[addr] = true
		}
	}
}

// New creates a Pipeline.
func New(
	logger *slog.Logger,
	limiter *ratelimit.Limiter,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		logger:  logger,
		limiter: limiter,
		routes:  DefaultRoutes,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Middleware returns the guard chain in evaluation order. SecurityHeaders
// runs first so rejection responses carry the hardening headers too.
func (p *Pipeline) Middleware() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		SecurityHeaders(DefaultCSPReportPath),
		p.rateLimit(),
		p.adminAllowList(),
	}
}

// rateLimit classifies the route and enforces its category budget.
func (p *Pipeline) rateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule := Classify(p.routes, c.Request().URL.Path)
			if rule.Exempt {
				return next(c)
			}

			c.Set(ContextKeyCategory, string(rule.Category))

			ip := netid.ResolveClientIP(c.Request().Header)
			decision := p.limiter.Check(rule.Category, ip)
			if decision.Allowed {
				if p.metrics != nil {
					p.metrics.Admitted(string(rule.Category))
				}

				return next(c)
			}

			retryAfter := int(math.Ceil(decision.ResetIn.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}

			p.logger.Warn(
				"rate limit exceeded",
				slog.String("category", string(rule.Category)),
				slog.String("ip", ip),
				slog.String("path", c.Request().URL.Path),
			)

			if p.metrics != nil {
				p.metrics.Denied(string(rule.Category), "rate_limit")
			}

			if p.alerts != nil {
				p.alerts.Alert(c.Request().Context(), audit.Alert{
					Type:      audit.AlertRateLimited,
					Severity:  audit.SeverityMedium,
					SourceIP:  ip,
					Path:      c.Request().URL.Path,
					UserAgent: c.Request().UserAgent(),
					Details: fmt.Sprintf(
						"rate limit exceeded for category %s",
						rule.Category,
					),
				})
			}

			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))

			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"error":      "Too Many Requests",
				"message":    "Rate limit exceeded. Please try again later.",
				"retryAfter": retryAfter,
			})
		}
	}
}

// adminAllowList rejects admin routes from addresses outside the
// configured allow-list. With no list configured the check is a no-op.
func (p *Pipeline) adminAllowList() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p.adminIPs == nil {
				return next(c)
			}

			rule := Classify(p.routes, c.Request().URL.Path)
			if !rule.Admin {
				return next(c)
			}

			ip := netid.ResolveClientIP(c.Request().Header)
			if p.adminIPs[ip] {
				return next(c)
			}

			p.logger.Warn(
				"admin route denied by allow-list",
				slog.String("ip", ip),
				slog.String("path", c.Request().URL.Path),
			)

			if p.metrics != nil {
				p.metrics.Denied(string(rule.Category), "allow_list")
			}

			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "Forbidden",
			})
		}
	}
}
