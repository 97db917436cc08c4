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

// Package admission evaluates every inbound request before it reaches
// business logic: route classification, rate limiting, the admin IP
// allow-list, and hardening response headers.
package admission

import (
	"strings"

	"github.com/sitegate-io/sitegate/internal/ratelimit"
)

// RouteRule maps a path prefix to a rate limit category. The first
// matching rule wins, so more specific prefixes must come earlier.
type RouteRule struct {
	// Prefix is matched against the request path.
	Prefix string
	// Category is the rate limit category applied to matching requests.
	Category ratelimit.Category
	// Admin marks routes subject to the admin IP allow-list.
	Admin bool
	// Exempt marks routes skipped by rate limiting entirely.
	Exempt bool
}

// DefaultRoutes is the classification table evaluated in order.
var DefaultRoutes = []RouteRule{
	{Prefix: "/health", Exempt: true},
	{Prefix: "/metrics", Exempt: true},
	{Prefix: "/auth/", Category: ratelimit.CategoryAuth},
	{Prefix: "/api/join/international", Category: ratelimit.CategoryJoinIntl},
	{Prefix: "/api/contact", Category: ratelimit.CategoryContact},
	{Prefix: "/admin/", Category: ratelimit.CategoryAdminAPI, Admin: true},
	{Prefix: "/internal/", Category: ratelimit.CategoryPublicAPI},
	{Prefix: "/api/", Category: ratelimit.CategoryPublicAPI},
}

// Classify returns the first matching rule for path. Unmatched paths fall
// through to the public category.
func Classify(
	routes []RouteRule,
	path string,
) RouteRule {
	for _, rule := range routes {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule
		}
	}

	return RouteRule{Category: ratelimit.CategoryPublicAPI}
}
