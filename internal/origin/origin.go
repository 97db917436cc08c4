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

// Package origin compares a request's declared origin against an allow-list,
// a lightweight CSRF mitigation for unauthenticated write endpoints.
package origin

import (
	"net/url"
	"strings"
)

// Policy controls how a request with neither Origin nor Referer is treated.
// Same-origin form posts may legitimately omit both.
type Policy int

const (
	// AllowMissing accepts requests that carry neither header.
	AllowMissing Policy = iota
	// RequireHeader rejects requests that carry neither header.
	RequireHeader
)

// Validator holds the set of hosts allowed to originate write requests.
type Validator struct {
	hosts map[string]struct{}
}

// NewValidator creates a Validator for the given hosts. Entries may be bare
// hosts or full URLs; ports are kept as given.
func NewValidator(
	hosts []string,
) *Validator {
	set := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		if host := normalizeHost(h); host != "" {
			set[host] = struct{}{}
		}
	}

	return &Validator{hosts: set}
}

// Allow reports whether the Origin header (or Referer, as fallback) names an
// allowed host. Missing headers are resolved per policy.
func (v *Validator) Allow(
	originHeader string,
	refererHeader string,
	policy Policy,
) bool {
	header := originHeader
	if header == "" {
		header = refererHeader
	}

	if header == "" {
		return policy == AllowMissing
	}

	host := normalizeHost(header)
	if host == "" {
		return false
	}

	_, ok := v.hosts[host]

	return ok
}

// normalizeHost extracts a lowercase host from a bare host or URL string.
func normalizeHost(
	s string,
) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		s = u.Host
	} else if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}

	return strings.ToLower(s)
}
