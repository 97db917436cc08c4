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

// Package netid resolves a best-effort client network address from proxy
// headers. Header authenticity is not verified; behind an untrusted proxy
// these values are spoofable, which is an accepted limitation of the design.
package netid

import (
	"net/http"
	"strings"
)

// Unknown is returned when no candidate header carries an address.
const Unknown = "unknown"

// ResolveClientIP returns the best-guess client address for a request.
// Preference order: the CDN edge header, the first forwarded-for entry,
// the real-IP header, then Unknown.
func ResolveClientIP(
	header http.Header,
) string {
	if ip := strings.TrimSpace(header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}

	if fwd := header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	return Unknown
}
