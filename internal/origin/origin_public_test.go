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

package origin_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/origin"
)

type OriginPublicTestSuite struct {
	suite.Suite

	validator *origin.Validator
}

func (s *OriginPublicTestSuite) SetupTest() {
	s.validator = origin.NewValidator([]string{
		"example.org",
		"https://www.example.org",
	})
}

func (s *OriginPublicTestSuite) TestAllow() {
	tests := []struct {
		name    string
		origin  string
		referer string
		policy  origin.Policy
		want    bool
	}{
		{
			name:   "allowed origin",
			origin: "https://example.org",
			policy: origin.RequireHeader,
			want:   true,
		},
		{
			name:   "allowed origin from URL entry",
			origin: "https://www.example.org",
			policy: origin.RequireHeader,
			want:   true,
		},
		{
			name:   "case insensitive host match",
			origin: "https://Example.ORG",
			policy: origin.RequireHeader,
			want:   true,
		},
		{
			name:   "disallowed origin",
			origin: "https://evil.test",
			policy: origin.RequireHeader,
			want:   false,
		},
		{
			name:    "referer fallback with path",
			referer: "https://example.org/contact",
			policy:  origin.RequireHeader,
			want:    true,
		},
		{
			name:    "origin wins over referer",
			origin:  "https://evil.test",
			referer: "https://example.org/contact",
			policy:  origin.RequireHeader,
			want:    false,
		},
		{
			name:   "missing headers rejected when required",
			policy: origin.RequireHeader,
			want:   false,
		},
		{
			name:   "missing headers accepted when allowed",
			policy: origin.AllowMissing,
			want:   true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, s.validator.Allow(tt.origin, tt.referer, tt.policy))
		})
	}
}

func TestOriginPublicTestSuite(t *testing.T) {
	suite.Run(t, new(OriginPublicTestSuite))
}
