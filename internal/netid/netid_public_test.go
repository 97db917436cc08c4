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

package netid_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/netid"
)

type NetIDPublicTestSuite struct {
	suite.Suite
}

func (s *NetIDPublicTestSuite) TestResolveClientIP() {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "prefers the edge header",
			headers: map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.2"},
			want:    "203.0.113.7",
		},
		{
			name:    "takes the first forwarded-for entry",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1, 172.16.0.3"},
			want:    "198.51.100.2",
		},
		{
			name:    "trims whitespace around forwarded-for entries",
			headers: map[string]string{"X-Forwarded-For": "  198.51.100.2 , 10.0.0.1"},
			want:    "198.51.100.2",
		},
		{
			name:    "falls back to real-ip",
			headers: map[string]string{"X-Real-IP": "192.0.2.44"},
			want:    "192.0.2.44",
		},
		{
			name:    "returns unknown with no headers",
			headers: map[string]string{},
			want:    netid.Unknown,
		},
		{
			name:    "returns unknown when forwarded-for is only commas",
			headers: map[string]string{"X-Forwarded-For": " , "},
			want:    netid.Unknown,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}

			s.Equal(tt.want, netid.ResolveClientIP(h))
		})
	}
}

func TestNetIDPublicTestSuite(t *testing.T) {
	suite.Run(t, new(NetIDPublicTestSuite))
}
