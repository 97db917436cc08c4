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

package authtoken_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/authtoken"
)

type PermissionsPublicTestSuite struct {
	suite.Suite
}

func (s *PermissionsPublicTestSuite) TestResolvePermissions() {
	tests := []struct {
		name              string
		roles             []string
		directPermissions []string
		customRoles       map[string][]string
		expectPerms       []string
		expectMissing     []string
	}{
		{
			name:          "admin role gets all permissions",
			roles:         []string{"admin"},
			expectPerms:   authtoken.AllPermissions,
			expectMissing: nil,
		},
		{
			name:  "editor role gets content permissions but not security",
			roles: []string{"editor"},
			expectPerms: []string{
				authtoken.PermContentRead,
				authtoken.PermContentWrite,
			},
			expectMissing: []string{
				authtoken.PermSecurityRead,
			},
		},
		{
			name:          "unknown role gets no permissions",
			roles:         []string{"unknown"},
			expectPerms:   nil,
			expectMissing: authtoken.AllPermissions,
		},
		{
			name:          "empty roles gets no permissions",
			roles:         []string{},
			expectPerms:   nil,
			expectMissing: authtoken.AllPermissions,
		},
		{
			name:          "nil roles gets no permissions",
			roles:         nil,
			expectPerms:   nil,
			expectMissing: authtoken.AllPermissions,
		},
		{
			name:              "direct permissions override roles",
			roles:             []string{"admin"},
			directPermissions: []string{authtoken.PermContentRead},
			expectPerms:       []string{authtoken.PermContentRead},
			expectMissing: []string{
				authtoken.PermContentWrite,
				authtoken.PermSecurityRead,
			},
		},
		{
			name:  "custom role overrides default",
			roles: []string{"auditor"},
			customRoles: map[string][]string{
				"auditor": {authtoken.PermSecurityRead},
			},
			expectPerms: []string{
				authtoken.PermSecurityRead,
			},
			expectMissing: []string{
				authtoken.PermContentRead,
				authtoken.PermContentWrite,
			},
		},
		{
			name:  "custom role shadows built-in role",
			roles: []string{"editor"},
			customRoles: map[string][]string{
				"editor": {authtoken.PermContentRead},
			},
			expectPerms: []string{authtoken.PermContentRead},
			expectMissing: []string{
				authtoken.PermContentWrite,
				authtoken.PermSecurityRead,
			},
		},
		{
			name:  "multiple roles merge permissions",
			roles: []string{"editor", "admin"},
			expectPerms: []string{
				authtoken.PermContentRead,
				authtoken.PermContentWrite,
				authtoken.PermSecurityRead,
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resolved := authtoken.ResolvePermissions(
				tt.roles,
				tt.directPermissions,
				tt.customRoles,
			)

			for _, p := range tt.expectPerms {
				s.True(resolved[p], "expected permission %s to be present", p)
			}
			for _, p := range tt.expectMissing {
				s.False(resolved[p], "expected permission %s to be absent", p)
			}
		})
	}
}

func (s *PermissionsPublicTestSuite) TestHasPermission() {
	tests := []struct {
		name     string
		resolved map[string]bool
		required string
		expected bool
	}{
		{
			name:     "present permission returns true",
			resolved: map[string]bool{authtoken.PermContentRead: true},
			required: authtoken.PermContentRead,
			expected: true,
		},
		{
			name:     "absent permission returns false",
			resolved: map[string]bool{authtoken.PermContentRead: true},
			required: authtoken.PermContentWrite,
			expected: false,
		},
		{
			name:     "empty resolved set returns false",
			resolved: map[string]bool{},
			required: authtoken.PermContentRead,
			expected: false,
		},
		{
			name:     "nil resolved set returns false",
			resolved: nil,
			required: authtoken.PermContentRead,
			expected: false,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			result := authtoken.HasPermission(tt.resolved, tt.required)
			s.Equal(tt.expected, result)
		})
	}
}

func TestPermissionsPublicTestSuite(t *testing.T) {
	suite.Run(t, new(PermissionsPublicTestSuite))
}
