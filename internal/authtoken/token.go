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

// Package authtoken generates and validates the JWTs used by the admin API.
package authtoken

import (
	"log/slog"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer is the iss claim stamped on generated tokens.
const Issuer = "sitegate"

// DefaultTokenTTL is how long generated tokens stay valid.
const DefaultTokenTTL = 24 * time.Hour

// RoleHierarchy orders built-in roles from least to most privileged.
var RoleHierarchy = map[string]int{
	"editor": 1,
	"admin":  2,
}

// GenerateAllowedRoles returns the role names of a hierarchy, sorted by
// privilege.
func GenerateAllowedRoles(
	hierarchy map[string]int,
) []string {
	roles := make([]string, 0, len(hierarchy))
	for role := range hierarchy {
		roles = append(roles, role)
	}

	sort.Slice(roles, func(i, j int) bool {
		return hierarchy[roles[i]] < hierarchy[roles[j]]
	})

	return roles
}

// CustomClaims are the claims carried by generated tokens. Roles expand to
// permissions through ResolvePermissions; Permissions, when present,
// override role expansion.
type CustomClaims struct {
	Roles       []string `json:"roles"       validate:"required,dive,oneof=admin editor"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Token generates and validates JWTs.
type Token struct {
	logger *slog.Logger
}

// New creates a Token.
func New(
	logger *slog.Logger,
) *Token {
	return &Token{
		logger: logger,
	}
}

// Generate creates a signed HS256 token for subject carrying roles.
func (t *Token) Generate(
	signingKey string,
	roles []string,
	subject string,
) (string, error) {
	now := time.Now()

	claims := CustomClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(DefaultTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return "", err
	}

	t.logger.Debug(
		"token generated",
		slog.String("subject", subject),
		slog.Any("roles", roles),
	)

	return signed, nil
}
