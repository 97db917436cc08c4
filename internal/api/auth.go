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

package api

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator checks admin credentials before a two-factor challenge is
// issued.
type Authenticator interface {
	// Authenticate reports whether email and password identify the admin.
	Authenticate(
		email string,
		password string,
	) bool
}

// ensure StaticAuthenticator implements Authenticator at compile time.
var _ Authenticator = (*StaticAuthenticator)(nil)

// StaticAuthenticator checks credentials against the configured admin
// email and bcrypt password hash.
type StaticAuthenticator struct {
	email        string
	passwordHash string
}

// NewStaticAuthenticator creates a StaticAuthenticator.
func NewStaticAuthenticator(
	email string,
	passwordHash string,
) *StaticAuthenticator {
	return &StaticAuthenticator{
		email:        email,
		passwordHash: passwordHash,
	}
}

// Authenticate compares email and password against the configured admin.
// The bcrypt comparison runs even on an email mismatch to keep timing
// uniform.
func (a *StaticAuthenticator) Authenticate(
	email string,
	password string,
) bool {
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(email)),
		[]byte(strings.ToLower(a.email)),
	) == 1

	passwordOK := bcrypt.CompareHashAndPassword(
		[]byte(a.passwordHash),
		[]byte(password),
	) == nil

	return emailOK && passwordOK
}
