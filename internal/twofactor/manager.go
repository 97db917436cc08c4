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

package twofactor

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTTL is how long a challenge stays valid.
	DefaultTTL = 5 * time.Minute
	// codeDigits is the length of a verification code.
	codeDigits = 6
)

var (
	// ErrNotFound is returned when no challenge exists for a token.
	ErrNotFound = errors.New("challenge not found")
	// ErrExpired is returned when the challenge's TTL has elapsed.
	ErrExpired = errors.New("challenge expired")
	// ErrAlreadyUsed is returned when the challenge was already consumed.
	ErrAlreadyUsed = errors.New("challenge already used")
	// ErrCodeMismatch is returned when the submitted code is wrong.
	ErrCodeMismatch = errors.New("code mismatch")
)

// nowFn returns the current time. Overridable for tests through SetNowFunc.
var nowFn = time.Now

// SetNowFunc overrides the clock used by Manager. It returns a restore
// function for use with defer.
func SetNowFunc(
	fn func() time.Time,
) func() {
	prev := nowFn
	nowFn = fn

	return func() { nowFn = prev }
}

// Manager issues and verifies email code challenges.
type Manager struct {
	logger *slog.Logger
	store  Store
	sender Sender
	ttl    time.Duration
}

// Option is a functional option for Manager.
type Option func(*Manager)

// WithTTL overrides the challenge lifetime.
func WithTTL(
	ttl time.Duration,
) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// New creates a Manager.
func New(
	logger *slog.Logger,
	store Store,
	sender Sender,
	opts ...Option,
) *Manager {
	m := &Manager{
		logger: logger,
		store:  store,
		sender: sender,
		ttl:    DefaultTTL,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Issue creates a challenge for email, sends the code, and returns the
// opaque token the client must present together with the code. Any prior
// challenge for the same email is invalidated.
func (m *Manager) Issue(
	ctx context.Context,
	email string,
) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	challenge := Challenge{
		Token:     uuid.New().String(),
		Email:     email,
		Code:      code,
		ExpiresAt: nowFn().Add(m.ttl),
	}

	m.store.Put(challenge)

	if err := m.sender.Send(ctx, email, code); err != nil {
		return "", fmt.Errorf("send code: %w", err)
	}

	m.logger.Info(
		"two-factor challenge issued",
		slog.String("email", email),
	)

	return challenge.Token, nil
}

// Verify consumes the challenge for token. On success the challenge is
// marked used and the email it was issued for is returned. A challenge
// never survives a successful verification; a wrong code leaves it intact
// so the admin can retry until the TTL runs out. When token matched a
// known challenge, the challenge's email is returned alongside the error
// so failures can be attributed to the account.
func (m *Manager) Verify(
	_ context.Context,
	token string,
	code string,
) (string, error) {
	challenge, ok := m.store.Get(token)
	if !ok {
		return "", ErrNotFound
	}

	if challenge.Used {
		return challenge.Email, ErrAlreadyUsed
	}

	if !nowFn().Before(challenge.ExpiresAt) {
		return challenge.Email, ErrExpired
	}

	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(code)) != 1 {
		m.logger.Warn(
			"two-factor code mismatch",
			slog.String("email", challenge.Email),
		)

		return challenge.Email, ErrCodeMismatch
	}

	challenge.Used = true
	challenge.Verified = true
	m.store.Update(challenge)

	m.logger.Info(
		"two-factor challenge verified",
		slog.String("email", challenge.Email),
	)

	return challenge.Email, nil
}

// Sweep removes expired challenges from the store.
func (m *Manager) Sweep(
	now time.Time,
) int {
	return m.store.Sweep(now)
}

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
