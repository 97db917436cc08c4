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
	"log/slog"
)

// Sender delivers a verification code to an email address.
type Sender interface {
	// Send delivers code to email.
	Send(
		ctx context.Context,
		email string,
		code string,
	) error
}

// ensure SlogSender implements Sender at compile time.
var _ Sender = (*SlogSender)(nil)

// SlogSender logs codes instead of delivering them. It stands in for a real
// mail transport in development and tests.
type SlogSender struct {
	logger *slog.Logger
}

// NewSlogSender creates a SlogSender.
func NewSlogSender(
	logger *slog.Logger,
) *SlogSender {
	return &SlogSender{
		logger: logger,
	}
}

// Send logs the code.
func (s *SlogSender) Send(
	_ context.Context,
	email string,
	code string,
) error {
	s.logger.Info(
		"two-factor code issued",
		slog.String("email", email),
		slog.String("code", code),
	)

	return nil
}
