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

package twofactor_test

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/twofactor"
)

type capturingSender struct {
	email string
	code  string
}

func (s *capturingSender) Send(
	_ context.Context,
	email string,
	code string,
) error {
	s.email = email
	s.code = code

	return nil
}

type ManagerPublicTestSuite struct {
	suite.Suite

	now     time.Time
	restore func()

	store   *twofactor.MemoryStore
	sender  *capturingSender
	manager *twofactor.Manager
}

func (s *ManagerPublicTestSuite) SetupTest() {
	s.now = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	s.restore = twofactor.SetNowFunc(func() time.Time { return s.now })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = twofactor.NewMemoryStore()
	s.sender = &capturingSender{}
	s.manager = twofactor.New(logger, s.store, s.sender)
}

func (s *ManagerPublicTestSuite) TearDownTest() {
	s.restore()
}

func (s *ManagerPublicTestSuite) TestIssueSendsSixDigitCode() {
	token, err := s.manager.Issue(context.Background(), "admin@example.org")

	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("admin@example.org", s.sender.email)
	s.Regexp(regexp.MustCompile(`^\d{6}$`), s.sender.code)
}

func (s *ManagerPublicTestSuite) TestVerifyOk() {
	token, err := s.manager.Issue(context.Background(), "admin@example.org")
	s.Require().NoError(err)

	email, err := s.manager.Verify(context.Background(), token, s.sender.code)

	s.Require().NoError(err)
	s.Equal("admin@example.org", email)
}

func (s *ManagerPublicTestSuite) TestVerifyCodeMismatchKeepsChallenge() {
	token, err := s.manager.Issue(context.Background(), "admin@example.org")
	s.Require().NoError(err)

	wrong := "000000"
	if s.sender.code == wrong {
		wrong = "000001"
	}

	email, err := s.manager.Verify(context.Background(), token, wrong)
	s.Require().ErrorIs(err, twofactor.ErrCodeMismatch)
	s.Equal("admin@example.org", email)

	// The right code still works after a failed attempt.
	email, err = s.manager.Verify(context.Background(), token, s.sender.code)
	s.Require().NoError(err)
	s.Equal("admin@example.org", email)
}

func (s *ManagerPublicTestSuite) TestVerifyTwiceFailsSecondTime() {
	token, err := s.manager.Issue(context.Background(), "admin@example.org")
	s.Require().NoError(err)

	_, err = s.manager.Verify(context.Background(), token, s.sender.code)
	s.Require().NoError(err)

	_, err = s.manager.Verify(context.Background(), token, s.sender.code)
	s.ErrorIs(err, twofactor.ErrAlreadyUsed)
}

func (s *ManagerPublicTestSuite) TestVerifyExpired() {
	token, err := s.manager.Issue(context.Background(), "admin@example.org")
	s.Require().NoError(err)

	s.now = s.now.Add(twofactor.DefaultTTL)

	_, err = s.manager.Verify(context.Background(), token, s.sender.code)
	s.ErrorIs(err, twofactor.ErrExpired)
}

func (s *ManagerPublicTestSuite) TestVerifyUnknownToken() {
	_, err := s.manager.Verify(context.Background(), "no-such-token", "123456")

	s.ErrorIs(err, twofactor.ErrNotFound)
}

func (s *ManagerPublicTestSuite) TestReissueInvalidatesPriorChallenge() {
	first, err := s.manager.Issue(context.Background(), "admin@example.org")
	s.Require().NoError(err)
	firstCode := s.sender.code

	second, err := s.manager.Issue(context.Background(), "admin@example.org")
	s.Require().NoError(err)

	_, err = s.manager.Verify(context.Background(), first, firstCode)
	s.ErrorIs(err, twofactor.ErrNotFound)

	_, err = s.manager.Verify(context.Background(), second, s.sender.code)
	s.NoError(err)
}

func (s *ManagerPublicTestSuite) TestSweepRemovesExpired() {
	_, err := s.manager.Issue(context.Background(), "admin@example.org")
	s.Require().NoError(err)
	_, err = s.manager.Issue(context.Background(), "other@example.org")
	s.Require().NoError(err)
	s.Equal(2, s.store.Len())

	removed := s.manager.Sweep(s.now.Add(twofactor.DefaultTTL))

	s.Equal(2, removed)
	s.Equal(0, s.store.Len())
}

func TestManagerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerPublicTestSuite))
}
