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

package ratelimit_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/ratelimit"
)

type LimiterPublicTestSuite struct {
	suite.Suite

	now     time.Time
	store   *ratelimit.MemoryStore
	limiter *ratelimit.Limiter
}

func (s *LimiterPublicTestSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ratelimit.SetNowFunc(func() time.Time { return s.now })

	s.store = ratelimit.NewMemoryStore()
	s.limiter = ratelimit.New(slog.Default(), s.store, map[ratelimit.Category]ratelimit.Rule{
		ratelimit.CategoryAuth: {MaxRequests: 5, Window: time.Minute},
		ratelimit.CategoryJoinIntl: {
			MaxRequests:   2,
			Window:        time.Hour,
			BlockDuration: 24 * time.Hour,
		},
	})
}

func (s *LimiterPublicTestSuite) TearDownTest() {
	ratelimit.SetNowFunc(time.Now)
}

func (s *LimiterPublicTestSuite) TestCheckAllowsUpToBudget() {
	for i := 0; i < 5; i++ {
		d := s.limiter.Check(ratelimit.CategoryAuth, "203.0.113.7")
		s.True(d.Allowed, "request %d should be allowed", i+1)
		s.Equal(4-i, d.Remaining)
	}

	d := s.limiter.Check(ratelimit.CategoryAuth, "203.0.113.7")
	s.False(d.Allowed)
	s.Zero(d.Remaining)
	s.Positive(d.ResetIn)
}

func (s *LimiterPublicTestSuite) TestCheckResetsAfterWindow() {
	for i := 0; i < 6; i++ {
		s.limiter.Check(ratelimit.CategoryAuth, "203.0.113.7")
	}

	s.now = s.now.Add(time.Minute + time.Second)

	d := s.limiter.Check(ratelimit.CategoryAuth, "203.0.113.7")
	s.True(d.Allowed)
	s.Equal(4, d.Remaining)
}

func (s *LimiterPublicTestSuite) TestCheckIsolatesIdentifiers() {
	for i := 0; i < 6; i++ {
		s.limiter.Check(ratelimit.CategoryAuth, "203.0.113.7")
	}

	d := s.limiter.Check(ratelimit.CategoryAuth, "198.51.100.2")
	s.True(d.Allowed)

	d = s.limiter.Check(ratelimit.CategoryContact, "203.0.113.7")
	s.True(d.Allowed, "categories do not share budgets")
}

func (s *LimiterPublicTestSuite) TestCheckBlockDurationExtendsLockout() {
	s.limiter.Check(ratelimit.CategoryJoinIntl, "203.0.113.7")
	s.limiter.Check(ratelimit.CategoryJoinIntl, "203.0.113.7")

	d := s.limiter.Check(ratelimit.CategoryJoinIntl, "203.0.113.7")
	s.False(d.Allowed)
	s.Equal(24*time.Hour, d.ResetIn)

	// Still denied after the base window would have elapsed.
	s.now = s.now.Add(2 * time.Hour)
	d = s.limiter.Check(ratelimit.CategoryJoinIntl, "203.0.113.7")
	s.False(d.Allowed)
	s.Equal(22*time.Hour, d.ResetIn)

	// The block does not re-arm on repeat denials.
	s.now = s.now.Add(23 * time.Hour)
	d = s.limiter.Check(ratelimit.CategoryJoinIntl, "203.0.113.7")
	s.True(d.Allowed)
}

func (s *LimiterPublicTestSuite) TestCheckUnknownCategoryAllows() {
	d := s.limiter.Check(ratelimit.Category("bogus"), "203.0.113.7")
	s.True(d.Allowed)
}

func (s *LimiterPublicTestSuite) TestSweepRemovesExpiredEntries() {
	s.limiter.Check(ratelimit.CategoryAuth, "203.0.113.7")
	s.limiter.Check(ratelimit.CategoryAuth, "198.51.100.2")
	s.Equal(2, s.store.Len())

	removed := s.store.Sweep(s.now.Add(30 * time.Second))
	s.Zero(removed, "live entries stay")

	removed = s.store.Sweep(s.now.Add(2 * time.Minute))
	s.Equal(2, removed)
	s.Zero(s.store.Len())
}

func TestLimiterPublicTestSuite(t *testing.T) {
	suite.Run(t, new(LimiterPublicTestSuite))
}
