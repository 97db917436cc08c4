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

package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the expiry sweep once a minute.
const DefaultSweepSchedule = "@every 1m"

// Sweeper periodically removes expired entries from a Store. It is owned by
// the process lifecycle rather than running as an anonymous interval, so
// shutdown is explicit.
type Sweeper struct {
	cron   *cron.Cron
	store  Store
	logger *slog.Logger
}

// NewSweeper creates a Sweeper running schedule against store.
func NewSweeper(
	logger *slog.Logger,
	store Store,
	schedule string,
) (*Sweeper, error) {
	c := cron.New()
	s := &Sweeper{
		cron:   c,
		store:  store,
		logger: logger,
	}

	if _, err := c.AddFunc(schedule, s.sweep); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Sweeper) sweep() {
	removed := s.store.Sweep(time.Now())
	if removed > 0 {
		s.logger.Debug(
			"swept expired rate limit entries",
			slog.Int("removed", removed),
		)
	}
}

// Start begins the sweep schedule without blocking.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule, waiting for an in-flight sweep to finish or the
// context to expire.
func (s *Sweeper) Stop(
	ctx context.Context,
) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
