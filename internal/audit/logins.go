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

package audit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Failed-login thresholds.
const (
	// FailureThreshold is the failure count that raises an alert.
	FailureThreshold = 5
	// FailureWindow is how long failures for a pair stay counted.
	FailureWindow = time.Hour
)

// loginRecord tracks failures for one (ip, email) pair within a window.
type loginRecord struct {
	count       int
	windowStart time.Time
	alerted     bool
}

// LoginTracker counts failed login attempts per (ip, email) pair. Reaching
// the threshold within the window emits exactly one critical
// suspicious-activity entry per window; further failures inside the same
// window do not re-alert. A successful login clears the pair.
type LoginTracker struct {
	mu      sync.Mutex
	records map[string]*loginRecord
	sink    *Logger
	nowFn   func() time.Time
}

// NewLoginTracker creates a LoginTracker emitting alerts through sink.
func NewLoginTracker(
	sink *Logger,
) *LoginTracker {
	return &LoginTracker{
		records: make(map[string]*loginRecord),
		sink:    sink,
		nowFn:   time.Now,
	}
}

// SetNowFunc replaces the tracker clock. Used by tests.
func (t *LoginTracker) SetNowFunc(
	fn func() time.Time,
) {
	t.nowFn = fn
}

// RecordFailure counts one failed attempt and reports whether this attempt
// raised the alert.
func (t *LoginTracker) RecordFailure(
	ctx context.Context,
	ip string,
	email string,
) bool {
	now := t.nowFn()
	key := pairKey(ip, email)

	t.mu.Lock()
	rec, ok := t.records[key]
	if !ok || now.Sub(rec.windowStart) >= FailureWindow {
		rec = &loginRecord{windowStart: now}
		t.records[key] = rec
	}
	rec.count++

	fire := rec.count >= FailureThreshold && !rec.alerted
	if fire {
		rec.alerted = true
	}
	count := rec.count
	t.mu.Unlock()

	if fire {
		t.sink.Alert(ctx, Alert{
			Type:     AlertFailedLogins,
			Severity: SeverityCritical,
			SourceIP: ip,
			Details:  fmt.Sprintf("%d failed login attempts for %s within %s", count, email, FailureWindow),
		})
	}

	return fire
}

// RecordSuccess clears the failure count for a pair after a successful
// authentication.
func (t *LoginTracker) RecordSuccess(
	ip string,
	email string,
) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.records, pairKey(ip, email))
}

// Sweep drops pairs whose window has expired.
func (t *LoginTracker) Sweep(
	now time.Time,
) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for key, rec := range t.records {
		if now.Sub(rec.windowStart) >= FailureWindow {
			delete(t.records, key)
			removed++
		}
	}

	return removed
}

func pairKey(
	ip string,
	email string,
) string {
	return ip + "|" + email
}
