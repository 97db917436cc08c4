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
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Buffer defaults.
const (
	DefaultFlushInterval = 30 * time.Second
	DefaultBufferSize    = 50
)

// Logger buffers audit entries and flushes them to a Store on a timer,
// immediately for high or critical entries, or when the buffer fills,
// whichever comes first. Writes are best effort; a failed flush is logged
// and the entries dropped rather than failing the request that produced
// them.
type Logger struct {
	mu  sync.Mutex
	buf []Entry

	store         Store
	logger        *slog.Logger
	flushInterval time.Duration
	bufferSize    int

	done chan struct{}
	wg   sync.WaitGroup
}

// LoggerOption configures a Logger.
type LoggerOption func(*Logger)

// WithFlushInterval overrides the periodic flush interval.
func WithFlushInterval(
	d time.Duration,
) LoggerOption {
	return func(l *Logger) {
		l.flushInterval = d
	}
}

// WithBufferSize overrides the flush-on-full threshold.
func WithBufferSize(
	n int,
) LoggerOption {
	return func(l *Logger) {
		l.bufferSize = n
	}
}

// NewLogger creates a buffered audit logger writing to store.
func NewLogger(
	logger *slog.Logger,
	store Store,
	opts ...LoggerOption,
) *Logger {
	l := &Logger{
		store:         store,
		logger:        logger,
		flushInterval: DefaultFlushInterval,
		bufferSize:    DefaultBufferSize,
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Log buffers one entry, assigning ID, timestamp, and a default severity
// derived from the action when unset. High and critical entries flush the
// buffer immediately.
func (l *Logger) Log(
	ctx context.Context,
	entry Entry,
) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.ID == "" {
		entry.ID = NewEntryID(entry.Timestamp)
	}
	if entry.Severity == "" {
		entry.Severity = DefaultSeverity(entry.Action)
	}

	l.mu.Lock()
	l.buf = append(l.buf, entry)
	full := len(l.buf) >= l.bufferSize
	l.mu.Unlock()

	if full || entry.Severity == SeverityHigh || entry.Severity == SeverityCritical {
		l.Flush(ctx)
	}
}

// Alert records a security anomaly as a suspicious-activity audit entry.
func (l *Logger) Alert(
	ctx context.Context,
	alert Alert,
) {
	severity := alert.Severity
	if severity == "" {
		severity = SeverityCritical
	}

	details := alert.Details
	if len(alert.Metadata) > 0 {
		if data, err := json.Marshal(alert.Metadata); err == nil {
			details = fmt.Sprintf("%s metadata=%s", details, data)
		}
	}
	if alert.Path != "" {
		details = fmt.Sprintf("%s path=%s", details, alert.Path)
	}

	l.Log(ctx, Entry{
		Action:     ActionSuspiciousActivity,
		Resource:   "security_alert",
		ResourceID: string(alert.Type),
		SourceIP:   alert.SourceIP,
		UserAgent:  alert.UserAgent,
		Details:    details,
		Severity:   severity,
	})
}

// Flush drains the buffer and writes every entry to the store.
func (l *Logger) Flush(
	ctx context.Context,
) {
	l.mu.Lock()
	pending := l.buf
	l.buf = nil
	l.mu.Unlock()

	for _, entry := range pending {
		if err := l.store.Write(ctx, entry); err != nil {
			l.logger.Warn(
				"failed to write audit entry",
				slog.String("entry_id", entry.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Start begins the periodic flush without blocking.
func (l *Logger) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ticker := time.NewTicker(l.flushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.Flush(context.Background())
			case <-l.done:
				return
			}
		}
	}()
}

// Stop halts the periodic flush and drains any buffered entries.
func (l *Logger) Stop(
	ctx context.Context,
) {
	close(l.done)
	l.wg.Wait()
	l.Flush(ctx)
}

// Pending reports how many entries are buffered. Used by tests.
func (l *Logger) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.buf)
}

// NewEntryID builds a store key carrying a zero-padded nanosecond prefix so
// lexicographic order matches chronological order.
func NewEntryID(
	ts time.Time,
) string {
	return fmt.Sprintf("%020d-%s", ts.UnixNano(), uuid.New().String()[:8])
}
