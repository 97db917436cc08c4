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
	"log/slog"
)

// ensure SlogStore implements Store at compile time.
var _ Store = (*SlogStore)(nil)

// SlogStore implements Store by writing entries to the structured log. It is
// the fallback sink when no durable audit bucket is configured; entries are
// not retrievable.
type SlogStore struct {
	logger *slog.Logger
}

// NewSlogStore creates a new SlogStore.
func NewSlogStore(
	logger *slog.Logger,
) *SlogStore {
	return &SlogStore{logger: logger}
}

// Write logs the entry at a level matching its severity.
func (s *SlogStore) Write(
	_ context.Context,
	entry Entry,
) error {
	level := slog.LevelInfo
	if entry.Severity == SeverityHigh || entry.Severity == SeverityCritical {
		level = slog.LevelWarn
	}

	s.logger.Log(
		context.Background(),
		level,
		"audit",
		slog.String("id", entry.ID),
		slog.String("action", string(entry.Action)),
		slog.String("resource", entry.Resource),
		slog.String("resource_id", entry.ResourceID),
		slog.String("user_id", entry.UserID),
		slog.String("source_ip", entry.SourceIP),
		slog.String("severity", string(entry.Severity)),
		slog.String("details", entry.Details),
	)

	return nil
}

// Get is unsupported for the log-only sink.
func (s *SlogStore) Get(
	_ context.Context,
	id string,
) (*Entry, error) {
	return nil, fmt.Errorf("audit entry %q not retrievable from log sink", id)
}

// List is unsupported for the log-only sink.
func (s *SlogStore) List(
	_ context.Context,
	_ int,
	_ int,
) ([]Entry, int, error) {
	return []Entry{}, 0, nil
}
