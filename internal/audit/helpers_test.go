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

package audit_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/sitegate-io/sitegate/internal/audit"
)

// newTestLogger returns a logger that discards output.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingStore is an in-memory Store capturing every written entry.
type recordingStore struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (s *recordingStore) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)

	return nil
}

func (s *recordingStore) Get(
	_ context.Context,
	id string,
) (*audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			return &s.entries[i], nil
		}
	}

	return nil, nil
}

func (s *recordingStore) List(
	_ context.Context,
	limit int,
	offset int,
) ([]audit.Entry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.entries)
	if offset >= total {
		return []audit.Entry{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return append([]audit.Entry{}, s.entries[offset:end]...), total, nil
}

func (s *recordingStore) written() []audit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]audit.Entry{}, s.entries...)
}
