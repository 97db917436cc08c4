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
	"sync"
	"time"
)

// Store counts hits per identifier. Implementations must be safe for
// concurrent use; the process-local MemoryStore is the default, and a shared
// cache-backed implementation can be substituted for multi-instance
// deployments where counters must not multiply per instance.
type Store interface {
	// Hit records one request against identifier under rule and returns the
	// resulting decision.
	Hit(identifier string, rule Rule, now time.Time) Decision
	// Sweep removes entries whose window has expired and returns how many
	// were removed.
	Sweep(now time.Time) int
}

// ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)

// entry is one live window for an identifier. A given identifier has at most
// one entry; entries past resetTime are treated as absent.
type entry struct {
	count     int
	resetTime time.Time
	blocked   bool
}

// MemoryStore implements Store with a mutex-guarded in-process map. Counters
// reset on process restart, which is acceptable for abuse dampening.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
	}
}

// Hit implements the classic fixed window. A fresh or expired identifier
// starts a new window with count one. Once the budget is exhausted the first
// denial arms the rule's block duration, if any.
func (s *MemoryStore) Hit(
	identifier string,
	rule Rule,
	now time.Time,
) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[identifier]
	if !ok || !now.Before(e.resetTime) {
		e = &entry{
			count:     1,
			resetTime: now.Add(rule.Window),
		}
		s.entries[identifier] = e

		return Decision{
			Allowed:   true,
			Remaining: rule.MaxRequests - 1,
			ResetIn:   rule.Window,
		}
	}

	if e.count >= rule.MaxRequests {
		if rule.BlockDuration > 0 && !e.blocked {
			e.resetTime = now.Add(rule.BlockDuration)
			e.blocked = true
		}

		return Decision{
			Allowed:   false,
			Remaining: 0,
			ResetIn:   e.resetTime.Sub(now),
		}
	}

	e.count++

	return Decision{
		Allowed:   true,
		Remaining: rule.MaxRequests - e.count,
		ResetIn:   e.resetTime.Sub(now),
	}
}

// Sweep drops expired entries, bounding memory growth between windows.
func (s *MemoryStore) Sweep(
	now time.Time,
) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for identifier, e := range s.entries {
		if !now.Before(e.resetTime) {
			delete(s.entries, identifier)
			removed++
		}
	}

	return removed
}

// Len reports the number of live entries. Used by tests and metrics.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
