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

// Package twofactor implements the email code challenge used by admin login.
// Challenges are process-scoped: a restart invalidates outstanding codes,
// which only forces an admin to request a fresh one.
package twofactor

import (
	"sync"
	"time"
)

// Challenge is one outstanding verification code. A challenge is usable
// exactly once and only before ExpiresAt; at most one challenge is active
// per email.
type Challenge struct {
	// Token is the opaque handle returned to the client.
	Token string
	// Email the code was sent to.
	Email string
	// Code is the 6-digit verification code.
	Code string
	// ExpiresAt is when the challenge stops being usable.
	ExpiresAt time.Time
	// Used marks a consumed challenge.
	Used bool
	// Verified marks a successfully verified challenge.
	Verified bool
}

// Store holds outstanding challenges.
type Store interface {
	// Put stores a challenge, replacing any active challenge for the same
	// email.
	Put(challenge Challenge)
	// Get returns the challenge for token.
	Get(token string) (Challenge, bool)
	// Update overwrites the challenge for token.
	Update(challenge Challenge)
	// Sweep removes expired challenges and returns how many were removed.
	Sweep(now time.Time) int
}

// ensure MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)

// MemoryStore implements Store with a mutex-guarded map.
type MemoryStore struct {
	mu         sync.Mutex
	challenges map[string]Challenge
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		challenges: make(map[string]Challenge),
	}
}

// Put stores a challenge, dropping any prior challenge for the same email.
func (s *MemoryStore) Put(
	challenge Challenge,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, existing := range s.challenges {
		if existing.Email == challenge.Email {
			delete(s.challenges, token)
		}
	}

	s.challenges[challenge.Token] = challenge
}

// Get returns the challenge for token.
func (s *MemoryStore) Get(
	token string,
) (Challenge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[token]

	return challenge, ok
}

// Update overwrites the challenge for token.
func (s *MemoryStore) Update(
	challenge Challenge,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.challenges[challenge.Token]; ok {
		s.challenges[challenge.Token] = challenge
	}
}

// Sweep removes expired challenges.
func (s *MemoryStore) Sweep(
	now time.Time,
) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, challenge := range s.challenges {
		if !now.Before(challenge.ExpiresAt) {
			delete(s.challenges, token)
			removed++
		}
	}

	return removed
}

// Len reports the number of outstanding challenges. Used by tests.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.challenges)
}
