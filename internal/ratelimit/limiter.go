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
	"fmt"
	"log/slog"
	"time"
)

// nowFn is the clock used by the limiter. Package-level so tests can freeze
// or advance time.
var nowFn = time.Now

// SetNowFunc replaces the limiter clock. It returns a restore function for
// use with defer. Used by tests.
func SetNowFunc(
	fn func() time.Time,
) func() {
	prev := nowFn
	nowFn = fn

	return func() { nowFn = prev }
}

// Limiter applies per-category budgets on top of a Store.
type Limiter struct {
	store  Store
	rules  map[Category]Rule
	logger *slog.Logger
}

// New creates a Limiter with the given store and rules. Categories missing
// from rules fall back to the defaults.
func New(
	logger *slog.Logger,
	store Store,
	rules map[Category]Rule,
) *Limiter {
	merged := DefaultRules()
	for category, rule := range rules {
		merged[category] = rule
	}

	return &Limiter{
		store:  store,
		rules:  merged,
		logger: logger,
	}
}

// Check records one request from ip against category's budget.
func (l *Limiter) Check(
	category Category,
	ip string,
) Decision {
	rule, ok := l.rules[category]
	if !ok {
		// Unknown categories are not limited; classification bugs must not
		// take down legitimate traffic.
		l.logger.Warn(
			"unknown rate limit category",
			slog.String("category", string(category)),
		)

		return Decision{Allowed: true, Remaining: 1}
	}

	return l.store.Hit(Identifier(category, ip), rule, nowFn())
}

// Rule returns the budget configured for category.
func (l *Limiter) Rule(
	category Category,
) (Rule, bool) {
	rule, ok := l.rules[category]

	return rule, ok
}

// Identifier builds the store key for a category and client address.
func Identifier(
	category Category,
	ip string,
) string {
	return fmt.Sprintf("%s:%s", category, ip)
}
