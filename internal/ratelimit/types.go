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

// Package ratelimit implements a fixed-window request counter keyed by an
// arbitrary identifier, typically "<category>:<ip>". Fixed windows permit up
// to twice the budget in a short span straddling a window boundary; that is
// an accepted tradeoff over sliding windows or token buckets.
package ratelimit

import "time"

// Category names a group of routes sharing one rate limit budget.
type Category string

// Route categories with independent budgets.
const (
	CategoryAuth      Category = "auth"
	CategoryContact   Category = "contact"
	CategoryAdminAPI  Category = "admin"
	CategoryPublicAPI Category = "public"
	CategoryJoinIntl  Category = "join-intl"
)

// Rule is one category's budget: at most MaxRequests per Window. When
// BlockDuration is set, exhausting the budget extends the lockout past the
// window end.
type Rule struct {
	MaxRequests   int
	Window        time.Duration
	BlockDuration time.Duration
}

// Decision is the outcome of a single rate limit check.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Remaining is the budget left in the current window.
	Remaining int
	// ResetIn is the time until the current window (or block) expires.
	ResetIn time.Duration
}

// DefaultRules returns the per-category budgets used when the configuration
// does not override them.
func DefaultRules() map[Category]Rule {
	return map[Category]Rule{
		CategoryAuth:      {MaxRequests: 5, Window: time.Minute},
		CategoryContact:   {MaxRequests: 5, Window: time.Hour},
		CategoryAdminAPI:  {MaxRequests: 60, Window: time.Minute},
		CategoryPublicAPI: {MaxRequests: 100, Window: time.Minute},
		CategoryJoinIntl:  {MaxRequests: 2, Window: time.Hour, BlockDuration: 24 * time.Hour},
	}
}
