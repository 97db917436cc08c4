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

// Package audit provides buffered audit logging, security alerts, and
// failed-login tracking.
package audit

import (
	"context"
	"time"
)

// Severity classifies how security-relevant an entry is.
type Severity string

// Severity levels, lowest to highest.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Action names the operation an audit entry records.
type Action string

// Well-known audit actions.
const (
	ActionCreate             Action = "CREATE"
	ActionUpdate             Action = "UPDATE"
	ActionDelete             Action = "DELETE"
	ActionLogin              Action = "LOGIN"
	ActionLoginFailed        Action = "LOGIN_FAILED"
	ActionLogout             Action = "LOGOUT"
	ActionPasswordChange     Action = "PASSWORD_CHANGE"
	ActionSettingsChange     Action = "SETTINGS_CHANGE"
	ActionExport             Action = "EXPORT"
	ActionSuspiciousActivity Action = "SUSPICIOUS_ACTIVITY"
)

// DefaultSeverity maps an action to the severity used when the caller does
// not set one.
func DefaultSeverity(
	action Action,
) Severity {
	switch action {
	case ActionSuspiciousActivity:
		return SeverityCritical
	case ActionDelete, ActionPasswordChange, ActionSettingsChange:
		return SeverityHigh
	case ActionCreate, ActionUpdate:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Entry is a single immutable audit record.
type Entry struct {
	// ID is the unique identifier for this entry.
	ID string `json:"id"`
	// Timestamp is when the action happened.
	Timestamp time.Time `json:"timestamp"`
	// Action is the recorded operation.
	Action Action `json:"action"`
	// Resource is the entity the action touched.
	Resource string `json:"resource"`
	// ResourceID identifies the specific entity, when applicable.
	ResourceID string `json:"resource_id,omitempty"`
	// UserID is the acting admin user, when authenticated.
	UserID string `json:"user_id,omitempty"`
	// SourceIP is the client's resolved address.
	SourceIP string `json:"source_ip"`
	// UserAgent is the client's user agent header, when present.
	UserAgent string `json:"user_agent,omitempty"`
	// Details carries free-form context about the action.
	Details string `json:"details,omitempty"`
	// Severity classifies the entry.
	Severity Severity `json:"severity"`
}

// AlertType names a class of security anomaly.
type AlertType string

// Alert types recorded by the anti-abuse guards.
const (
	AlertHoneypot     AlertType = "honeypot_triggered"
	AlertCSPViolation AlertType = "csp_violation"
	AlertFailedLogins AlertType = "repeated_failed_logins"
	AlertRateLimited  AlertType = "rate_limit_abuse"
)

// Alert is an anomaly record submitted by guards or the internal security
// log endpoint. Alerts are persisted as audit entries.
type Alert struct {
	Type      AlertType         `json:"type"`
	Severity  Severity          `json:"severity"`
	SourceIP  string            `json:"ipAddress"`
	Details   string            `json:"details"`
	Path      string            `json:"path,omitempty"`
	UserAgent string            `json:"userAgent,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Store persists audit entries.
type Store interface {
	// Write persists a single entry.
	Write(ctx context.Context, entry Entry) error
	// Get retrieves one entry by ID.
	Get(ctx context.Context, id string) (*Entry, error)
	// List retrieves entries newest first with pagination, returning the
	// page and the total count.
	List(ctx context.Context, limit int, offset int) ([]Entry, int, error)
}
