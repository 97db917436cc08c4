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

package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sitegate-io/sitegate/internal/audit"
	"github.com/sitegate-io/sitegate/internal/content"
)

// CombinedHandler is a superset of all smaller handler interfaces.
type CombinedHandler interface {
	SecurityHandler
	ContactHandler
}

// SecurityHandler defines an interface for interacting with audit log
// client operations.
type SecurityHandler interface {
	// ListAuditEntries retrieves one page of audit entries plus the total count.
	ListAuditEntries(
		ctx context.Context,
		limit int,
		offset int,
	) ([]audit.Entry, int, error)

	// GetAuditEntry retrieves a single audit entry by ID.
	GetAuditEntry(
		ctx context.Context,
		id string,
	) (*audit.Entry, error)
}

// ContactHandler defines an interface for interacting with contact
// submission client operations.
type ContactHandler interface {
	// ListContactSubmissions retrieves one page of contact submissions
	// plus the total count.
	ListContactSubmissions(
		ctx context.Context,
		limit int,
		offset int,
	) ([]content.ContactSubmission, int, error)

	// GetContactSubmission retrieves a single contact submission by ID.
	GetContactSubmission(
		ctx context.Context,
		id string,
	) (*content.ContactSubmission, error)
}

var _ CombinedHandler = (*Client)(nil)

func pageQuery(
	limit int,
	offset int,
) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	return q
}

// ListAuditEntries retrieves one page of audit entries via the REST API.
func (c *Client) ListAuditEntries(
	ctx context.Context,
	limit int,
	offset int,
) ([]audit.Entry, int, error) {
	var resp struct {
		TotalItems int           `json:"totalItems"`
		Entries    []audit.Entry `json:"entries"`
	}

	err := c.getJSON(ctx, "/admin/api/security/audit", pageQuery(limit, offset), &resp)
	if err != nil {
		return nil, 0, err
	}

	return resp.Entries, resp.TotalItems, nil
}

// GetAuditEntry retrieves a specific audit entry by ID via the REST API.
func (c *Client) GetAuditEntry(
	ctx context.Context,
	id string,
) (*audit.Entry, error) {
	var entry audit.Entry

	err := c.getJSON(ctx, "/admin/api/security/audit/"+url.PathEscape(id), nil, &entry)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// ListContactSubmissions retrieves one page of contact submissions via the
// REST API.
func (c *Client) ListContactSubmissions(
	ctx context.Context,
	limit int,
	offset int,
) ([]content.ContactSubmission, int, error) {
	var resp struct {
		TotalItems  int                         `json:"totalItems"`
		Submissions []content.ContactSubmission `json:"submissions"`
	}

	err := c.getJSON(ctx, "/admin/api/contact", pageQuery(limit, offset), &resp)
	if err != nil {
		return nil, 0, err
	}

	return resp.Submissions, resp.TotalItems, nil
}

// GetContactSubmission retrieves a specific contact submission by ID via the
// REST API.
func (c *Client) GetContactSubmission(
	ctx context.Context,
	id string,
) (*content.ContactSubmission, error) {
	var submission content.ContactSubmission

	err := c.getJSON(ctx, "/admin/api/contact/"+url.PathEscape(id), nil, &submission)
	if err != nil {
		return nil, err
	}

	return &submission, nil
}
