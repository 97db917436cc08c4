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

// Package content defines the site's managed content types and the storage
// interface the API handlers depend on.
package content

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when a record with the same ID exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Announcement is one site announcement.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Event is one public event.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TeamMember is one listed member of the organization.
type TeamMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactSubmission is one message received through the contact form.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	SourceIP  string    `json:"sourceIp"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists site content.
type Store interface {
	// CreateAnnouncement inserts an announcement, assigning an ID when empty.
	CreateAnnouncement(
		ctx context.Context,
		announcement *Announcement,
	) error
	// GetAnnouncement returns one announcement by ID.
	GetAnnouncement(
		ctx context.Context,
		id string,
	) (*Announcement, error)
	// ListAnnouncements returns one page of announcements, newest first,
	// plus the total count. When publishedOnly is set, drafts are excluded.
	ListAnnouncements(
		ctx context.Context,
		limit int,
		offset int,
		publishedOnly bool,
	) ([]Announcement, int, error)
	// UpdateAnnouncement overwrites an announcement by ID.
	UpdateAnnouncement(
		ctx context.Context,
		announcement *Announcement,
	) error
	// DeleteAnnouncement removes an announcement by ID.
	DeleteAnnouncement(
		ctx context.Context,
		id string,
	) error

	// CreateEvent inserts an event, assigning an ID when empty.
	CreateEvent(
		ctx context.Context,
		event *Event,
	) error
	// GetEvent returns one event by ID.
	GetEvent(
		ctx context.Context,
		id string,
	) (*Event, error)
	// ListEvents returns one page of events ordered by start time, soonest
	// first, plus the total count.
	ListEvents(
		ctx context.Context,
		limit int,
		offset int,
	) ([]Event, int, error)
	// UpdateEvent overwrites an event by ID.
	UpdateEvent(
		ctx context.Context,
		event *Event,
	) error
	// DeleteEvent removes an event by ID.
	DeleteEvent(
		ctx context.Context,
		id string,
	) error

	// CreateTeamMember inserts a team member, assigning an ID when empty.
	CreateTeamMember(
		ctx context.Context,
		member *TeamMember,
	) error
	// GetTeamMember returns one team member by ID.
	GetTeamMember(
		ctx context.Context,
		id string,
	) (*TeamMember, error)
	// ListTeamMembers returns all team members ordered by sort order.
	ListTeamMembers(
		ctx context.Context,
	) ([]TeamMember, error)
	// UpdateTeamMember overwrites a team member by ID.
	UpdateTeamMember(
		ctx context.Context,
		member *TeamMember,
	) error
	// DeleteTeamMember removes a team member by ID.
	DeleteTeamMember(
		ctx context.Context,
		id string,
	) error

	// CreateContactSubmission inserts a contact submission, assigning an ID
	// when empty.
	CreateContactSubmission(
		ctx context.Context,
		submission *ContactSubmission,
	) error
	// GetContactSubmission returns one submission by ID.
	GetContactSubmission(
		ctx context.Context,
		id string,
	) (*ContactSubmission, error)
	// ListContactSubmissions returns one page of submissions, newest first,
	// plus the total count.
	ListContactSubmissions(
		ctx context.Context,
		limit int,
		offset int,
	) ([]ContactSubmission, int, error)
	// DeleteContactSubmission removes a submission by ID.
	DeleteContactSubmission(
		ctx context.Context,
		id string,
	) error

	// Close releases the underlying storage handle.
	Close() error
}
