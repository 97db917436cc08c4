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

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitegate-io/sitegate/internal/content"
)

// CreateEvent inserts one event record.
func (s *Store) CreateEvent(
	ctx context.Context,
	event *content.Event,
) error {
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if event.EndsAt.Before(event.StartsAt) {
		return fmt.Errorf("event ends before it starts")
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO events (
		   id, title, description, location, starts_at, ends_at,
		   created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Title,
		event.Description,
		event.Location,
		toMillis(event.StartsAt),
		toMillis(event.EndsAt),
		toMillis(event.CreatedAt),
		toMillis(event.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return content.ErrAlreadyExists
		}

		return fmt.Errorf("create event: %w", err)
	}

	return nil
}

// GetEvent returns one event by ID.
func (s *Store) GetEvent(
	ctx context.Context,
	id string,
) (*content.Event, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, title, description, location, starts_at, ends_at,
		        created_at, updated_at
		   FROM events
		  WHERE id = ?`,
		id,
	)

	event, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, content.ErrNotFound
		}

		return nil, fmt.Errorf("get event: %w", err)
	}

	return event, nil
}

// ListEvents returns one page of events ordered by start time.
func (s *Store) ListEvents(
	ctx context.Context,
	limit int,
	offset int,
) ([]content.Event, int, error) {
	var total int
	countRow := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM events")
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, title, description, location, starts_at, ends_at,
		        created_at, updated_at
		   FROM events
		  ORDER BY starts_at ASC, id ASC
		  LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]content.Event, 0, limit)
	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("list events: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	return events, total, nil
}

// UpdateEvent overwrites one event record.
func (s *Store) UpdateEvent(
	ctx context.Context,
	event *content.Event,
) error {
	event.UpdatedAt = time.Now().UTC()

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE events
		    SET title = ?, description = ?, location = ?,
		        starts_at = ?, ends_at = ?, updated_at = ?
		  WHERE id = ?`,
		event.Title,
		event.Description,
		event.Location,
		toMillis(event.StartsAt),
		toMillis(event.EndsAt),
		toMillis(event.UpdatedAt),
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}

	return nil
}

// DeleteEvent removes one event record.
func (s *Store) DeleteEvent(
	ctx context.Context,
	id string,
) error {
	result, err := s.sqlDB.ExecContext(
		ctx,
		"DELETE FROM events WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}

	return nil
}

func scanEvent(
	scan func(dest ...any) error,
) (*content.Event, error) {
	var event content.Event
	var startsAt int64
	var endsAt int64
	var createdAt int64
	var updatedAt int64

	if err := scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Location,
		&startsAt,
		&endsAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	event.StartsAt = fromMillis(startsAt)
	event.EndsAt = fromMillis(endsAt)
	event.CreatedAt = fromMillis(createdAt)
	event.UpdatedAt = fromMillis(updatedAt)

	return &event, nil
}
