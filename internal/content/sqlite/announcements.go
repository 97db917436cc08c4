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

// CreateAnnouncement inserts one announcement record.
func (s *Store) CreateAnnouncement(
	ctx context.Context,
	announcement *content.Announcement,
) error {
	if strings.TrimSpace(announcement.Title) == "" {
		return fmt.Errorf("title is required")
	}

	if announcement.ID == "" {
		announcement.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if announcement.CreatedAt.IsZero() {
		announcement.CreatedAt = now
	}
	announcement.UpdatedAt = now

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO announcements (
		   id, title, body, published, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?)`,
		announcement.ID,
		announcement.Title,
		announcement.Body,
		boolToInt(announcement.Published),
		toMillis(announcement.CreatedAt),
		toMillis(announcement.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return content.ErrAlreadyExists
		}

		return fmt.Errorf("create announcement: %w", err)
	}

	return nil
}

// GetAnnouncement returns one announcement by ID.
func (s *Store) GetAnnouncement(
	ctx context.Context,
	id string,
) (*content.Announcement, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, title, body, published, created_at, updated_at
		   FROM announcements
		  WHERE id = ?`,
		id,
	)

	announcement, err := scanAnnouncement(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, content.ErrNotFound
		}

		return nil, fmt.Errorf("get announcement: %w", err)
	}

	return announcement, nil
}

// ListAnnouncements returns one page of announcements, newest first.
func (s *Store) ListAnnouncements(
	ctx context.Context,
	limit int,
	offset int,
	publishedOnly bool,
) ([]content.Announcement, int, error) {
	where := ""
	if publishedOnly {
		where = "WHERE published = 1"
	}

	var total int
	countRow := s.sqlDB.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM announcements "+where,
	)
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, title, body, published, created_at, updated_at
		   FROM announcements `+where+`
		  ORDER BY created_at DESC, id DESC
		  LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	announcements := make([]content.Announcement, 0, limit)
	for rows.Next() {
		announcement, err := scanAnnouncement(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("list announcements: %w", err)
		}
		announcements = append(announcements, *announcement)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}

	return announcements, total, nil
}

// UpdateAnnouncement overwrites one announcement record.
func (s *Store) UpdateAnnouncement(
	ctx context.Context,
	announcement *content.Announcement,
) error {
	announcement.UpdatedAt = time.Now().UTC()

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE announcements
		    SET title = ?, body = ?, published = ?, updated_at = ?
		  WHERE id = ?`,
		announcement.Title,
		announcement.Body,
		boolToInt(announcement.Published),
		toMillis(announcement.UpdatedAt),
		announcement.ID,
	)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}

	return nil
}

// DeleteAnnouncement removes one announcement record.
func (s *Store) DeleteAnnouncement(
	ctx context.Context,
	id string,
) error {
	result, err := s.sqlDB.ExecContext(
		ctx,
		"DELETE FROM announcements WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}

	return nil
}

func scanAnnouncement(
	scan func(dest ...any) error,
) (*content.Announcement, error) {
	var announcement content.Announcement
	var published int
	var createdAt int64
	var updatedAt int64

	if err := scan(
		&announcement.ID,
		&announcement.Title,
		&announcement.Body,
		&published,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	announcement.Published = published != 0
	announcement.CreatedAt = fromMillis(createdAt)
	announcement.UpdatedAt = fromMillis(updatedAt)

	return &announcement, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}

	return 0
}
