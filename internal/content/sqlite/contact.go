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

// CreateContactSubmission inserts one contact submission record.
func (s *Store) CreateContactSubmission(
	ctx context.Context,
	submission *content.ContactSubmission,
) error {
	if strings.TrimSpace(submission.Email) == "" {
		return fmt.Errorf("email is required")
	}

	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}

	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO contact_submissions (
		   id, name, email, subject, message, source_ip, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Subject,
		submission.Message,
		submission.SourceIP,
		toMillis(submission.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return content.ErrAlreadyExists
		}

		return fmt.Errorf("create contact submission: %w", err)
	}

	return nil
}

// GetContactSubmission returns one submission by ID.
func (s *Store) GetContactSubmission(
	ctx context.Context,
	id string,
) (*content.ContactSubmission, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, email, subject, message, source_ip, created_at
		   FROM contact_submissions
		  WHERE id = ?`,
		id,
	)

	submission, err := scanContactSubmission(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, content.ErrNotFound
		}

		return nil, fmt.Errorf("get contact submission: %w", err)
	}

	return submission, nil
}

// ListContactSubmissions returns one page of submissions, newest first.
func (s *Store) ListContactSubmissions(
	ctx context.Context,
	limit int,
	offset int,
) ([]content.ContactSubmission, int, error) {
	var total int
	countRow := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_submissions")
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contact submissions: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, email, subject, message, source_ip, created_at
		   FROM contact_submissions
		  ORDER BY created_at DESC, id DESC
		  LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	submissions := make([]content.ContactSubmission, 0, limit)
	for rows.Next() {
		submission, err := scanContactSubmission(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("list contact submissions: %w", err)
		}
		submissions = append(submissions, *submission)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list contact submissions: %w", err)
	}

	return submissions, total, nil
}

// DeleteContactSubmission removes one submission record.
func (s *Store) DeleteContactSubmission(
	ctx context.Context,
	id string,
) error {
	result, err := s.sqlDB.ExecContext(
		ctx,
		"DELETE FROM contact_submissions WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("delete contact submission: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact submission: %w", err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}

	return nil
}

func scanContactSubmission(
	scan func(dest ...any) error,
) (*content.ContactSubmission, error) {
	var submission content.ContactSubmission
	var createdAt int64

	if err := scan(
		&submission.ID,
		&submission.Name,
		&submission.Email,
		&submission.Subject,
		&submission.Message,
		&submission.SourceIP,
		&createdAt,
	); err != nil {
		return nil, err
	}

	submission.CreatedAt = fromMillis(createdAt)

	return &submission, nil
}
