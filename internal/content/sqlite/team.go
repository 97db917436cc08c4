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

// CreateTeamMember inserts one team member record.
func (s *Store) CreateTeamMember(
	ctx context.Context,
	member *content.TeamMember,
) error {
	if strings.TrimSpace(member.Name) == "" {
		return fmt.Errorf("name is required")
	}

	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO team_members (
		   id, name, role, bio, sort_order, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		member.ID,
		member.Name,
		member.Role,
		member.Bio,
		member.SortOrder,
		toMillis(member.CreatedAt),
		toMillis(member.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return content.ErrAlreadyExists
		}

		return fmt.Errorf("create team member: %w", err)
	}

	return nil
}

// GetTeamMember returns one team member by ID.
func (s *Store) GetTeamMember(
	ctx context.Context,
	id string,
) (*content.TeamMember, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, role, bio, sort_order, created_at, updated_at
		   FROM team_members
		  WHERE id = ?`,
		id,
	)

	member, err := scanTeamMember(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, content.ErrNotFound
		}

		return nil, fmt.Errorf("get team member: %w", err)
	}

	return member, nil
}

// ListTeamMembers returns all team members ordered by sort order.
func (s *Store) ListTeamMembers(
	ctx context.Context,
) ([]content.TeamMember, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, role, bio, sort_order, created_at, updated_at
		   FROM team_members
		  ORDER BY sort_order ASC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var members []content.TeamMember
	for rows.Next() {
		member, err := scanTeamMember(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list team members: %w", err)
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	return members, nil
}

// UpdateTeamMember overwrites one team member record.
func (s *Store) UpdateTeamMember(
	ctx context.Context,
	member *content.TeamMember,
) error {
	member.UpdatedAt = time.Now().UTC()

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE team_members
		    SET name = ?, role = ?, bio = ?, sort_order = ?, updated_at = ?
		  WHERE id = ?`,
		member.Name,
		member.Role,
		member.Bio,
		member.SortOrder,
		toMillis(member.UpdatedAt),
		member.ID,
	)
	if err != nil {
		return fmt.Errorf("update team member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team member: %w", err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}

	return nil
}

// DeleteTeamMember removes one team member record.
func (s *Store) DeleteTeamMember(
	ctx context.Context,
	id string,
) error {
	result, err := s.sqlDB.ExecContext(
		ctx,
		"DELETE FROM team_members WHERE id = ?",
		id,
	)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if affected == 0 {
		return content.ErrNotFound
	}

	return nil
}

func scanTeamMember(
	scan func(dest ...any) error,
) (*content.TeamMember, error) {
	var member content.TeamMember
	var createdAt int64
	var updatedAt int64

	if err := scan(
		&member.ID,
		&member.Name,
		&member.Role,
		&member.Bio,
		&member.SortOrder,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	member.CreatedAt = fromMillis(createdAt)
	member.UpdatedAt = fromMillis(updatedAt)

	return &member, nil
}
