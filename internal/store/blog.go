// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"customblog/internal/models"
)

// BlogStore manages blogs in the database.
type BlogStore struct {
	db DBTX
}

// NewBlogStore returns a new BlogStore.
func NewBlogStore(db DBTX) *BlogStore {
	return &BlogStore{db: db}
}

const blogColumns = `id, name, member_id, created_at, updated_at`

func scanBlog(scanner interface{ Scan(...any) error }) (*models.Blog, error) {
	var b models.Blog
	if err := scanner.Scan(&b.ID, &b.Name, &b.MemberID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByID retrieves a blog by ID. Returns nil if not found.
func (s *BlogStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id)
	b, err := scanBlog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return b, nil
}

// ListByMember returns a member's blogs, oldest first.
func (s *BlogStore) ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+`
		FROM blogs WHERE member_id = $1
		ORDER BY created_at, id
	`, memberID)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var items []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// Create inserts a new blog.
func (s *BlogStore) Create(ctx context.Context, b *models.Blog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blogs (id, name, member_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, b.ID, b.Name, b.MemberID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create blog: %w", err)
	}
	return nil
}

// Update saves the blog's name.
func (s *BlogStore) Update(ctx context.Context, b *models.Blog) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE blogs SET name = $1, updated_at = $2 WHERE id = $3
	`, b.Name, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return nil
}
