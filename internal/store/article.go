// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"customblog/internal/blog"
	"customblog/internal/models"
)

// ArticleStore handles all article-related database operations.
type ArticleStore struct {
	db DBTX
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db DBTX) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, blog_id, author_id, category_id, title, body, seq, created_at, updated_at`

func scanArticle(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	err := scanner.Scan(
		&a.ID, &a.BlogID, &a.AuthorID, &a.CategoryID, &a.Title, &a.Body,
		&a.Seq, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// filterClause renders the WHERE clause and arguments for an ArticleFilter.
func filterClause(f blog.ArticleFilter) (string, []any) {
	if f.CategoryIDs == nil {
		return `WHERE blog_id = $1`, []any{f.BlogID}
	}
	return `WHERE blog_id = $1 AND category_id = ANY($2::uuid[])`, []any{f.BlogID, uuidStrings(f.CategoryIDs)}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// Count returns the number of articles matching the filter.
func (s *ArticleStore) Count(ctx context.Context, f blog.ArticleFilter) (int, error) {
	where, args := filterClause(f)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// List returns one window of matching articles, newest first. Articles
// created at the same instant keep their insertion order.
func (s *ArticleStore) List(ctx context.Context, f blog.ArticleFilter, offset, limit int) ([]models.Article, error) {
	where, args := filterClause(f)
	n := len(args)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM articles
		%s
		ORDER BY created_at DESC, seq ASC
		LIMIT $%d OFFSET $%d
	`, articleColumns, where, n+1, n+2), args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	items := []models.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// ListIDs returns the ids of a blog's articles in insertion order.
func (s *ArticleStore) ListIDs(ctx context.Context, blogID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM articles WHERE blog_id = $1 ORDER BY seq`, blogID)
	if err != nil {
		return nil, fmt.Errorf("list article ids: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan article id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create inserts a new article and writes the assigned sequence back into a.
// A blog, author or category that no longer exists fails with
// blog.ErrInvalidReference.
func (s *ArticleStore) Create(ctx context.Context, a *models.Article) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (id, blog_id, author_id, category_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq
	`, a.ID, a.BlogID, a.AuthorID, a.CategoryID, a.Title, a.Body, a.CreatedAt, a.UpdatedAt).Scan(&a.Seq)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("create article: %w: %w", blog.ErrInvalidReference, err)
	}
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// Uncategorize clears the category of every article filed under one of
// categoryIDs and returns the number of articles changed.
func (s *ArticleStore) Uncategorize(ctx context.Context, categoryIDs []uuid.UUID) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles SET category_id = NULL, updated_at = NOW()
		WHERE category_id = ANY($1::uuid[])
	`, uuidStrings(categoryIDs))
	if err != nil {
		return 0, fmt.Errorf("uncategorize articles: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("uncategorize articles: %w", err)
	}
	return int(n), nil
}
