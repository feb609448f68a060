package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"customblog/internal/models"
)

// CommentStore handles comment threads in the database.
type CommentStore struct {
	db DBTX
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db DBTX) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, article_id, author_id, parent_id, body, seq, created_at`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := scanner.Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.ParentID, &c.Body, &c.Seq, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByID retrieves a comment by ID. Returns nil if not found.
func (s *CommentStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment by id: %w", err)
	}
	return c, nil
}

// ListByArticle returns an article's comments in posting order.
func (s *CommentStore) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE article_id = $1
		ORDER BY seq
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Create inserts a comment and writes the assigned sequence back into c.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (id, article_id, author_id, parent_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq
	`, c.ID, c.ArticleID, c.AuthorID, c.ParentID, c.Body, c.CreatedAt).Scan(&c.Seq)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}
