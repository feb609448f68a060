package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"customblog/internal/models"
)

// PostTopLevelComment appends a comment directly under an article.
// authorID is the authenticated member; uuid.Nil means no identity.
func (s *Service) PostTopLevelComment(ctx context.Context, articleID, authorID uuid.UUID, body string) (*models.Comment, error) {
	c, err := s.postComment(ctx, articleID, nil, authorID, body)
	if err != nil {
		return nil, fmt.Errorf("post comment: %w", err)
	}
	return c, nil
}

// PostReply appends a reply to a top-level comment of the same article.
// Replies are one level deep: answering a reply is rejected.
func (s *Service) PostReply(ctx context.Context, articleID, parentID, authorID uuid.UUID, body string) (*models.Comment, error) {
	c, err := s.postComment(ctx, articleID, &parentID, authorID, body)
	if err != nil {
		return nil, fmt.Errorf("post reply: %w", err)
	}
	return c, nil
}

func (s *Service) postComment(ctx context.Context, articleID uuid.UUID, parentID *uuid.UUID, authorID uuid.UUID, body string) (*models.Comment, error) {
	if authorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	body = strings.TrimSpace(body)
	if err := validateForm(&commentForm{Body: body}); err != nil {
		return nil, err
	}

	c := &models.Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		AuthorID:  authorID,
		ParentID:  parentID,
		Body:      body,
		CreatedAt: s.timestamp(),
	}

	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		author, err := tx.FindMember(ctx, authorID)
		if err != nil {
			return err
		}
		if author == nil {
			return fmt.Errorf("author %s: %w", authorID, ErrUnauthenticated)
		}
		if _, err := requireArticle(ctx, tx, articleID); err != nil {
			return err
		}
		if parentID != nil {
			parent, err := tx.FindComment(ctx, *parentID)
			if err != nil {
				return err
			}
			if parent == nil || parent.ArticleID != articleID {
				return fmt.Errorf("comment %s on article %s: %w", *parentID, articleID, ErrNotFound)
			}
			if parent.IsReply() {
				return fmt.Errorf("comment %s is already a reply: %w", *parentID, ErrInvalidReference)
			}
		}
		return tx.CreateComment(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("comment posted", "comment_id", c.ID, "article_id", articleID, "reply", parentID != nil)
	return c, nil
}

// ListThread returns an article's comments in posting order. Every parent
// referenced by a reply is part of the same result.
func (s *Service) ListThread(ctx context.Context, articleID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		if _, err := requireArticle(ctx, tx, articleID); err != nil {
			return err
		}
		var err error
		comments, err = tx.ListCommentsByArticle(ctx, articleID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}
