// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"customblog/internal/models"
	"customblog/internal/pagination"
)

// ArticlePage is one window of a listing, newest article first.
type ArticlePage struct {
	Items      []models.Article      `json:"items"`
	Pagination pagination.Pagination `json:"pagination"`
}

// ArticleInput carries the fields of a new article. CategoryID is optional.
type ArticleInput struct {
	BlogID     uuid.UUID
	AuthorID   uuid.UUID
	CategoryID *uuid.UUID
	Title      string
	Body       string
}

// ListArticlesOfBlog returns the requested page of a blog's articles.
// Out-of-range pages are clamped.
func (s *Service) ListArticlesOfBlog(ctx context.Context, blogID uuid.UUID, page int) (*ArticlePage, error) {
	var result *ArticlePage
	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		if _, err := requireBlog(ctx, tx, blogID); err != nil {
			return err
		}
		var err error
		result, err = s.listPage(ctx, tx, ArticleFilter{BlogID: blogID}, page)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list articles of blog: %w", err)
	}
	return result, nil
}

// ListArticlesOfCategory returns the requested page of the articles filed
// under categoryID. A category of another blog is reported as not found so
// its articles never leak across tenants.
func (s *Service) ListArticlesOfCategory(ctx context.Context, blogID, categoryID uuid.UUID, page int) (*ArticlePage, error) {
	var result *ArticlePage
	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		if _, err := requireBlog(ctx, tx, blogID); err != nil {
			return err
		}
		c, err := tx.FindCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if c == nil || c.BlogID != blogID {
			return fmt.Errorf("category %s in blog %s: %w", categoryID, blogID, ErrNotFound)
		}
		f := ArticleFilter{BlogID: blogID, CategoryIDs: []uuid.UUID{categoryID}}
		result, err = s.listPage(ctx, tx, f, page)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list articles of category: %w", err)
	}
	return result, nil
}

// listPage counts the matching articles, computes the window and fetches it.
func (s *Service) listPage(ctx context.Context, tx Tx, f ArticleFilter, page int) (*ArticlePage, error) {
	total, err := tx.CountArticles(ctx, f)
	if err != nil {
		return nil, err
	}

	p := s.pages.Paginate(total, page)
	result := &ArticlePage{Items: []models.Article{}, Pagination: p}
	if p.Limit() == 0 {
		return result, nil
	}

	items, err := tx.ListArticles(ctx, f, p.StartIndex, p.Limit())
	if err != nil {
		return nil, err
	}
	result.Items = items
	return result, nil
}

// GetArticle returns an article by id.
func (s *Service) GetArticle(ctx context.Context, articleID uuid.UUID) (*models.Article, error) {
	var a *models.Article
	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		var err error
		a, err = requireArticle(ctx, tx, articleID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// CreateArticle stamps the current time and stores a new article. The
// category, when given, must belong to the same blog.
func (s *Service) CreateArticle(ctx context.Context, in ArticleInput) (*models.Article, error) {
	if in.AuthorID == uuid.Nil {
		return nil, fmt.Errorf("create article: %w", ErrUnauthenticated)
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if err := validateForm(&articleForm{Title: in.Title, Body: in.Body}); err != nil {
		return nil, err
	}

	now := s.timestamp()
	a := &models.Article{
		ID:         uuid.New(),
		BlogID:     in.BlogID,
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
		Title:      in.Title,
		Body:       in.Body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		if _, err := requireBlog(ctx, tx, in.BlogID); err != nil {
			return err
		}
		author, err := tx.FindMember(ctx, in.AuthorID)
		if err != nil {
			return err
		}
		if author == nil {
			return fmt.Errorf("author %s: %w", in.AuthorID, ErrUnauthenticated)
		}
		if in.CategoryID != nil {
			c, err := tx.FindCategory(ctx, *in.CategoryID)
			if err != nil {
				return err
			}
			if c == nil || c.BlogID != in.BlogID {
				return fmt.Errorf("category %s is not part of blog %s: %w", *in.CategoryID, in.BlogID, ErrInvalidReference)
			}
		}
		return tx.CreateArticle(ctx, a)
	})
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	slog.Info("article created", "article_id", a.ID, "blog_id", a.BlogID, "author_id", a.AuthorID)
	return a, nil
}

// requireArticle loads an article or fails with ErrNotFound.
func requireArticle(ctx context.Context, tx Tx, articleID uuid.UUID) (*models.Article, error) {
	a, err := tx.FindArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("article %s: %w", articleID, ErrNotFound)
	}
	return a, nil
}
