// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"

	"github.com/google/uuid"

	"customblog/internal/models"
)

// Datastore is the persistence collaborator of the engine. Every engine
// operation runs inside exactly one WithinTx call: the transaction is
// committed when fn returns nil and rolled back on any error or panic.
type Datastore interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// ArticleFilter selects the articles of a blog. A nil CategoryIDs means
// every article of the blog; otherwise only articles filed under one of
// the listed categories match.
type ArticleFilter struct {
	BlogID      uuid.UUID
	CategoryIDs []uuid.UUID
}

// Tx is the query/command surface available inside a transaction.
// Find methods return (nil, nil) when the record does not exist.
type Tx interface {
	FindMember(ctx context.Context, id uuid.UUID) (*models.Member, error)

	FindBlog(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	ListBlogsByMember(ctx context.Context, memberID uuid.UUID) ([]models.Blog, error)
	CreateBlog(ctx context.Context, b *models.Blog) error
	UpdateBlog(ctx context.Context, b *models.Blog) error

	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// ListCategoriesByBlog returns categories in insertion order.
	ListCategoriesByBlog(ctx context.Context, blogID uuid.UUID) ([]models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	FindArticle(ctx context.Context, id uuid.UUID) (*models.Article, error)
	CountArticles(ctx context.Context, f ArticleFilter) (int, error)
	// ListArticles returns articles newest first; equal timestamps keep
	// insertion order.
	ListArticles(ctx context.Context, f ArticleFilter, offset, limit int) ([]models.Article, error)
	// ListArticleIDs returns the ids of a blog's articles in insertion order.
	ListArticleIDs(ctx context.Context, blogID uuid.UUID) ([]uuid.UUID, error)
	CreateArticle(ctx context.Context, a *models.Article) error
	// UncategorizeArticles clears the category of every article filed
	// under one of categoryIDs and returns how many were changed.
	UncategorizeArticles(ctx context.Context, categoryIDs []uuid.UUID) (int, error)

	FindComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	// ListCommentsByArticle returns comments in insertion order.
	ListCommentsByArticle(ctx context.Context, articleID uuid.UUID) ([]models.Comment, error)
	CreateComment(ctx context.Context, c *models.Comment) error
}
