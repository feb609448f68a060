// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog is the content organization and retrieval engine: the
// per-blog category tree, paginated article queries, and comment threads.
// It holds no in-process state beyond its configuration; all data lives in
// the Datastore, and each operation runs in a single transaction.
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"customblog/internal/models"
	"customblog/internal/pagination"
)

// Service exposes the engine operations to the HTTP layer.
type Service struct {
	ds    Datastore
	pages pagination.Calculator
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the engine over the given datastore. The page size of
// pages is used for every listing.
func NewService(ds Datastore, pages pagination.Calculator, opts ...Option) *Service {
	s := &Service{ds: ds, pages: pages, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp returns the current time at the precision PostgreSQL stores.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// GetBlog returns a blog with the identities of its categories and articles.
func (s *Service) GetBlog(ctx context.Context, blogID uuid.UUID) (*models.Blog, error) {
	var b *models.Blog
	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		var err error
		b, err = requireBlog(ctx, tx, blogID)
		if err != nil {
			return err
		}

		cats, err := tx.ListCategoriesByBlog(ctx, blogID)
		if err != nil {
			return err
		}
		b.CategoryIDs = make([]uuid.UUID, 0, len(cats))
		for _, c := range cats {
			b.CategoryIDs = append(b.CategoryIDs, c.ID)
		}

		b.ArticleIDs, err = tx.ListArticleIDs(ctx, blogID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return b, nil
}

// ListBlogsOfMember returns every blog owned by a member, oldest first.
func (s *Service) ListBlogsOfMember(ctx context.Context, memberID uuid.UUID) ([]models.Blog, error) {
	var blogs []models.Blog
	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		m, err := tx.FindMember(ctx, memberID)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("member %s: %w", memberID, ErrNotFound)
		}
		blogs, err = tx.ListBlogsByMember(ctx, memberID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list blogs of member: %w", err)
	}
	return blogs, nil
}

// CreateBlog opens a new blog owned by memberID.
func (s *Service) CreateBlog(ctx context.Context, memberID uuid.UUID, name string) (*models.Blog, error) {
	if memberID == uuid.Nil {
		return nil, fmt.Errorf("create blog: %w", ErrUnauthenticated)
	}
	name = strings.TrimSpace(name)
	if err := validateForm(&nameForm{Name: name}); err != nil {
		return nil, err
	}

	now := s.timestamp()
	b := &models.Blog{
		ID:        uuid.New(),
		Name:      name,
		MemberID:  memberID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		m, err := tx.FindMember(ctx, memberID)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("member %s: %w", memberID, ErrUnauthenticated)
		}
		return tx.CreateBlog(ctx, b)
	})
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}

	slog.Info("blog created", "blog_id", b.ID, "member_id", memberID)
	return b, nil
}

// requireBlog loads a blog or fails with ErrNotFound.
func requireBlog(ctx context.Context, tx Tx, blogID uuid.UUID) (*models.Blog, error) {
	b, err := tx.FindBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("blog %s: %w", blogID, ErrNotFound)
	}
	return b, nil
}
