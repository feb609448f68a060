// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"customblog/internal/models"
)

// NewParentCategory creates a top-level category of blogID.
func NewParentCategory(name string, blogID uuid.UUID, now time.Time) *models.Category {
	return &models.Category{
		ID:        uuid.New(),
		BlogID:    blogID,
		Name:      name,
		Status:    models.CategoryStatusParent,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewChildCategory creates a category nested under parent. The parent must
// be a parent category of the same blog, otherwise ErrInvalidHierarchy is
// returned. Depth is fixed at two, so no cycle can be built.
func NewChildCategory(name string, parent *models.Category, blogID uuid.UUID, now time.Time) (*models.Category, error) {
	if parent == nil {
		return nil, fmt.Errorf("child category without parent: %w", ErrInvalidHierarchy)
	}
	if !parent.IsParent() {
		return nil, fmt.Errorf("parent %s is a child category: %w", parent.ID, ErrInvalidHierarchy)
	}
	if parent.BlogID != blogID {
		return nil, fmt.Errorf("parent %s belongs to another blog: %w", parent.ID, ErrInvalidHierarchy)
	}

	parentID := parent.ID
	return &models.Category{
		ID:        uuid.New(),
		BlogID:    blogID,
		Name:      name,
		Status:    models.CategoryStatusChild,
		ParentID:  &parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ListCategoriesOfBlog returns both levels of a blog's categories in
// insertion order. Parent categories carry the ids of their children.
func (s *Service) ListCategoriesOfBlog(ctx context.Context, blogID uuid.UUID) ([]models.Category, error) {
	var tree *Tree
	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		var err error
		tree, err = loadTree(ctx, tx, blogID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return tree.Flat(), nil
}

// CategoryTree returns the arena of a blog's categories.
func (s *Service) CategoryTree(ctx context.Context, blogID uuid.UUID) (*Tree, error) {
	var tree *Tree
	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		var err error
		tree, err = loadTree(ctx, tx, blogID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("category tree: %w", err)
	}
	return tree, nil
}

// GetCategory returns a category by id.
func (s *Service) GetCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	var c *models.Category
	err := s.ds.WithinTx(ctx, func(tx Tx) error {
		var err error
		c, err = tx.FindCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// loadTree checks that the blog exists and builds its category arena.
func loadTree(ctx context.Context, tx Tx, blogID uuid.UUID) (*Tree, error) {
	if _, err := requireBlog(ctx, tx, blogID); err != nil {
		return nil, err
	}
	cats, err := tx.ListCategoriesByBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return NewTree(cats), nil
}
