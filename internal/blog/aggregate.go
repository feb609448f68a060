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
)

// Aggregate scopes blog settings operations to one blog. Every mutation
// first checks that the actor is a known member who owns the blog, and
// every category mutation that the category belongs to this blog. Both
// fail with ErrForbidden otherwise.
type Aggregate struct {
	svc    *Service
	blogID uuid.UUID
	actor  uuid.UUID
}

// Blog returns the aggregate for blogID acting on behalf of actor, the
// authenticated member performing the change.
func (s *Service) Blog(blogID, actor uuid.UUID) *Aggregate {
	return &Aggregate{svc: s, blogID: blogID, actor: actor}
}

// CategoryInput describes a category to add. A nil ParentID adds a parent
// category; otherwise a child of ParentID is added.
type CategoryInput struct {
	Name     string
	ParentID *uuid.UUID
}

// DeleteOptions controls how a category's dependents are resolved.
type DeleteOptions struct {
	// ReassignDependents uncategorizes every article of the category and of
	// its children, and removes the child categories, in the same
	// transaction as the delete. Without it, any dependent fails the call
	// with ErrHasDependents.
	ReassignDependents bool
}

// DeleteResult reports what a category deletion changed.
type DeleteResult struct {
	CategoryID            uuid.UUID   `json:"category_id"`
	RemovedChildren       []uuid.UUID `json:"removed_children"`
	UncategorizedArticles int         `json:"uncategorized_articles"`
}

// Rename changes the blog's display name.
func (a *Aggregate) Rename(ctx context.Context, name string) (*models.Blog, error) {
	if a.actor == uuid.Nil {
		return nil, fmt.Errorf("rename blog: %w", ErrUnauthenticated)
	}
	name = strings.TrimSpace(name)
	if err := validateForm(&nameForm{Name: name}); err != nil {
		return nil, err
	}

	var b *models.Blog
	err := a.svc.ds.WithinTx(ctx, func(tx Tx) error {
		var err error
		b, err = a.authorize(ctx, tx)
		if err != nil {
			return err
		}
		b.Rename(name)
		b.UpdatedAt = a.svc.timestamp()
		return tx.UpdateBlog(ctx, b)
	})
	if err != nil {
		return nil, fmt.Errorf("rename blog: %w", err)
	}

	slog.Info("blog renamed", "blog_id", a.blogID, "actor", a.actor)
	return b, nil
}

// AddCategory creates a parent category, or a child category when
// in.ParentID is set.
func (a *Aggregate) AddCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if a.actor == uuid.Nil {
		return nil, fmt.Errorf("add category: %w", ErrUnauthenticated)
	}
	name := strings.TrimSpace(in.Name)
	if err := validateForm(&nameForm{Name: name}); err != nil {
		return nil, err
	}

	var c *models.Category
	err := a.svc.ds.WithinTx(ctx, func(tx Tx) error {
		if _, err := a.authorize(ctx, tx); err != nil {
			return err
		}

		now := a.svc.timestamp()
		if in.ParentID == nil {
			c = NewParentCategory(name, a.blogID, now)
		} else {
			parent, err := tx.FindCategory(ctx, *in.ParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("parent category %s: %w", *in.ParentID, ErrNotFound)
			}
			c, err = NewChildCategory(name, parent, a.blogID, now)
			if err != nil {
				return err
			}
		}
		return tx.CreateCategory(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("add category: %w", err)
	}

	slog.Info("category created", "category_id", c.ID, "blog_id", a.blogID, "status", c.Status)
	return c, nil
}

// EditCategory renames a category of this blog.
func (a *Aggregate) EditCategory(ctx context.Context, categoryID uuid.UUID, name string) (*models.Category, error) {
	if a.actor == uuid.Nil {
		return nil, fmt.Errorf("edit category: %w", ErrUnauthenticated)
	}
	name = strings.TrimSpace(name)
	if err := validateForm(&nameForm{Name: name}); err != nil {
		return nil, err
	}

	var c *models.Category
	err := a.svc.ds.WithinTx(ctx, func(tx Tx) error {
		if _, err := a.authorize(ctx, tx); err != nil {
			return err
		}
		var err error
		c, err = a.ownedCategory(ctx, tx, categoryID)
		if err != nil {
			return err
		}
		c.Rename(name)
		c.UpdatedAt = a.svc.timestamp()
		return tx.UpdateCategory(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("edit category: %w", err)
	}

	slog.Info("category renamed", "category_id", categoryID, "blog_id", a.blogID)
	return c, nil
}

// DeleteCategory removes a category of this blog following the dependent
// resolution policy described on DeleteOptions.
func (a *Aggregate) DeleteCategory(ctx context.Context, categoryID uuid.UUID, opts DeleteOptions) (*DeleteResult, error) {
	if a.actor == uuid.Nil {
		return nil, fmt.Errorf("delete category: %w", ErrUnauthenticated)
	}

	result := &DeleteResult{CategoryID: categoryID, RemovedChildren: []uuid.UUID{}}
	err := a.svc.ds.WithinTx(ctx, func(tx Tx) error {
		if _, err := a.authorize(ctx, tx); err != nil {
			return err
		}
		if _, err := a.ownedCategory(ctx, tx, categoryID); err != nil {
			return err
		}

		tree, err := loadTree(ctx, tx, a.blogID)
		if err != nil {
			return err
		}
		children := tree.Children(categoryID)
		subtree := tree.Subtree(categoryID)

		articles, err := tx.CountArticles(ctx, ArticleFilter{BlogID: a.blogID, CategoryIDs: subtree})
		if err != nil {
			return err
		}

		if (len(children) > 0 || articles > 0) && !opts.ReassignDependents {
			return &DependentsError{CategoryID: categoryID, Children: len(children), Articles: articles}
		}

		if articles > 0 {
			n, err := tx.UncategorizeArticles(ctx, subtree)
			if err != nil {
				return err
			}
			result.UncategorizedArticles = n
		}
		for _, childID := range children {
			if err := tx.DeleteCategory(ctx, childID); err != nil {
				return err
			}
			result.RemovedChildren = append(result.RemovedChildren, childID)
		}
		return tx.DeleteCategory(ctx, categoryID)
	})
	if err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}

	slog.Info("category deleted",
		"category_id", categoryID,
		"blog_id", a.blogID,
		"removed_children", len(result.RemovedChildren),
		"uncategorized_articles", result.UncategorizedArticles,
	)
	return result, nil
}

// authorize loads the aggregate's blog and checks that the actor is an
// existing member who owns it.
func (a *Aggregate) authorize(ctx context.Context, tx Tx) (*models.Blog, error) {
	b, err := requireBlog(ctx, tx, a.blogID)
	if err != nil {
		return nil, err
	}
	m, err := tx.FindMember(ctx, a.actor)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("member %s: %w", a.actor, ErrUnauthenticated)
	}
	if b.MemberID != a.actor {
		return nil, fmt.Errorf("member %s does not own blog %s: %w", a.actor, a.blogID, ErrForbidden)
	}
	return b, nil
}

// ownedCategory loads a category and checks it belongs to the aggregate's blog.
func (a *Aggregate) ownedCategory(ctx context.Context, tx Tx, categoryID uuid.UUID) (*models.Category, error) {
	c, err := tx.FindCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}
	if c.BlogID != a.blogID {
		return nil, fmt.Errorf("category %s is not part of blog %s: %w", categoryID, a.blogID, ErrForbidden)
	}
	return c, nil
}
