// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryStatus is the level of a category in its blog's two-level tree.
type CategoryStatus string

const (
	CategoryStatusParent CategoryStatus = "parent"
	CategoryStatusChild  CategoryStatus = "child"
)

// Category is a node of a blog's two-level category tree. A parent
// category has no ParentID; a child category always points at a parent
// category of the same blog.
type Category struct {
	ID        uuid.UUID      `json:"id"`
	BlogID    uuid.UUID      `json:"blog_id"`
	Name      string         `json:"name"`
	Status    CategoryStatus `json:"status"`
	ParentID  *uuid.UUID     `json:"parent_id,omitempty"`
	Seq       int64          `json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Virtual field populated for parent categories, in insertion order.
	ChildIDs []uuid.UUID `json:"child_ids,omitempty"`
}

// IsParent returns true if the category sits at the top level.
func (c *Category) IsParent() bool {
	return c.Status == CategoryStatusParent
}

// IsChild returns true if the category is nested under a parent.
func (c *Category) IsChild() bool {
	return c.Status == CategoryStatusChild
}

// Rename changes the display name. Status and hierarchy are unaffected.
func (c *Category) Rename(name string) {
	c.Name = name
}
