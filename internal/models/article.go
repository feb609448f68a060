// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a timestamped post of a blog, optionally filed under one of
// the blog's categories.
type Article struct {
	ID         uuid.UUID  `json:"id"`
	BlogID     uuid.UUID  `json:"blog_id"`
	AuthorID   uuid.UUID  `json:"author_id"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Seq        int64      `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsUncategorized returns true if the article has no category.
func (a *Article) IsUncategorized() bool {
	return a.CategoryID == nil
}
